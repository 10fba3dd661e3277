// internal/assets/sqlite.go
//
// SQLite-backed blob store for media.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout).
//   - Applying the assets schema (idempotent).
//   - Serving as a local tier of the resolution chain.
//   - Packing a directory tree of media into the store.

package assets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS assets (
	kind         TEXT NOT NULL,
	name         TEXT NOT NULL,
	content_type TEXT NOT NULL,
	data         BLOB NOT NULL,
	updated_at   TEXT NOT NULL,
	PRIMARY KEY (kind, name)
);`

// SQLiteStore holds media blobs keyed by kind and filename.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the store at dsn.
//
// - Ensures parent directory exists for relative paths (e.g. ./data/assets.db).
// - Configures busy timeout and WAL journaling.
// - Applies the schema.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	if dsn != ":memory:" {
		dir := filepath.Dir(dsn)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// Each connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Name() string { return "sqlite" }

// Fetch looks up one blob.
func (s *SQLiteStore) Fetch(ctx context.Context, kind Kind, filename string) Result {
	var ct string
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT content_type, data FROM assets WHERE kind=? AND name=?`,
		string(kind), filename,
	).Scan(&ct, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return missed()
	}
	if err != nil {
		return failed(err)
	}
	return found(data, ct)
}

// Put stores or replaces one blob.
func (s *SQLiteStore) Put(ctx context.Context, kind Kind, filename string, a Asset) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR REPLACE INTO assets (kind, name, content_type, data, updated_at)
        VALUES (?, ?, ?, ?, ?)`,
		string(kind), filename, a.ContentType, a.Data, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Count returns the number of stored blobs of kind.
func (s *SQLiteStore) Count(ctx context.Context, kind Kind) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM assets WHERE kind=?`, string(kind)).Scan(&n)
	return n, err
}

// PackDir copies every file directly under root whose extension is known
// for kind into the store. Sound files must also pass ValidSoundName.
// Returns the number of files stored.
func (s *SQLiteStore) PackDir(ctx context.Context, kind Kind, root string) (int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", root, err)
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() || !packable(kind, e.Name()) {
			continue
		}
		b, err := fs.ReadFile(os.DirFS(root), e.Name())
		if err != nil {
			return n, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		if err := s.Put(ctx, kind, e.Name(), Asset{Data: b, ContentType: ContentTypeFor(e.Name())}); err != nil {
			return n, fmt.Errorf("store %s: %w", e.Name(), err)
		}
		log.Debug().Str("kind", string(kind)).Str("name", e.Name()).Int("bytes", len(b)).Msg("packed asset")
		n++
	}
	return n, nil
}

func packable(kind Kind, name string) bool {
	if kind == KindSound {
		return ValidSoundName(name)
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, x := range ImageExtensions {
		if ext == x {
			return true
		}
	}
	return false
}
