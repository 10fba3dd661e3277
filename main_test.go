package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NRay7882/astrogoblin-wordle/internal/assets"
	"github.com/NRay7882/astrogoblin-wordle/internal/config"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCheck_Clean(t *testing.T) {
	t.Setenv("PUZZLE_20250101", "CRANE|A tall bird")

	out, err := runCLI(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "0 rejected")
}

func TestCheck_IgnoresPuzzleSettings(t *testing.T) {
	t.Setenv("PUZZLE_20250101", "CRANE|A tall bird")
	t.Setenv("PUZZLE_TIMEZONE", "Europe/London")

	out, err := runCLI(t, "check")
	require.NoError(t, err)
	assert.NotContains(t, out, "PUZZLE_TIMEZONE")
	assert.Contains(t, out, "1 accepted, 0 rejected")
}

func TestCheck_ReportsRejections(t *testing.T) {
	t.Setenv("PUZZLE_20250101", "CRANE|A tall bird")
	t.Setenv("PUZZLE_2025XX02", "PLANE|Flies")
	t.Setenv("PUZZLE_20250103", "TOOLONG|Nope")

	out, err := runCLI(t, "check")
	require.Error(t, err)
	assert.Contains(t, out, "rejected PUZZLE_2025XX02: bad_date_key")
	assert.Contains(t, out, "rejected PUZZLE_20250103: answer_length")
}

func TestLoadCatalog_EnvironmentWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"PUZZLE_20250101: \"PLANE|From file\"\nPUZZLE_20250102: \"TRAIN|Rails\"\n"), 0o644))

	catalog, rejected, err := loadCatalog(config.Config{PuzzlesFile: path}, []string{
		"PUZZLE_20250101=CRANE|From env",
		"HOME=/root",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())
	require.Len(t, rejected, 1)
	assert.Equal(t, "PUZZLE_20250101", rejected[0].Key)

	rec, ok := catalog.LookupByID("20250101")
	require.True(t, ok)
	assert.Equal(t, "CRANE", rec.Answer)
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, _, err := loadCatalog(config.Config{PuzzlesFile: filepath.Join(t.TempDir(), "nope.yaml")}, nil)
	assert.Error(t, err)
}

func TestLoadVocabulary(t *testing.T) {
	catalog, _, err := loadCatalog(config.Config{}, []string{"PUZZLE_20250101=X-RAY|Bones"})
	require.NoError(t, err)

	v, err := loadVocabulary(config.Config{}, catalog)
	require.NoError(t, err)
	assert.Nil(t, v)

	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("# list\ncrane\n"), 0o644))
	v, err = loadVocabulary(config.Config{WordsFile: path}, catalog)
	require.NoError(t, err)
	assert.True(t, v.IsAllowed("CRANE"))
	assert.True(t, v.IsAllowed("X-RAY"))
	assert.False(t, v.IsAllowed("PLANE"))
}

func TestPackAssets(t *testing.T) {
	dir := t.TempDir()
	images := filepath.Join(dir, "images")
	sounds := filepath.Join(dir, "sounds")
	require.NoError(t, os.MkdirAll(images, 0o755))
	require.NoError(t, os.MkdirAll(sounds, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(images, "20250101.png"), []byte("png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sounds, "win.mp3"), []byte("mp3"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sounds, "notes.txt"), []byte("skip"), 0o644))

	t.Setenv("ANSWER_IMAGE_DIR", images)
	t.Setenv("SOUND_DIR", sounds)
	dbPath := filepath.Join(dir, "data", "assets.db")

	out, err := runCLI(t, "pack-assets", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "packed 1 image files")
	assert.Contains(t, out, "packed 1 sound files")

	db, err := assets.OpenSQLite(dbPath)
	require.NoError(t, err)
	defer db.Close()
	res := db.Fetch(context.Background(), assets.KindSound, "win.mp3")
	assert.Equal(t, assets.Found, res.Status)
	assert.Equal(t, "audio/mpeg", res.Asset.ContentType)
}

func TestPackAssets_RequiresDB(t *testing.T) {
	t.Setenv("ASSET_DB", "")
	_, err := runCLI(t, "pack-assets")
	assert.Error(t, err)
}

func TestBuildResolver_WithStoreAndMirror(t *testing.T) {
	dir := t.TempDir()
	r, closeFn, err := buildResolver(config.Config{
		AnswerImageDir: filepath.Join(dir, "images"),
		SoundDir:       filepath.Join(dir, "sounds"),
		AssetDB:        filepath.Join(dir, "assets.db"),
		MirrorURL:      "http://127.0.0.1:1",
	})
	require.NoError(t, err)
	defer closeFn()
	assert.Equal(t, 0, r.CacheLen())

	_, _, err = buildResolver(config.Config{MirrorURL: "not a url"})
	assert.Error(t, err)
}
