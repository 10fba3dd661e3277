// bootstrap.go
//
// Startup helpers shared by the CLI commands.
// Responsibilities:
//   - Loading configuration and applying the log level.
//   - Building the puzzle catalog from the environment and PUZZLES_FILE.
//   - Building the clock, the optional vocabulary and the asset resolver
//     (filesystem, optional sqlite store, optional remote mirror).

package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/NRay7882/astrogoblin-wordle/internal/assets"
	"github.com/NRay7882/astrogoblin-wordle/internal/config"
	"github.com/NRay7882/astrogoblin-wordle/internal/daily"
	"github.com/NRay7882/astrogoblin-wordle/internal/puzzle"
	"github.com/NRay7882/astrogoblin-wordle/internal/words"
)

// loadConfig reads envFile plus the environment and sets the global log level.
func loadConfig(envFile string) (config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, keeping default")
	}
	return cfg, nil
}

// loadCatalog parses PUZZLE_* entries from environ followed by PUZZLES_FILE.
// Environment entries come first, so they win a date collision.
func loadCatalog(cfg config.Config, environ []string) (*puzzle.Catalog, []puzzle.Rejection, error) {
	entries := puzzle.FromEnviron(environ)
	if cfg.PuzzlesFile != "" {
		fromFile, err := puzzle.FromYAMLFile(cfg.PuzzlesFile)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, fromFile...)
	}
	catalog, rejected := puzzle.Load(entries)
	return catalog, rejected, nil
}

func logCatalog(cfg config.Config, accepted int, rejected []puzzle.Rejection) {
	for _, r := range rejected {
		log.Warn().Str("key", r.Key).Str("reason", string(r.Reason)).Msg("rejected puzzle entry")
	}
	log.Info().
		Int("accepted", accepted).
		Int("rejected", len(rejected)).
		Str("timezone", cfg.Timezone).
		Msg("puzzle catalog loaded")
}

func newClock(cfg config.Config) (*daily.Clock, error) {
	return daily.NewClock(cfg.Timezone, nil)
}

// loadVocabulary returns nil (accept any well-formed guess) unless
// WORDS_ALLOWED_FILE is set. Catalog answers are always accepted.
func loadVocabulary(cfg config.Config, catalog *puzzle.Catalog) (*words.Vocabulary, error) {
	if cfg.WordsFile == "" {
		return nil, nil
	}
	records := catalog.All()
	answers := make([]string, 0, len(records))
	for _, r := range records {
		answers = append(answers, r.Answer)
	}
	v, err := words.Load(cfg.WordsFile, answers)
	if err != nil {
		return nil, err
	}
	log.Info().Int("words", v.Len()).Str("file", cfg.WordsFile).Msg("vocabulary loaded")
	return v, nil
}

// buildResolver assembles the source chain. The returned func releases
// any opened store.
func buildResolver(cfg config.Config) (*assets.Resolver, func(), error) {
	local := []assets.Source{assets.NewDirSource(cfg.AnswerImageDir, cfg.SoundDir)}
	closeFn := func() {}

	if cfg.AssetDB != "" {
		db, err := assets.OpenSQLite(cfg.AssetDB)
		if err != nil {
			return nil, nil, err
		}
		local = append(local, db)
		closeFn = func() {
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("close asset db")
			}
		}
		log.Info().Str("path", cfg.AssetDB).Msg("asset store enabled")
	}

	var remote []assets.Source
	if cfg.MirrorURL != "" {
		m, err := assets.NewMirror(assets.MirrorConfig{
			BaseURL:    cfg.MirrorURL,
			Token:      cfg.MirrorToken,
			SigningKey: cfg.MirrorSigningKey,
			Timeout:    cfg.MirrorTimeout,
		})
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		remote = append(remote, m)
		log.Info().
			Str("url", cfg.MirrorURL).
			Dur("timeout", cfg.MirrorTimeout).
			Dur("budget", cfg.MirrorBudget).
			Msg("asset mirror enabled")
	}

	r := assets.NewResolver(assets.Options{
		Local:           local,
		Remote:          remote,
		SkipLocalSounds: cfg.SkipLocalSounds,
		NegativeTTL:     cfg.NegativeCacheTTL,
		RemoteBudget:    cfg.MirrorBudget,
	})
	return r, closeFn, nil
}

// staticDir returns dir if it exists, else "" (static serving off).
func staticDir(dir string) string {
	if dir == "" {
		return ""
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		log.Info().Str("dir", dir).Msg("static dir not found, serving API only")
		return ""
	}
	return dir
}
