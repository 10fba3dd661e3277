// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting read at startup.
type Config struct {
	Port     string `env:"PORT" envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Timezone    string `env:"PUZZLE_TIMEZONE" envDefault:"America/New_York"`
	PuzzlesFile string `env:"PUZZLES_FILE"`
	WordsFile   string `env:"WORDS_ALLOWED_FILE"`

	StaticDir      string `env:"STATIC_DIR" envDefault:"public"`
	AnswerImageDir string `env:"ANSWER_IMAGE_DIR" envDefault:"public/images/answers"`
	SoundDir       string `env:"SOUND_DIR" envDefault:"public/sounds"`
	AssetDB        string `env:"ASSET_DB"`

	SkipLocalSounds  bool          `env:"SKIP_LOCAL_SOUNDS" envDefault:"false"`
	NegativeCacheTTL time.Duration `env:"NEGATIVE_CACHE_TTL" envDefault:"0s"`

	MirrorURL        string        `env:"MIRROR_URL"`
	MirrorToken      string        `env:"MIRROR_TOKEN"`
	MirrorSigningKey string        `env:"MIRROR_SIGNING_KEY"`
	MirrorTimeout    time.Duration `env:"MIRROR_TIMEOUT" envDefault:"5s"`

	// MirrorBudget caps all mirror attempts for one asset; keep it under
	// the 10s HTTP handler timeout.
	MirrorBudget time.Duration `env:"MIRROR_BUDGET" envDefault:"8s"`

	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
}

// Load merges the given .env files into the environment (missing files are
// ignored) and parses Config.
func Load(dotenv ...string) (Config, error) {
	_ = godotenv.Load(dotenv...)
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
