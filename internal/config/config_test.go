package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.Equal(t, "public/images/answers", cfg.AnswerImageDir)
	assert.Equal(t, 5*time.Second, cfg.MirrorTimeout)
	assert.Equal(t, 8*time.Second, cfg.MirrorBudget)
	assert.Equal(t, time.Duration(0), cfg.NegativeCacheTTL)
	assert.False(t, cfg.SkipLocalSounds)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SKIP_LOCAL_SOUNDS", "true")
	t.Setenv("MIRROR_TIMEOUT", "1500ms")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.SkipLocalSounds)
	assert.Equal(t, 1500*time.Millisecond, cfg.MirrorTimeout)
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PUZZLE_TIMEZONE=Europe/Paris\n"), 0o644))
	t.Setenv("PUZZLE_TIMEZONE", "")
	require.NoError(t, os.Unsetenv("PUZZLE_TIMEZONE"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", cfg.Timezone)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("MIRROR_TIMEOUT", "soon")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse env:"), err.Error())
}
