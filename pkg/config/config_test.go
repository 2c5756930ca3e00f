package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ja7ad/bouncy/pkg/bounce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"BOUNCY_GRAVITY", "BOUNCY_SAMPLES", "BOUNCY_ADDR", "BOUNCY_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, bounce.Gravity, cfg.Gravity)
	assert.Equal(t, bounce.SegmentSamples, cfg.Samples)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOUNCY_GRAVITY", "1.62")
	t.Setenv("BOUNCY_SAMPLES", "25")
	t.Setenv("BOUNCY_ADDR", "127.0.0.1:9000")
	t.Setenv("BOUNCY_LOG_LEVEL", "DEBUG")

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, 1.62, cfg.Gravity)
	assert.Equal(t, 25, cfg.Samples)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOUNCY_GRAVITY", "-9.81")
	t.Setenv("BOUNCY_SAMPLES", "one")

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, bounce.Gravity, cfg.Gravity)
	assert.Equal(t, bounce.SegmentSamples, cfg.Samples)

	t.Setenv("BOUNCY_GRAVITY", "nan")
	t.Setenv("BOUNCY_SAMPLES", "1")
	cfg = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, bounce.Gravity, cfg.Gravity)
	assert.Equal(t, bounce.SegmentSamples, cfg.Samples)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are already set, even empty ones
	require.NoError(t, os.Unsetenv("BOUNCY_GRAVITY"))
	require.NoError(t, os.Unsetenv("BOUNCY_ADDR"))
	t.Cleanup(func() {
		_ = os.Unsetenv("BOUNCY_GRAVITY")
		_ = os.Unsetenv("BOUNCY_ADDR")
	})

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("BOUNCY_GRAVITY=3.71\nBOUNCY_ADDR=:7070\n"), 0o600))

	cfg := Load(path)
	assert.Equal(t, 3.71, cfg.Gravity)
	assert.Equal(t, ":7070", cfg.Addr)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" Warning "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}
