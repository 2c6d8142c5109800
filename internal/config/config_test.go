package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.TopWords)
	assert.Equal(t, 10, cfg.TopEmojis)
	assert.Equal(t, 6, cfg.TopParticipants)
	assert.False(t, cfg.ZeroFill)
	assert.Empty(t, cfg.Path)
}

func TestLoadFile_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "log_level = \"debug\"\ntop_words = 25\nzero_fill = true\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 25, cfg.TopWords)
	assert.True(t, cfg.ZeroFill)
	assert.Equal(t, 6, cfg.TopParticipants)
	assert.Equal(t, path, cfg.Path)
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("CHATAN_TOP_EMOJIS", "3")
	t.Setenv("CHATAN_ZERO_FILL", "true")
	t.Setenv("CHATAN_LOG_FORMAT", "json")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.TopEmojis)
	assert.True(t, cfg.ZeroFill)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "zero top words", body: "top_words = 0\n"},
		{name: "unknown level", body: "log_level = \"chatty\"\n"},
		{name: "bad toml", body: "top_words = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := LoadFile(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_ValidationSentinel(t *testing.T) {
	t.Setenv("CHATAN_TOP_WORDS", "-1")

	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, filepath.Join("/home/u", "x/y"), expandHome("~/x/y", "/home/u"))
	assert.Equal(t, "/abs", expandHome("/abs", "/home/u"))
}

func TestLoadFile_LogDev(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_dev = true\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.LogDev)

	t.Setenv("CHATAN_LOG_DEV", "false")
	cfg, err = LoadFile(path)
	require.NoError(t, err)
	assert.False(t, cfg.LogDev)

	t.Setenv("CHATAN_LOG_DEV", "maybe")
	_, err = LoadFile(path)
	assert.Error(t, err)
}
