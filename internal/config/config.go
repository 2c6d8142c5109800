package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

var ErrValidation = errors.New("invalid config")

type Config struct {
	LogLevel        string `toml:"log_level"        validate:"required,oneof=debug info warn error"`
	LogFormat       string `toml:"log_format"       validate:"required,oneof=console json"`
	LogDev          bool   `toml:"log_dev"`
	TopWords        int    `toml:"top_words"        validate:"min=1,max=1000"`
	TopEmojis       int    `toml:"top_emojis"       validate:"min=1,max=1000"`
	TopParticipants int    `toml:"top_participants" validate:"min=1,max=100"`
	ZeroFill        bool   `toml:"zero_fill"`
	Color           bool   `toml:"color"`

	// Path is the file the values were read from, empty when none existed.
	Path string `toml:"-"`
}

func Default() *Config {
	return &Config{
		LogLevel:        "warn",
		LogFormat:       "console",
		TopWords:        10,
		TopEmojis:       10,
		TopParticipants: 6,
		Color:           true,
	}
}

// Load reads $CHATAN_CONFIG or ~/.config/chatan/config.toml over the
// defaults, then applies CHATAN_* environment overrides.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfgPath := os.Getenv("CHATAN_CONFIG")
	if cfgPath == "" {
		cfgPath = filepath.Join(home, ".config", "chatan", "config.toml")
	}
	return LoadFile(expandHome(cfgPath, home))
}

// LoadFile is Load with an explicit config path. A missing file is not an error.
func LoadFile(cfgPath string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
		cfg.Path = cfgPath
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("CHATAN_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("CHATAN_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("CHATAN_LOG_DEV"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CHATAN_LOG_DEV: %w", err)
		}
		c.LogDev = b
	}
	if v := os.Getenv("CHATAN_TOP_WORDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHATAN_TOP_WORDS: %w", err)
		}
		c.TopWords = n
	}
	if v := os.Getenv("CHATAN_TOP_EMOJIS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHATAN_TOP_EMOJIS: %w", err)
		}
		c.TopEmojis = n
	}
	if v := os.Getenv("CHATAN_ZERO_FILL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CHATAN_ZERO_FILL: %w", err)
		}
		c.ZeroFill = b
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.Color = false
	}
	return nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
