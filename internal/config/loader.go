package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override, e.g. STORYQUEST_LOG_LEVEL.
	EnvPrefix = "STORYQUEST_"

	// EnvConfigFile names a YAML file layered between defaults and env vars.
	EnvConfigFile = "STORYQUEST_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if STORYQUEST_CONFIG is set
//  3. env (prefix STORYQUEST_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// STORYQUEST_HISTORY_WINDOW -> history_window. Underscores are kept to
	// match the flat koanf tags. STORYQUEST_CONFIG and STORYQUEST_DB are
	// consumed elsewhere and do not map to keys.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.RecommendLimit <= 0 {
		return fmt.Errorf("%w: recommend_limit must be positive, got %d", ErrInvalidConfig, c.RecommendLimit)
	}
	if c.HistoryWindow < 0 {
		return fmt.Errorf("%w: history_window must not be negative, got %d", ErrInvalidConfig, c.HistoryWindow)
	}
	return nil
}
