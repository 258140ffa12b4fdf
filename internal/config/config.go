// Package config defines the CLI configuration and its loading layers.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DBPath overrides the default SQLite location when set.
	DBPath string `koanf:"db_path"`

	// CatalogPath points at a catalog JSON file. Empty means the embedded catalog.
	CatalogPath string `koanf:"catalog_path"`

	// RecommendLimit caps the number of suggestions printed.
	RecommendLimit int `koanf:"recommend_limit"`

	// UnlockedOnly hides suggestions whose prerequisites are not yet dominated.
	UnlockedOnly bool `koanf:"unlocked_only"`

	// HistoryWindow is how many recent sessions are read back as history.
	HistoryWindow int `koanf:"history_window"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "warn",
		RecommendLimit: 5,
		UnlockedOnly:   true,
		HistoryWindow:  10,
	}
}
