package config

import (
	"time"
)

type Config struct {
	Version       int           `toml:"version"`
	Dataset       Dataset       `toml:"dataset"`
	Lookup        Lookup        `toml:"lookup"`
	UI            UI            `toml:"ui"`
	Watch         Watch         `toml:"watch"`
	History       History       `toml:"history"`
	Observability Observability `toml:"observability"`
}

type Dataset struct {
	Path string `toml:"path"`
	// Format forces json, yaml or toml. Empty picks by file extension.
	Format string `toml:"format"`
}

type Lookup struct {
	MissingPhonetic   string `toml:"missing_phonetic"`
	MaxMatchesPerTerm int    `toml:"max_matches_per_term"`
}

type UI struct {
	// Mode is "plain" for the line menu or "tui" for the full-screen view.
	Mode  string `toml:"mode"`
	Color bool   `toml:"color"`
}

type Watch struct {
	Enabled  bool          `toml:"enabled"`
	Debounce time.Duration `toml:"debounce"`
}

type History struct {
	// Path of the SQLite query log. Empty disables it.
	Path  string `toml:"path"`
	Limit int    `toml:"limit"`
}

type Observability struct {
	// MetricsFile receives a Prometheus text exposition on exit.
	MetricsFile string `toml:"metrics_file"`
	Tracing     bool   `toml:"tracing"`
}

const (
	DefaultDatasetPath = "tangut_learning_data.txt"
	UIModePlain        = "plain"
	UIModeTUI          = "tui"
)

func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.UI.Color = true
	return cfg
}
