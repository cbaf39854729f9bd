package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"tangutlex/internal/lexicon"
)

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateDataset(cfg *Config) error {
	if cfg.Dataset.Format == "" {
		return nil
	}
	if _, err := lexicon.ParseFormat(cfg.Dataset.Format); err != nil {
		return fmt.Errorf("dataset.format must be one of: json, yaml, toml; got %q", cfg.Dataset.Format)
	}
	return nil
}

func validateLookup(cfg *Config) error {
	if cfg.Lookup.MaxMatchesPerTerm < 0 {
		return fmt.Errorf("lookup.max_matches_per_term must be >= 0, got %d", cfg.Lookup.MaxMatchesPerTerm)
	}
	if strings.TrimSpace(cfg.Lookup.MissingPhonetic) == "" {
		return fmt.Errorf("lookup.missing_phonetic must not be blank")
	}
	return nil
}

func validateUI(cfg *Config) error {
	switch cfg.UI.Mode {
	case UIModePlain, UIModeTUI:
		return nil
	default:
		return fmt.Errorf("ui.mode must be one of: plain, tui; got %q", cfg.UI.Mode)
	}
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must be >= 0, got %s", cfg.Watch.Debounce)
	}
	return nil
}

func validateHistory(cfg *Config) error {
	path := strings.TrimSpace(cfg.History.Path)
	if path == "" {
		return nil
	}
	if filepath.Clean(path) == filepath.Clean(cfg.Dataset.Path) {
		return fmt.Errorf("history.path must not point at the dataset file")
	}
	if cfg.History.Limit < 0 {
		return fmt.Errorf("history.limit must be >= 0, got %d", cfg.History.Limit)
	}
	return nil
}
