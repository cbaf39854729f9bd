package config

import (
	"os"
	"strings"
	"time"

	"tangutlex/internal/lexicon"

	"github.com/BurntSushi/toml"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Config{UI: UI{Color: true}}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section. Callers that change a loaded config, such
// as command-line overrides, run it again afterwards.
func (c *Config) Validate() error {
	for _, validate := range []func(*Config) error{
		validateVersion,
		validateDataset,
		validateLookup,
		validateUI,
		validateWatch,
		validateHistory,
	} {
		if err := validate(c); err != nil {
			return err
		}
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	if strings.TrimSpace(cfg.Dataset.Path) == "" {
		cfg.Dataset.Path = DefaultDatasetPath
	}
	cfg.Dataset.Format = strings.ToLower(strings.TrimSpace(cfg.Dataset.Format))

	if cfg.Lookup.MissingPhonetic == "" {
		cfg.Lookup.MissingPhonetic = lexicon.DefaultMissingPhonetic
	}

	cfg.UI.Mode = strings.ToLower(strings.TrimSpace(cfg.UI.Mode))
	if cfg.UI.Mode == "" {
		cfg.UI.Mode = UIModePlain
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}

	if cfg.History.Limit == 0 {
		cfg.History.Limit = 20
	}
}

// LookupOptions maps the lookup section onto collection options.
func (c *Config) LookupOptions() lexicon.Options {
	return lexicon.Options{
		MissingPhonetic:   c.Lookup.MissingPhonetic,
		MaxMatchesPerTerm: c.Lookup.MaxMatchesPerTerm,
	}
}

// DatasetFormat resolves the configured or extension-derived dataset format.
func (c *Config) DatasetFormat() lexicon.Format {
	if c.Dataset.Format == "" {
		return lexicon.DetectFormat(c.Dataset.Path)
	}
	f, err := lexicon.ParseFormat(c.Dataset.Format)
	if err != nil {
		return lexicon.DetectFormat(c.Dataset.Path)
	}
	return f
}
