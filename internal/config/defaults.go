package config

// Default configuration values.
const (
	DefaultJournalPath      = ".recenttests/journal.db"
	DefaultJournalRetention = "168h"
	DefaultColor            = "auto"
	DefaultSeparator        = "."
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	applyJournalDefaults(cfg)
	applyDisplayDefaults(cfg)
	applyIngestDefaults(cfg)
}

func applyJournalDefaults(cfg *Config) {
	if cfg.Journal == nil {
		cfg.Journal = &JournalConfig{}
	}
	if cfg.Journal.Path == "" {
		cfg.Journal.Path = DefaultJournalPath
	}
	if cfg.Journal.Retention == "" {
		cfg.Journal.Retention = DefaultJournalRetention
	}
}

func applyDisplayDefaults(cfg *Config) {
	if cfg.Display == nil {
		cfg.Display = &DisplayConfig{}
	}
	if cfg.Display.Color == "" {
		cfg.Display.Color = DefaultColor
	}
	if cfg.Display.Ancestry == nil {
		ancestry := true
		cfg.Display.Ancestry = &ancestry
	}
}

func applyIngestDefaults(cfg *Config) {
	if cfg.Ingest == nil {
		cfg.Ingest = &IngestConfig{}
	}
	if cfg.Ingest.Separator == "" {
		cfg.Ingest.Separator = DefaultSeparator
	}
}
