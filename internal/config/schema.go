// Package config provides configuration loading and validation for config.json.
package config

// Config represents the complete config.json configuration.
type Config struct {
	Journal        *JournalConfig                 `json:"journal,omitempty"`
	Display        *DisplayConfig                 `json:"display,omitempty"`
	Ingest         *IngestConfig                  `json:"ingest,omitempty"`
	Configurations map[string]ConfigurationConfig `json:"configurations,omitempty"`
}

// JournalConfig configures the event journal.
type JournalConfig struct {
	Path      string `json:"path,omitempty"`      // Relative to the workspace root
	Retention string `json:"retention,omitempty"` // Go duration, e.g. "168h"
}

// DisplayConfig configures what "show" prints.
type DisplayConfig struct {
	MaxAge   string `json:"max_age,omitempty"` // Go duration; empty means no limit
	Ancestry *bool  `json:"ancestry,omitempty"`
	Color    string `json:"color,omitempty"` // auto, always, never
}

// IngestConfig configures how event identifiers are interpreted.
type IngestConfig struct {
	Separator string `json:"separator,omitempty"`
}

// ConfigurationConfig overrides how a run configuration is presented.
type ConfigurationConfig struct {
	Name string `json:"name"`
}

// ShowAncestry reports whether enclosing entries are printed next to each entry.
func (d *DisplayConfig) ShowAncestry() bool {
	return d == nil || d.Ancestry == nil || *d.Ancestry
}

// Names returns the display-name overrides keyed by configuration ID.
func (c *Config) Names() map[string]string {
	names := make(map[string]string, len(c.Configurations))
	for id, cc := range c.Configurations {
		if cc.Name != "" {
			names[id] = cc.Name
		}
	}
	return names
}
