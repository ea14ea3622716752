package config

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/AndreyAkinshin/recenttests/internal/schema"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsInvalid reports whether err rejects the content of a config file, either
// by the schema or by Validate.
func IsInvalid(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || schema.IsValidationError(err)
}

// Validate checks a configuration for errors and returns warnings for non-fatal issues.
func Validate(cfg *Config) (warnings []string, err error) {
	if err := validateJournal(cfg.Journal); err != nil {
		return nil, err
	}

	displayWarnings, err := validateDisplay(cfg.Display)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, displayWarnings...)

	if err := validateIngest(cfg.Ingest); err != nil {
		return nil, err
	}

	if err := validateConfigurations(cfg.Configurations); err != nil {
		return nil, err
	}

	return warnings, nil
}

func validateJournal(j *JournalConfig) error {
	if j == nil {
		return nil
	}
	if j.Retention != "" {
		if _, err := ParseDuration(j.Retention); err != nil {
			return &ValidationError{Field: "journal.retention", Message: err.Error()}
		}
	}
	return nil
}

func validateDisplay(d *DisplayConfig) ([]string, error) {
	if d == nil {
		return nil, nil
	}
	var warnings []string
	if d.MaxAge != "" {
		age, err := ParseDuration(d.MaxAge)
		if err != nil {
			return nil, &ValidationError{Field: "display.max_age", Message: err.Error()}
		}
		if age < time.Minute {
			warnings = append(warnings, fmt.Sprintf("display.max_age %q hides almost every configuration", d.MaxAge))
		}
	}
	switch d.Color {
	case "", "auto", "always", "never":
	default:
		return nil, &ValidationError{
			Field:   "display.color",
			Message: `must be "auto", "always" or "never"`,
		}
	}
	return warnings, nil
}

func validateIngest(i *IngestConfig) error {
	if i == nil {
		return nil
	}
	if i.Separator == "://" {
		return &ValidationError{Field: "ingest.separator", Message: `must not be "://"`}
	}
	return nil
}

func validateConfigurations(configurations map[string]ConfigurationConfig) error {
	ids := make([]string, 0, len(configurations))
	for id := range configurations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if id == "" {
			return &ValidationError{Field: "configurations", Message: "configuration ID must not be empty"}
		}
		if configurations[id].Name == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("configurations.%s.name", id),
				Message: "is required",
			}
		}
	}
	return nil
}

// ParseDuration parses a Go duration that must be positive.
func ParseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", s)
	}
	return d, nil
}

// MaxAge returns the configured display age limit, or 0 when unlimited.
func (c *Config) MaxAge() time.Duration {
	if c.Display == nil || c.Display.MaxAge == "" {
		return 0
	}
	d, err := ParseDuration(c.Display.MaxAge)
	if err != nil {
		return 0
	}
	return d
}

// Retention returns the journal retention, or 0 when pruning is disabled.
func (c *Config) Retention() time.Duration {
	if c.Journal == nil || c.Journal.Retention == "" {
		return 0
	}
	d, err := ParseDuration(c.Journal.Retention)
	if err != nil {
		return 0
	}
	return d
}
