package config

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/NielsdaWheelz/mazegen/internal/errors"
)

// ValidationError represents a single validation error with field context.
type ValidationError struct {
	Field string
	Msg   string
}

func (v *ValidationError) Error() string {
	if v.Field != "" {
		return v.Field + ": " + v.Msg
	}
	return v.Msg
}

// Validate checks the semantic rules the loader does not: required paths and
// patterns are set, patterns are valid globs, and the sampling budget is
// positive. Returns E_INVALID_CONFIG naming the first offending field.
func Validate(cfg Config) error {
	required := []struct {
		field string
		value string
	}{
		{"materials_dir", cfg.MaterialsDir},
		{"json.out_dir", cfg.JSON.OutDir},
		{"json.pattern", cfg.JSON.Pattern},
		{"text.out_path", cfg.Text.OutPath},
		{"text.pattern", cfg.Text.Pattern},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return invalid(r.field, "must be a non-empty string")
		}
	}

	for _, p := range []struct{ field, pattern string }{
		{"json.pattern", cfg.JSON.Pattern},
		{"text.pattern", cfg.Text.Pattern},
	} {
		if !doublestar.ValidatePattern(p.pattern) {
			return invalid(p.field, "invalid glob pattern "+p.pattern)
		}
	}

	if cfg.Text.ItemsPerSubject <= 0 {
		return invalid("text.items_per_subject", "must be a positive integer")
	}

	return nil
}

func invalid(field, msg string) error {
	ve := &ValidationError{Field: field, Msg: msg}
	return errors.WrapWithDetails(errors.EInvalidConfig, ve.Error(), ve,
		map[string]string{"field": field})
}
