package render

import (
	"encoding/json"
	"io"

	"github.com/NielsdaWheelz/mazegen/internal/sampling"
)

// CheckSummary is the result of `mazegen check`, for both human and JSON output.
// This is the public contract for check --json output.
type CheckSummary struct {
	// MaterialsDir is the directory that was scanned.
	MaterialsDir string `json:"materials_dir"`

	// Files are the materials files that were loaded, in processing order.
	Files []string `json:"files"`

	// Records is the number of records across all files.
	Records int `json:"records"`

	// Conditions are the distinct condition tags, sorted.
	Conditions []string `json:"conditions"`

	// Selector is the generated selector expression.
	Selector string `json:"selector"`

	// Plan is the per-tag sampling the generated script will perform.
	Plan sampling.Plan `json:"plan"`

	// Shortfall is how many items floor rounding leaves unallocated.
	Shortfall int `json:"shortfall"`
}

// CheckJSONEnvelope is the stable JSON output format for check --json.
type CheckJSONEnvelope struct {
	SchemaVersion string       `json:"schema_version"`
	Data          CheckSummary `json:"data"`
}

// WriteCheckJSON writes the check output as JSON to the given writer.
func WriteCheckJSON(w io.Writer, s CheckSummary) error {
	// Use empty slices for valid JSON array output
	if s.Files == nil {
		s.Files = []string{}
	}
	if s.Conditions == nil {
		s.Conditions = []string{}
	}
	if s.Plan.Allocations == nil {
		s.Plan.Allocations = []sampling.Allocation{}
	}

	env := CheckJSONEnvelope{
		SchemaVersion: "1.0",
		Data:          s,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(env)
}
