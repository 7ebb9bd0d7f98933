// Package render fills script templates and formats command output.
package render

import (
	"bytes"
	"text/template"

	sprig "github.com/Masterminds/sprig/v3"

	"github.com/NielsdaWheelz/mazegen/internal/errors"
)

// JSONInclude is the data for one JSON-pipeline script.
type JSONInclude struct {
	// Selector is the startsWith(...) selector over this file's conditions.
	Selector string

	// Items are the file's records, each already encoded as JSON.
	Items []string
}

// TextInclude is the data for the combined text-pipeline script.
type TextInclude struct {
	// Selector covers every condition across all text materials.
	Selector string

	// MaterialsByTag is the encoded {"tag": [record, ...]} object.
	MaterialsByTag string

	// ItemsPerSubject is the runtime sampling budget.
	ItemsPerSubject int

	// ContactEmail is shown when result upload fails.
	ContactEmail string
}

// Script executes a script template over data. Values are inserted as plain
// text (no escaping), so the template text is reproduced exactly apart from
// its actions. Missing fields are an error.
func Script(name, text string, data any) ([]byte, error) {
	tmpl, err := template.New(name).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return nil, errors.WrapWithDetails(errors.ETemplate, "failed to parse template "+name+": "+err.Error(), err,
			map[string]string{"template": name})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.WrapWithDetails(errors.ETemplate, "failed to render template "+name+": "+err.Error(), err,
			map[string]string{"template": name})
	}
	return buf.Bytes(), nil
}
