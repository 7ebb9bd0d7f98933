// Package scaffold holds the built-in script templates and the files
// `mazegen init` lays down.
package scaffold

import _ "embed"

// JSONIncludeTemplate renders one script per JSON materials file.
// Fields: .Selector (string), .Items ([]string of encoded records).
//
//go:embed templates/json_include.js.tmpl
var JSONIncludeTemplate string

// TextIncludeTemplate renders the combined, runtime-sampled script for text
// materials. Fields: .Selector, .MaterialsByTag (encoded JSON object),
// .ItemsPerSubject (int), .ContactEmail (string).
//
//go:embed templates/text_include.js.tmpl
var TextIncludeTemplate string

// Template names, used in error messages and by `init --templates`.
const (
	JSONIncludeName = "json_include.js.tmpl"
	TextIncludeName = "text_include.js.tmpl"
)

// ConfigTemplate is the mazegen.yaml written by `mazegen init`.
// It must stay in sync with config.Default.
const ConfigTemplate = `# mazegen configuration. Command-line flags override these values.
materials_dir: materials

json:
  out_dir: data_includes
  pattern: "*.json"
  # template: templates/json_include.js.tmpl

text:
  out_path: data_includes/experiment.js
  pattern: "*.txt"
  items_per_subject: 115
  contact_email: jgauthie@mit.edu
  # template: templates/text_include.js.tmpl
`
