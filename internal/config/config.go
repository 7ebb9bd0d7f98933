// Package config handles loading and validation of mazegen.yaml.
package config

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/NielsdaWheelz/mazegen/internal/errors"
	"github.com/NielsdaWheelz/mazegen/internal/fs"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "mazegen.yaml"

// Config represents the parsed mazegen.yaml configuration.
type Config struct {
	MaterialsDir string     `yaml:"materials_dir"`
	JSON         JSONConfig `yaml:"json"`
	Text         TextConfig `yaml:"text"`
}

// JSONConfig configures the one-script-per-file JSON pipeline.
type JSONConfig struct {
	OutDir   string `yaml:"out_dir"`
	Pattern  string `yaml:"pattern"`
	Template string `yaml:"template"` // optional override of the embedded template
}

// TextConfig configures the combined, runtime-sampled text pipeline.
type TextConfig struct {
	OutPath         string `yaml:"out_path"`
	Pattern         string `yaml:"pattern"`
	ItemsPerSubject int    `yaml:"items_per_subject"`
	ContactEmail    string `yaml:"contact_email"`
	Template        string `yaml:"template"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaterialsDir: "materials",
		JSON: JSONConfig{
			OutDir:  "data_includes",
			Pattern: "*.json",
		},
		Text: TextConfig{
			OutPath:         "data_includes/experiment.js",
			Pattern:         "*.txt",
			ItemsPerSubject: 115,
			ContactEmail:    "jgauthie@mit.edu",
		},
	}
}

// Load reads the config file at path over the built-in defaults. Keys absent
// from the file keep their default value.
//
// A missing file is not an error unless required is set (the path was given
// explicitly), in which case it returns E_NO_CONFIG.
// Returns E_INVALID_CONFIG if the file is not valid YAML or has unknown keys.
// Does NOT perform semantic validation; call Validate for that.
func Load(filesystem fs.FS, path string, required bool) (Config, error) {
	cfg := Default()

	data, err := filesystem.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if required {
				return Config{}, errors.NewWithDetails(errors.ENoConfig, "config file not found: "+path,
					map[string]string{"path": path})
			}
			return cfg, nil
		}
		return Config{}, errors.WrapWithDetails(errors.ENoConfig, "failed to read config file "+path, err,
			map[string]string{"path": path})
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			// empty file
			return cfg, nil
		}
		return Config{}, errors.WrapWithDetails(errors.EInvalidConfig, "invalid yaml in "+path+": "+err.Error(), err,
			map[string]string{"path": path})
	}

	return cfg, nil
}

// LoadAndValidate loads the config, applies overrides in order (command-line
// flags), then validates the result. Overrides run before validation so an
// invalid file value replaced by a flag is not an error.
func LoadAndValidate(filesystem fs.FS, path string, required bool, overrides ...func(*Config)) (Config, error) {
	cfg, err := Load(filesystem, path, required)
	if err != nil {
		return Config{}, err
	}
	for _, apply := range overrides {
		apply(&cfg)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
