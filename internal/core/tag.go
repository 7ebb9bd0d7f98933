// Package core holds small pure helpers shared by the materials pipelines.
package core

import (
	"path/filepath"
	"strings"
)

// Stem returns the base name of path without its final extension.
// example: materials/critical_v2.txt -> critical_v2
// example: materials/a.b.json -> a.b
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TagFromStem returns the part of a file stem before the first underscore.
// A stem without underscores is its own tag.
// example: practiceA_x -> practiceA
// example: fillers -> fillers
// example: _hidden -> "" (empty tag)
func TagFromStem(stem string) string {
	tag, _, _ := strings.Cut(stem, "_")
	return tag
}

// TagFromPath is TagFromStem(Stem(path)).
func TagFromPath(path string) string {
	return TagFromStem(Stem(path))
}

// ScriptName returns the generated script name for an input file: <stem>.js.
func ScriptName(path string) string {
	return Stem(path) + ".js"
}
