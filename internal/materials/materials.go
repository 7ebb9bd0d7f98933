// Package materials discovers and loads stimulus files.
//
// Text files hold one near-JSON record per line; JSON files hold an array of
// records. Each file's tag is the stem of its name before the first
// underscore.
package materials

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/NielsdaWheelz/mazegen/internal/core"
	"github.com/NielsdaWheelz/mazegen/internal/errors"
	"github.com/NielsdaWheelz/mazegen/internal/fs"
	"github.com/NielsdaWheelz/mazegen/internal/record"
)

// File is the parsed content of one materials file.
type File struct {
	Path    string
	Tag     string
	Records []record.Record
}

// Discover lists the files under dir matching pattern, sorted by path.
// A missing dir yields no files; the caller decides whether that is worth a warning.
func Discover(fsys fs.FS, dir, pattern string) ([]string, error) {
	paths, err := fsys.Glob(dir, pattern)
	if err != nil {
		return nil, errors.WrapWithDetails(errors.EReadFailed,
			"failed to list materials in "+dir+": "+err.Error(), err,
			map[string]string{"dir": dir, "pattern": pattern})
	}
	return paths, nil
}

// LoadText parses a near-JSON materials file. Blank lines are skipped,
// trailing commas stripped, and every record gets redo forced to true.
// Errors carry the file and 1-based line number.
func LoadText(fsys fs.FS, path string) (File, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return File{}, errors.WrapWithDetails(errors.EReadFailed, "failed to read "+path, err,
			map[string]string{"file": path})
	}

	f := File{Path: path, Tag: core.TagFromPath(path)}
	for i, line := range strings.Split(string(data), "\n") {
		line = record.CleanLine(line)
		if line == "" {
			continue
		}
		rec, err := record.ParseLine(line)
		if err != nil {
			lineNo := strconv.Itoa(i + 1)
			return File{}, errors.Locate(err, errors.EParse, path+":"+lineNo,
				map[string]string{"file": path, "line": lineNo})
		}
		f.Records = append(f.Records, rec.WithRedo())
	}
	return f, nil
}

// LoadJSON parses a file holding a JSON array of records. Records are kept
// as written. Errors carry the file and 0-based record index.
func LoadJSON(fsys fs.FS, path string) (File, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return File{}, errors.WrapWithDetails(errors.EReadFailed, "failed to read "+path, err,
			map[string]string{"file": path})
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return File{}, errors.WrapWithDetails(errors.EParse,
			path+": materials must be a JSON array of records: "+err.Error(), err,
			map[string]string{"file": path})
	}

	f := File{Path: path, Tag: core.TagFromPath(path)}
	for i, raw := range raws {
		rec, err := record.Decode(raw)
		if err != nil {
			idx := strconv.Itoa(i)
			return File{}, errors.Locate(err, errors.EParse, path+": record "+idx,
				map[string]string{"file": path, "record": idx})
		}
		f.Records = append(f.Records, rec)
	}
	return f, nil
}
