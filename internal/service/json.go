package service

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/mazegen/internal/core"
	"github.com/NielsdaWheelz/mazegen/internal/errors"
	"github.com/NielsdaWheelz/mazegen/internal/fs"
	"github.com/NielsdaWheelz/mazegen/internal/materials"
	"github.com/NielsdaWheelz/mazegen/internal/pipeline"
	"github.com/NielsdaWheelz/mazegen/internal/record"
	"github.com/NielsdaWheelz/mazegen/internal/render"
	"github.com/NielsdaWheelz/mazegen/internal/scaffold"
	"github.com/NielsdaWheelz/mazegen/internal/selector"
)

// JSONService generates one script per JSON materials file. Records are
// substituted as written and the selector covers only that file's conditions.
type JSONService struct {
	base
}

var _ pipeline.Service = (*JSONService)(nil)

// NewJSON creates a JSONService. A nil fsys uses the real filesystem and a
// nil logger discards output.
func NewJSON(fsys fs.FS, log *zap.Logger) *JSONService {
	b := newBase(fsys, log)
	b.load = materials.LoadJSON
	b.templateName = scaffold.JSONIncludeName
	b.templateText = scaffold.JSONIncludeTemplate
	return &JSONService{base: b}
}

// Build encodes each file's records and selector into one script. Two inputs
// that would write the same <stem>.js are rejected.
func (s *JSONService) Build(_ context.Context, st *pipeline.State) error {
	st.Groups = materials.GroupByTag(st.Materials)
	st.Conditions = selector.Conditions(st.Groups.All())
	st.Selector = selector.Build(st.Conditions)

	sources := make(map[string]string, len(st.Materials))
	for _, f := range st.Materials {
		out := filepath.Join(st.Opts.Out, core.ScriptName(f.Path))
		if prev, ok := sources[out]; ok {
			return errors.NewWithDetails(errors.EValidation,
				f.Path+" and "+prev+" would both write "+out,
				map[string]string{"file": f.Path, "path": out})
		}
		sources[out] = f.Path

		items := make([]string, 0, len(f.Records))
		for _, rec := range f.Records {
			b, err := record.Marshal(rec)
			if err != nil {
				return err
			}
			items = append(items, string(b))
		}

		sel := selector.ForRecords(f.Records)
		s.log.Debug("built script",
			zap.String("file", f.Path),
			zap.String("path", out),
			zap.String("selector", sel))
		st.Scripts = append(st.Scripts, pipeline.Script{
			Path:   out,
			Source: f.Path,
			Data:   render.JSONInclude{Selector: sel, Items: items},
		})
	}
	return nil
}
