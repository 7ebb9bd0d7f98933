// Package service provides the concrete implementations of pipeline.Service.
// It wires materials loading, selector building, sampling and template
// rendering into the JSON and text generation pipelines.
package service

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/mazegen/internal/errors"
	"github.com/NielsdaWheelz/mazegen/internal/fs"
	"github.com/NielsdaWheelz/mazegen/internal/materials"
	"github.com/NielsdaWheelz/mazegen/internal/pipeline"
	"github.com/NielsdaWheelz/mazegen/internal/render"
)

// base holds the steps shared by both pipelines.
type base struct {
	fsys fs.FS
	log  *zap.Logger

	// load parses one materials file.
	load func(fsys fs.FS, path string) (materials.File, error)

	// templateName and templateText are the embedded template.
	templateName string
	templateText string
}

// Discover lists the materials files to process. A missing directory or an
// empty match is a warning, not an error: the pipeline still writes output.
func (b *base) Discover(_ context.Context, st *pipeline.State) error {
	files, err := materials.Discover(b.fsys, st.Opts.MaterialsDir, st.Opts.Pattern)
	if err != nil {
		return err
	}
	st.Files = files

	if len(files) == 0 {
		st.Warn(pipeline.WarnNoMaterials, "no materials found in "+st.Opts.MaterialsDir+" matching "+st.Opts.Pattern)
		b.log.Warn("no materials found",
			zap.String("dir", st.Opts.MaterialsDir),
			zap.String("pattern", st.Opts.Pattern))
	}
	return nil
}

// Load parses every discovered file, stopping at the first bad record.
func (b *base) Load(ctx context.Context, st *pipeline.State) error {
	for _, path := range st.Files {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, err := b.load(b.fsys, path)
		if err != nil {
			return err
		}
		b.log.Debug("loaded materials",
			zap.String("file", f.Path),
			zap.String("tag", f.Tag),
			zap.Int("records", len(f.Records)))
		st.Materials = append(st.Materials, f)
	}
	return nil
}

// Render fills the template for every script built by the previous step.
func (b *base) Render(_ context.Context, st *pipeline.State) error {
	name, text, err := b.template(st.Opts.TemplatePath)
	if err != nil {
		return err
	}
	for i := range st.Scripts {
		out, err := render.Script(name, text, st.Scripts[i].Data)
		if err != nil {
			return err
		}
		st.Scripts[i].Content = out
	}
	return nil
}

// template returns the override template at path, or the embedded one.
func (b *base) template(path string) (string, string, error) {
	if path == "" {
		return b.templateName, b.templateText, nil
	}
	data, err := b.fsys.ReadFile(path)
	if err != nil {
		return "", "", errors.WrapWithDetails(errors.ETemplate, "failed to read template "+path, err,
			map[string]string{"template": path})
	}
	b.log.Debug("using template override", zap.String("template", path))
	return path, string(data), nil
}

// Write writes every rendered script atomically, creating parent directories.
func (b *base) Write(ctx context.Context, st *pipeline.State) error {
	for _, s := range st.Scripts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fs.WriteOutput(b.fsys, s.Path, s.Content, fileMode); err != nil {
			return errors.WrapWithDetails(errors.EWriteFailed, "failed to write "+s.Path, err,
				map[string]string{"path": s.Path})
		}
		st.Written = append(st.Written, s.Path)
		b.log.Debug("wrote script", zap.String("path", s.Path), zap.Int("bytes", len(s.Content)))
	}

	b.log.Info("generated scripts",
		zap.Int("files", len(st.Files)),
		zap.Int("records", st.Records()),
		zap.Int("scripts", len(st.Written)),
		zap.Strings("conditions", st.Conditions))
	return nil
}

func newBase(fsys fs.FS, log *zap.Logger) base {
	if fsys == nil {
		fsys = fs.NewRealFS()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return base{fsys: fsys, log: log}
}

// fileMode is the mode of generated scripts.
const fileMode os.FileMode = 0o644
