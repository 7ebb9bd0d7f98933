package commands

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/mazegen/internal/config"
	"github.com/NielsdaWheelz/mazegen/internal/fs"
	"github.com/NielsdaWheelz/mazegen/internal/pipeline"
	"github.com/NielsdaWheelz/mazegen/internal/service"
)

// GenerateJSON implements the `mazegen json` command: one script per JSON
// materials file in cfg.JSON.OutDir.
func GenerateJSON(ctx context.Context, fsys fs.FS, cfg config.Config, log *zap.Logger, stdout io.Writer) error {
	p := pipeline.NewPipeline(service.NewJSON(fsys, log))
	st, err := p.Run(ctx, pipeline.Options{
		MaterialsDir: cfg.MaterialsDir,
		Pattern:      cfg.JSON.Pattern,
		Out:          cfg.JSON.OutDir,
		TemplatePath: cfg.JSON.Template,
	})
	if err != nil {
		return err
	}
	writeGenerateOutput(stdout, st)
	return nil
}

// GenerateText implements the `mazegen text` command: one runtime-sampled
// script at cfg.Text.OutPath covering every text materials file.
func GenerateText(ctx context.Context, fsys fs.FS, cfg config.Config, log *zap.Logger, stdout io.Writer) error {
	p := pipeline.NewPipeline(service.NewText(fsys, log))
	st, err := p.Run(ctx, textOptions(cfg))
	if err != nil {
		return err
	}
	writeGenerateOutput(stdout, st)
	return nil
}

func textOptions(cfg config.Config) pipeline.Options {
	return pipeline.Options{
		MaterialsDir:    cfg.MaterialsDir,
		Pattern:         cfg.Text.Pattern,
		Out:             cfg.Text.OutPath,
		ItemsPerSubject: cfg.Text.ItemsPerSubject,
		ContactEmail:    cfg.Text.ContactEmail,
		TemplatePath:    cfg.Text.Template,
	}
}

// writeGenerateOutput writes the stable key: value output for json and text.
func writeGenerateOutput(w io.Writer, st *pipeline.State) {
	fmt.Fprintf(w, "materials_dir: %s\n", st.Opts.MaterialsDir)
	fmt.Fprintf(w, "files: %d\n", len(st.Files))
	fmt.Fprintf(w, "records: %d\n", st.Records())
	fmt.Fprintf(w, "conditions: %s\n", listOrNone(st.Conditions))
	fmt.Fprintf(w, "written: %s\n", listOrNone(st.Written))
	for _, warn := range st.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn.Message)
	}
}
