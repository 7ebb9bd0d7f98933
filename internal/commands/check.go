package commands

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/mazegen/internal/config"
	"github.com/NielsdaWheelz/mazegen/internal/errors"
	"github.com/NielsdaWheelz/mazegen/internal/fs"
	"github.com/NielsdaWheelz/mazegen/internal/pipeline"
	"github.com/NielsdaWheelz/mazegen/internal/render"
	"github.com/NielsdaWheelz/mazegen/internal/service"
)

// CheckOpts holds options for the check command.
type CheckOpts struct {
	JSON bool
}

// Check implements the `mazegen check` command. It runs the text pipeline
// without writing and reports what a run would generate: files, conditions,
// the selector and the per-tag sampling plan.
func Check(ctx context.Context, fsys fs.FS, cfg config.Config, opts CheckOpts, log *zap.Logger, stdout io.Writer) error {
	popts := textOptions(cfg)
	popts.DryRun = true

	st, err := pipeline.NewPipeline(service.NewText(fsys, log)).Run(ctx, popts)
	if err != nil {
		return err
	}

	summary := render.CheckSummary{
		MaterialsDir: st.Opts.MaterialsDir,
		Files:        st.Files,
		Records:      st.Records(),
		Conditions:   st.Conditions,
		Selector:     st.Selector,
		Plan:         st.Plan,
	}
	if summary.Records > 0 {
		summary.Shortfall = st.Plan.Shortfall()
	}

	if opts.JSON {
		if err := render.WriteCheckJSON(stdout, summary); err != nil {
			return errors.Wrap(errors.EInternal, "failed to write JSON output", err)
		}
		return nil
	}
	if err := render.WriteCheckHuman(stdout, summary); err != nil {
		return errors.Wrap(errors.EInternal, "failed to write output", err)
	}
	return nil
}
