package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/mazegen/internal/fs"
	"github.com/NielsdaWheelz/mazegen/internal/materials"
	"github.com/NielsdaWheelz/mazegen/internal/pipeline"
	"github.com/NielsdaWheelz/mazegen/internal/record"
	"github.com/NielsdaWheelz/mazegen/internal/render"
	"github.com/NielsdaWheelz/mazegen/internal/sampling"
	"github.com/NielsdaWheelz/mazegen/internal/scaffold"
	"github.com/NielsdaWheelz/mazegen/internal/selector"
)

// TextService generates the single runtime-sampled script for text
// materials. Every record has redo forced to true by the loader.
type TextService struct {
	base
}

var _ pipeline.Service = (*TextService)(nil)

// NewText creates a TextService. A nil fsys uses the real filesystem and a
// nil logger discards output.
func NewText(fsys fs.FS, log *zap.Logger) *TextService {
	b := newBase(fsys, log)
	b.load = materials.LoadText
	b.templateName = scaffold.TextIncludeName
	b.templateText = scaffold.TextIncludeTemplate
	return &TextService{base: b}
}

// Build groups records by file tag, computes the selector over every
// condition and the sampling plan the script will apply at runtime.
func (s *TextService) Build(_ context.Context, st *pipeline.State) error {
	st.Groups = materials.GroupByTag(st.Materials)
	st.Conditions = selector.Conditions(st.Groups.All())
	st.Selector = selector.Build(st.Conditions)
	st.Plan = sampling.NewPlan(st.Groups.Tags(), st.Groups.Sizes(), st.Opts.ItemsPerSubject)

	if st.Groups.Total() > 0 {
		if short := st.Plan.Shortfall(); short > 0 {
			st.Warn(pipeline.WarnShortfall, "floor rounding leaves "+strconv.Itoa(short)+" of "+
				strconv.Itoa(st.Opts.ItemsPerSubject)+" items unallocated")
			s.log.Debug("sampling shortfall",
				zap.Int("items_per_subject", st.Opts.ItemsPerSubject),
				zap.Int("sampled", st.Plan.Total()))
		}
	}

	byTag, err := record.Marshal(st.Groups)
	if err != nil {
		return err
	}

	st.Scripts = []pipeline.Script{{
		Path: st.Opts.Out,
		Data: render.TextInclude{
			Selector:        st.Selector,
			MaterialsByTag:  string(byTag),
			ItemsPerSubject: st.Opts.ItemsPerSubject,
			ContactEmail:    st.Opts.ContactEmail,
		},
	}}
	return nil
}
