// Package pipeline provides the generation pipeline orchestrator.
// The pipeline executes steps in a fixed order, short-circuits on first error,
// and preserves GenError codes.
package pipeline

import (
	"context"

	"github.com/NielsdaWheelz/mazegen/internal/errors"
	"github.com/NielsdaWheelz/mazegen/internal/materials"
	"github.com/NielsdaWheelz/mazegen/internal/sampling"
)

// Options contains the inputs for running a pipeline.
type Options struct {
	// MaterialsDir is the directory scanned for materials files.
	MaterialsDir string

	// Pattern is the doublestar glob matched under MaterialsDir.
	Pattern string

	// Out is the output directory (JSON pipeline) or output file (text pipeline).
	Out string

	// ItemsPerSubject is the sampling budget (text pipeline only).
	ItemsPerSubject int

	// ContactEmail is shown in the text script when result upload fails.
	ContactEmail string

	// TemplatePath optionally replaces the embedded template.
	TemplatePath string

	// DryRun runs every step except Write.
	DryRun bool
}

// Warning represents a non-fatal warning emitted during pipeline execution.
type Warning struct {
	// Code is a stable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string
}

// Warning codes.
const (
	WarnNoMaterials = "W_NO_MATERIALS"
	WarnShortfall   = "W_SAMPLING_SHORTFALL"
)

// Script is one generated output file.
type Script struct {
	// Path is where the script is written.
	Path string

	// Source is the materials file the script was built from (JSON pipeline),
	// empty for the combined text script.
	Source string

	// Data is the template input, populated by Build.
	Data any

	// Content is the rendered script, populated by Render.
	Content []byte
}

// State accumulates state during pipeline execution.
// Fields are populated by steps as they execute.
type State struct {
	// From opts (copied at start)
	Opts Options

	// Populated by Discover
	Files []string

	// Populated by Load
	Materials []materials.File

	// Populated by Build
	Groups     materials.ByTag
	Conditions []string
	Selector   string
	Plan       sampling.Plan
	Scripts    []Script

	// Populated by Write
	Written []string

	// Accumulated warnings (non-fatal)
	Warnings []Warning
}

// Records returns the number of records loaded.
func (st *State) Records() int {
	n := 0
	for _, f := range st.Materials {
		n += len(f.Records)
	}
	return n
}

// Warn appends a warning.
func (st *State) Warn(code, msg string) {
	st.Warnings = append(st.Warnings, Warning{Code: code, Message: msg})
}

// Service defines the step implementations for a generation pipeline.
// Each method corresponds to a pipeline step executed in order.
// Implementations are injected to allow testing without a real filesystem.
type Service interface {
	// Discover lists the materials files to process.
	Discover(ctx context.Context, st *State) error

	// Load parses every discovered file into records.
	Load(ctx context.Context, st *State) error

	// Build computes conditions, selectors and template data.
	Build(ctx context.Context, st *State) error

	// Render fills the script templates.
	Render(ctx context.Context, st *State) error

	// Write writes the rendered scripts atomically.
	Write(ctx context.Context, st *State) error
}

// Pipeline orchestrates the execution of generation steps in a fixed order.
type Pipeline struct {
	svc Service
}

// NewPipeline creates a pipeline with the given service implementation.
func NewPipeline(svc Service) *Pipeline {
	return &Pipeline{svc: svc}
}

// Run executes the pipeline steps in fixed order:
//  1. Discover
//  2. Load
//  3. Build
//  4. Render
//  5. Write (skipped when opts.DryRun)
//
// Behavior:
//   - Executes steps in order; short-circuits on first error
//   - If error is *GenError, preserves code/message/details exactly
//   - If error is not *GenError, wraps into *GenError with:
//     Code = E_INTERNAL, Message = "internal error", Cause = original error,
//     Details = map[string]string{"step": "<StepName>"}
//   - Returns the state even on error, for reporting partial progress
func (p *Pipeline) Run(ctx context.Context, opts Options) (*State, error) {
	st := &State{Opts: opts}

	if err := p.step(ctx, st, StepDiscover, p.svc.Discover); err != nil {
		return st, err
	}

	if err := p.step(ctx, st, StepLoad, p.svc.Load); err != nil {
		return st, err
	}

	if err := p.step(ctx, st, StepBuild, p.svc.Build); err != nil {
		return st, err
	}

	if err := p.step(ctx, st, StepRender, p.svc.Render); err != nil {
		return st, err
	}

	if opts.DryRun {
		return st, nil
	}

	if err := p.step(ctx, st, StepWrite, p.svc.Write); err != nil {
		return st, err
	}

	return st, nil
}

func (p *Pipeline) step(ctx context.Context, st *State, name string, fn func(context.Context, *State) error) error {
	if err := ctx.Err(); err != nil {
		return wrapStepError(err, name)
	}
	return wrapStepError(fn(ctx, st), name)
}

// wrapStepError ensures the error is a *GenError.
// If already *GenError, returns it unchanged.
// Otherwise wraps it with E_INTERNAL and step name in details.
func wrapStepError(err error, stepName string) error {
	if err == nil {
		return nil
	}

	if _, ok := errors.AsGenError(err); ok {
		return err
	}

	return errors.WrapWithDetails(
		errors.EInternal,
		"internal error",
		err,
		map[string]string{"step": stepName},
	)
}

// Step name constants.
const (
	StepDiscover = "Discover"
	StepLoad     = "Load"
	StepBuild    = "Build"
	StepRender   = "Render"
	StepWrite    = "Write"
)
