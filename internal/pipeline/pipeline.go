// Package pipeline runs the scaffolding steps for `advent new` in a fixed order,
// short-circuits on the first error and preserves AdventError codes.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/advent/internal/core"
	"github.com/NielsdaWheelz/advent/internal/errors"
)

// State accumulates what the steps learn and produce.
type State struct {
	ID core.ProjectID

	// Populated by EnsurePeriodDir
	PeriodDir string

	// Populated by GenerateProject
	ProjectDir string
	BinName    string

	// Populated by CopyTemplate
	MainFile string

	// Populated by UpdateManifest
	ManifestFile string
}

// ScaffoldService implements the scaffolding steps.
// Implementations are injected so the order can be tested without cargo.
type ScaffoldService interface {
	// EnsurePeriodDir creates <period>/ if missing.
	EnsurePeriodDir(ctx context.Context, st *State) error

	// GenerateProject asks the build tool for a new binary project.
	GenerateProject(ctx context.Context, st *State) error

	// CopyTemplate replaces src/main.<ext> with the template.
	CopyTemplate(ctx context.Context, st *State) error

	// UpdateManifest marks the shared library dependency as workspace-inherited.
	UpdateManifest(ctx context.Context, st *State) error

	// RunGenerator runs the per-project generator binary once.
	RunGenerator(ctx context.Context, st *State) error
}

// Step name constants.
const (
	StepEnsurePeriodDir = "EnsurePeriodDir"
	StepGenerateProject = "GenerateProject"
	StepCopyTemplate    = "CopyTemplate"
	StepUpdateManifest  = "UpdateManifest"
	StepRunGenerator    = "RunGenerator"
)

// Pipeline orchestrates the scaffolding steps.
type Pipeline struct {
	svc ScaffoldService
	log *zap.Logger
}

// NewPipeline creates a pipeline over svc. A nil logger disables logging.
func NewPipeline(svc ScaffoldService, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{svc: svc, log: log}
}

// Run executes, in order:
//  1. EnsurePeriodDir
//  2. GenerateProject
//  3. CopyTemplate
//  4. UpdateManifest
//  5. RunGenerator
//
// The first failing step stops the run. An *AdventError is returned as is;
// any other error is wrapped as E_INTERNAL with the step name in details.
// The state is returned even on error so callers can report partial progress.
func (p *Pipeline) Run(ctx context.Context, id core.ProjectID) (*State, error) {
	st := &State{ID: id}

	steps := []struct {
		name string
		fn   func(context.Context, *State) error
	}{
		{StepEnsurePeriodDir, p.svc.EnsurePeriodDir},
		{StepGenerateProject, p.svc.GenerateProject},
		{StepCopyTemplate, p.svc.CopyTemplate},
		{StepUpdateManifest, p.svc.UpdateManifest},
		{StepRunGenerator, p.svc.RunGenerator},
	}

	for _, step := range steps {
		start := time.Now()
		p.log.Debug("step started", zap.String("step", step.name), zap.Stringer("project", id))
		if err := step.fn(ctx, st); err != nil {
			p.log.Debug("step failed", zap.String("step", step.name), zap.Error(err))
			return st, wrapStepError(err, step.name)
		}
		p.log.Debug("step finished",
			zap.String("step", step.name),
			zap.Duration("elapsed", time.Since(start)))
	}

	return st, nil
}

// wrapStepError ensures the error is an *AdventError.
func wrapStepError(err error, stepName string) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsAdventError(err); ok {
		return err
	}
	return errors.WrapWithDetails(
		errors.EInternal,
		"internal error",
		err,
		map[string]string{"step": stepName},
	)
}
