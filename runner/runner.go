// Package runner orchestrates analysis execution: it resolves an analysis
// by level and name, binds caller-supplied values, enforces the
// unmet-requirements check and reports the outcome.
package runner

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/scopemetrics/scopemetrics/analysis"
	"github.com/scopemetrics/scopemetrics/config"
	"github.com/scopemetrics/scopemetrics/schema"
)

// Level identifies an analysis category and selects the matching registry.
type Level string

const (
	LevelImage       Level = "image"
	LevelDataset     Level = "dataset"
	LevelProgression Level = "progression"
)

// Valid reports whether the level is one of the three known categories.
func (l Level) Valid() bool {
	switch l {
	case LevelImage, LevelDataset, LevelProgression:
		return true
	}
	return false
}

// Report is the outcome of one analysis run. Artifact ownership transfers
// to the caller with the report.
type Report struct {
	RunID    uuid.UUID
	Level    Level
	Analysis string

	// Succeeded is the analysis's own boolean outcome. False with a
	// non-empty Unmet list means the run was refused; false with an empty
	// list means the analysis soft-failed.
	Succeeded bool
	Unmet     []string
	Artifacts []schema.Artifact

	Started  time.Time
	Finished time.Time
}

// Runner executes analyses from the per-level registries. Safe for
// concurrent use: each run works on a fresh analysis instance.
type Runner struct {
	registries map[Level]*analysis.Registry
	logger     *slog.Logger
}

// New creates a Runner over the three process-wide registries.
func New(logger *slog.Logger) *Runner {
	return NewWithRegistries(logger, map[Level]*analysis.Registry{
		LevelImage:       analysis.ImageAnalyses,
		LevelDataset:     analysis.DatasetAnalyses,
		LevelProgression: analysis.ProgressionAnalyses,
	})
}

// NewWithRegistries creates a Runner over explicit registries, mainly for
// tests that should not touch process-wide state.
func NewWithRegistries(logger *slog.Logger, registries map[Level]*analysis.Registry) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{registries: registries, logger: logger}
}

// Registry returns the registry for a level.
func (r *Runner) Registry(level Level) (*analysis.Registry, error) {
	reg, ok := r.registries[level]
	if !ok {
		return nil, fmt.Errorf("unknown analysis level %q", level)
	}
	return reg, nil
}

// Run creates a fresh instance of the named analysis, binds the given
// values and executes it. Lookup and bind failures are hard errors; an
// analysis that refuses to run or soft-fails is reported through the
// Report, not an error.
func (r *Runner) Run(level Level, name string, bindings map[string]any) (*Report, error) {
	reg, err := r.Registry(level)
	if err != nil {
		return nil, err
	}

	a, err := reg.New(name)
	if err != nil {
		return nil, err
	}

	for k, v := range bindings {
		if err := a.Bind(k, v); err != nil {
			return nil, fmt.Errorf("binding %q: %w", k, err)
		}
	}

	report := &Report{
		RunID:    uuid.New(),
		Level:    level,
		Analysis: name,
		Started:  time.Now(),
	}

	r.logger.Info("running analysis",
		"run_id", report.RunID, "level", string(level), "analysis", name)

	unmet, ok := analysis.Execute(a)
	report.Finished = time.Now()
	report.Succeeded = ok
	report.Unmet = unmet
	report.Artifacts = a.Results()

	outcome := "success"
	switch {
	case len(unmet) > 0:
		outcome = "unmet_requirements"
		r.logger.Warn("analysis refused to run",
			"run_id", report.RunID, "analysis", name, "unmet", unmet)
	case !ok:
		outcome = "failed"
		r.logger.Warn("analysis reported failure",
			"run_id", report.RunID, "analysis", name)
	default:
		r.logger.Info("analysis finished",
			"run_id", report.RunID, "analysis", name,
			"artifacts", len(report.Artifacts),
			"duration", report.Finished.Sub(report.Started))
	}

	runsTotal.WithLabelValues(string(level), name, outcome).Inc()
	runDuration.WithLabelValues(string(level), name).
		Observe(report.Finished.Sub(report.Started).Seconds())

	return report, nil
}

// RunConfigured runs the named analysis with the configuration's metadata
// bindings for it applied first. Explicit bindings override configured
// ones.
func (r *Runner) RunConfigured(cfg *config.Config, level Level, name string, bindings map[string]any) (*Report, error) {
	merged := make(map[string]any)
	if entry, ok := cfg.Analysis(name); ok {
		for k, v := range entry.Metadata {
			merged[k] = v
		}
	}
	for k, v := range bindings {
		merged[k] = v
	}
	return r.Run(level, name, merged)
}
