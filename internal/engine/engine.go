package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lakshaymaurya-felt/devmole/internal/ecosystem"
	"github.com/lakshaymaurya-felt/devmole/internal/scan"
)

// Options configures one cleanup run. Root and Exclude are assumed to be
// pre-validated (pathguard); Limits and Concurrency are positive.
type Options struct {
	Root        string
	Exclude     []string
	Limits      scan.Limits
	Concurrency int
	Registry    []ecosystem.Spec
	DryRun      bool

	Logger *zap.Logger

	// OnPlan, if non-nil, is called once after planning with the task list
	// and scan warnings, before any cleanup starts.
	OnPlan func(tasks []Task, warnings []string)

	// OnOutcome, if non-nil, receives each task's outcome in completion
	// order. Purely observational; it cannot alter the summary.
	OnOutcome func(Outcome)
}

// Run scans the root, plans cleanup tasks against the registry, and
// executes them. The only terminal error is failing to obtain the
// candidate set at all (root inaccessible); every per-task error is
// captured in that task's outcome instead.
func Run(ctx context.Context, opts Options) (Summary, error) {
	start := time.Now()
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	scanner := scan.NewScanner(opts.Exclude, opts.Limits.MaxDepth, log)
	dirs, warnings, err := scanner.Candidates(opts.Root)
	if err != nil {
		return Summary{}, err
	}

	tasks := Plan(dirs, opts.Registry)
	log.Debug("run planned",
		zap.Int("candidates", len(dirs)),
		zap.Int("tasks", len(tasks)))

	if opts.OnPlan != nil {
		opts.OnPlan(tasks, warnings)
	}

	sched := NewScheduler(opts.Concurrency, opts.Limits, log, opts.OnOutcome)
	if opts.DryRun {
		sched.SetDryRun()
	}

	summary := sched.Execute(ctx, tasks)
	summary.Warnings = warnings
	summary.Elapsed = time.Since(start)
	return summary, nil
}
