package engine

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/lakshaymaurya-felt/devmole/internal/scan"
)

// Scheduler executes planned tasks in two sequential passes — measure
// everything, then clean everything — each under the same concurrency cap.
// Measuring all sizes before any cleanup starts keeps the freed-space
// report consistent with the task set as it stood at plan time.
type Scheduler struct {
	concurrency int
	limits      scan.Limits
	log         *zap.Logger

	mu        sync.Mutex
	onOutcome func(Outcome)

	// cleanFn performs one task's cleanup action. Overridable in tests;
	// the default dispatches on the ecosystem's strategy.
	cleanFn func(ctx context.Context, t Task) error
}

// NewScheduler creates a scheduler with the given concurrency cap, which
// is clamped to a minimum of one. onOutcome, if non-nil, receives each
// task's outcome in completion order; it is invoked serially.
func NewScheduler(concurrency int, limits scan.Limits, log *zap.Logger, onOutcome func(Outcome)) *Scheduler {
	if concurrency < 1 {
		concurrency = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		concurrency: concurrency,
		limits:      limits,
		log:         log,
		onOutcome:   onOutcome,
		cleanFn: func(ctx context.Context, t Task) error {
			return t.Spec.Clean(ctx, t.Dir)
		},
	}
}

// SetDryRun replaces the cleanup action with a no-op. Sizes are still
// measured so the run reports what it would have touched.
func (s *Scheduler) SetDryRun() {
	s.cleanFn = func(context.Context, Task) error { return nil }
}

// Execute runs both passes over tasks and returns the aggregate summary.
// A single task's failure never cancels or fails its siblings; the only
// cooperative stop is ctx, observed at semaphore acquisition and by the
// subprocess wait inside the cleanup action.
func (s *Scheduler) Execute(ctx context.Context, tasks []Task) Summary {
	n := len(tasks)
	summary := Summary{TasksPlanned: n}
	if n == 0 {
		return summary
	}

	before := make([]int64, n)
	exactBefore := make([]bool, n)

	// Pass 1: measure every task's size under the concurrency cap.
	sem := semaphore.NewWeighted(int64(s.concurrency))
	var wg sync.WaitGroup
	for i := range tasks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				exactBefore[i] = true // unmeasured, reported as 0
				return
			}
			defer sem.Release(1)
			before[i], exactBefore[i] = scan.Usage(tasks[i].Dir, s.limits)
		}(i)
	}
	wg.Wait()

	// Pass 2: clean and re-measure. Outcomes stream out as they complete.
	outcomes := make([]Outcome, n)
	for i := range tasks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			t := tasks[i]
			out := Outcome{
				Dir:        t.Dir,
				Ecosystem:  t.Spec.ID,
				SizeBefore: before[i],
				Exact:      exactBefore[i],
			}

			if err := sem.Acquire(ctx, 1); err != nil {
				out.Err = fmt.Errorf("cleanup of %s skipped: %w", t.Dir, err)
				outcomes[i] = out
				s.emit(out)
				return
			}
			defer sem.Release(1)

			if err := s.cleanFn(ctx, t); err != nil {
				out.Err = err
				s.log.Debug("task failed",
					zap.String("dir", t.Dir),
					zap.String("ecosystem", t.Spec.ID),
					zap.Error(err))
			} else {
				out.Succeeded = true
			}

			after, exactAfter := scan.Usage(t.Dir, s.limits)
			out.SizeAfter = after
			out.Exact = out.Exact && exactAfter
			out.BytesFreed = scan.FreedBytes(out.SizeBefore, after)

			outcomes[i] = out
			s.emit(out)
		}(i)
	}
	wg.Wait()

	for _, out := range outcomes {
		// A failed delete-paths task may still have removed some sub-paths;
		// space physically reclaimed is counted either way.
		summary.BytesFreed += out.BytesFreed
		if out.Succeeded {
			summary.TasksCompleted++
		} else {
			summary.TasksFailed++
		}
	}
	return summary
}

// emit delivers one outcome to the observer. Serialized: the reporter is
// a plain consumer and must not need its own locking.
func (s *Scheduler) emit(out Outcome) {
	if s.onOutcome == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onOutcome(out)
}
