// Package engine orchestrates a cleanup run: candidate scan, task
// planning, and bounded-concurrency execution with size accounting.
package engine

import (
	"time"

	"github.com/lakshaymaurya-felt/devmole/internal/ecosystem"
)

// Task is one unit of cleanup work: a project directory paired with the
// ecosystem spec that matched it. A task is consumed exactly once and
// never retried.
type Task struct {
	Dir  string
	Spec ecosystem.Spec
}

// Outcome is the immutable result of executing one task.
type Outcome struct {
	Dir       string
	Ecosystem string

	// Succeeded is false only for spawn/deletion failures; a clean command
	// that ran and exited nonzero still counts as succeeded.
	Succeeded bool
	Err       error

	// SizeBefore and SizeAfter are the measured directory sizes in bytes,
	// zero when unmeasured. Exact is false when either measurement hit a
	// traversal ceiling and is only a lower bound.
	SizeBefore int64
	SizeAfter  int64
	Exact      bool

	// BytesFreed is max(0, SizeBefore-SizeAfter).
	BytesFreed int64
}

// Summary aggregates a whole run.
type Summary struct {
	TasksPlanned   int
	TasksCompleted int
	TasksFailed    int
	BytesFreed     int64
	Warnings       []string
	Elapsed        time.Duration
}
