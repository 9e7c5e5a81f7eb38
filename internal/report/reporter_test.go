package report

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lakshaymaurya-felt/devmole/internal/engine"
)

func TestPrinterPlan(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Plan([]engine.Task{{}, {}, {}}, []string{"max depth reached, skipping /deep"})

	out := buf.String()
	assert.Contains(t, out, "warning: max depth reached")
	assert.Contains(t, out, "Found 3 projects to clean")
}

func TestPrinterPlanEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)
	p.Plan(nil, nil)
	assert.Contains(t, buf.String(), "No projects to clean")
}

func TestPrinterOutcome(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Outcome(engine.Outcome{
		Dir: "/work/app", Ecosystem: "node",
		Succeeded: true, Exact: true, BytesFreed: 5 * 1024 * 1024,
	})
	p.Outcome(engine.Outcome{
		Dir: "/work/svc", Ecosystem: "cargo",
		Succeeded: true, Exact: false, BytesFreed: 1024,
	})
	p.Outcome(engine.Outcome{
		Dir: "/work/bad", Ecosystem: "maven",
		Err: errors.New("spawning \"mvn\" in /work/bad: not found"),
	})

	out := buf.String()
	assert.Contains(t, out, "✓ /work/app [node] freed 5.0 MB")
	assert.Contains(t, out, "≥1.0 KB") // inexact measurement is a lower bound
	assert.Contains(t, out, "✗ /work/bad [maven]")
	assert.Contains(t, out, "not found")

	succeeded, freed := p.Counters()
	assert.Equal(t, 2, succeeded)
	assert.Equal(t, int64(5*1024*1024+1024), freed)
}

func TestPrinterSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Summary(engine.Summary{
		TasksCompleted: 4,
		TasksFailed:    1,
		BytesFreed:     2 * 1024 * 1024 * 1024,
		Elapsed:        3200 * time.Millisecond,
	})

	out := buf.String()
	assert.Contains(t, out, "Cleaned 4 projects, freed 2.0 GB in 3.20s (1 failed)")
}

func TestPrinterSummaryNoFailures(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)
	p.Summary(engine.Summary{TasksCompleted: 1, Elapsed: time.Second})
	assert.NotContains(t, buf.String(), "failed")
	assert.Contains(t, buf.String(), "Cleaned 1 project,")
}
