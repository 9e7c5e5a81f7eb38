// Package report renders cleanup progress and results: a plain line
// printer for non-interactive runs and a bubbletea model for live TTY
// progress. Reporters are observational consumers of the outcome stream;
// the engine's numeric results never depend on them.
package report

import (
	"fmt"
	"io"

	"github.com/lakshaymaurya-felt/devmole/internal/core"
	"github.com/lakshaymaurya-felt/devmole/internal/engine"
	"github.com/lakshaymaurya-felt/devmole/internal/ui"
)

// Printer writes one line per completed task and a closing summary.
// It keeps its own running counters, fed purely by the outcome stream.
type Printer struct {
	out        io.Writer
	color      bool
	succeeded  int
	bytesFreed int64
}

// NewPrinter creates a printer writing to out. With color disabled all
// lipgloss styling is skipped (piped output, NO_COLOR).
func NewPrinter(out io.Writer, color bool) *Printer {
	return &Printer{out: out, color: color}
}

func (p *Printer) styled(style interface{ Render(...string) string }, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// Plan reports the scan result before execution starts.
func (p *Printer) Plan(tasks []engine.Task, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintln(p.out, p.styled(ui.Warn, "  warning: "+w))
	}
	if len(tasks) == 0 {
		fmt.Fprintln(p.out, p.styled(ui.Muted, "  No projects to clean."))
		return
	}
	fmt.Fprintf(p.out, "  Found %d project%s to clean\n", len(tasks), core.Plural(len(tasks)))
}

// Outcome prints one task result in arrival order.
func (p *Printer) Outcome(o engine.Outcome) {
	if o.Succeeded {
		p.succeeded++
		p.bytesFreed += o.BytesFreed

		freed := core.FormatSize(o.BytesFreed)
		if !o.Exact {
			freed = "≥" + freed
		}
		fmt.Fprintf(p.out, "  %s %s %s %s\n",
			p.styled(ui.Good, "✓"),
			o.Dir,
			p.styled(ui.Accent, "["+o.Ecosystem+"]"),
			p.styled(ui.Muted, "freed "+freed))
		return
	}

	fmt.Fprintf(p.out, "  %s %s %s %s\n",
		p.styled(ui.Bad, "✗"),
		o.Dir,
		p.styled(ui.Accent, "["+o.Ecosystem+"]"),
		p.styled(ui.Bad, o.Err.Error()))
}

// Summary prints the closing line.
func (p *Printer) Summary(s engine.Summary) {
	line := fmt.Sprintf("Cleaned %d project%s, freed %s in %s",
		s.TasksCompleted, core.Plural(s.TasksCompleted),
		core.FormatSize(s.BytesFreed),
		core.FormatDuration(s.Elapsed))
	if s.TasksFailed > 0 {
		line += fmt.Sprintf(" (%d failed)", s.TasksFailed)
	}
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "  "+p.styled(ui.Good, line))
}

// Counters exposes the printer's running totals (tasks succeeded, bytes
// freed) accumulated from the outcome stream.
func (p *Printer) Counters() (int, int64) {
	return p.succeeded, p.bytesFreed
}
