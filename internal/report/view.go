package report

import (
	"fmt"
	"strings"

	"github.com/lakshaymaurya-felt/devmole/internal/core"
	"github.com/lakshaymaurya-felt/devmole/internal/engine"
	"github.com/lakshaymaurya-felt/devmole/internal/ui"
)

func (m CleanModel) renderView() string {
	var s strings.Builder

	header := fmt.Sprintf("%s Cleaning %d project%s",
		m.spinner.View(), m.total, core.Plural(m.total))
	if m.quitting {
		header = m.spinner.View() + " Cancelling…"
	}
	s.WriteString("  " + ui.Title.Render(header) + "\n\n")

	var frac float64
	if m.total > 0 {
		frac = float64(m.done) / float64(m.total)
	}
	s.WriteString("  " + m.progress.ViewAs(frac) + "\n\n")

	for _, line := range m.lines {
		s.WriteString("  " + line + "\n")
	}
	if len(m.lines) > 0 {
		s.WriteString("\n")
	}

	counters := fmt.Sprintf("%d/%d done · %s freed", m.done, m.total, core.FormatSize(m.bytesFreed))
	if m.failed > 0 {
		counters += fmt.Sprintf(" · %d failed", m.failed)
	}
	s.WriteString("  " + ui.Muted.Render(counters) + "\n")
	s.WriteString("  " + ui.Muted.Render("press q to cancel") + "\n")

	return s.String()
}

func (m CleanModel) renderOutcomeLine(o engine.Outcome) string {
	eco := ui.Accent.Render("[" + o.Ecosystem + "]")
	if o.Succeeded {
		return fmt.Sprintf("%s %s %s %s",
			ui.Good.Render("✓"), o.Dir, eco,
			ui.Muted.Render("freed "+core.FormatSize(o.BytesFreed)))
	}
	return fmt.Sprintf("%s %s %s %s",
		ui.Bad.Render("✗"), o.Dir, eco, ui.Bad.Render(o.Err.Error()))
}
