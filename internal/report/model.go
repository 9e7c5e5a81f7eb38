package report

import (
	"context"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lakshaymaurya-felt/devmole/internal/engine"
)

// recentLines is how many per-task result lines stay visible in the TUI.
const recentLines = 8

// ─── Messages ────────────────────────────────────────────────────────────────

// PlanMsg announces the planned task count once scanning finishes.
type PlanMsg struct {
	Tasks    int
	Warnings []string
}

// OutcomeMsg carries one task outcome into the model.
type OutcomeMsg engine.Outcome

// DoneMsg signals that the run finished.
type DoneMsg struct {
	Summary engine.Summary
	Err     error
}

// ─── Model ───────────────────────────────────────────────────────────────────

// CleanModel is the bubbletea Model for a live cleanup run. Events arrive
// on a channel fed by the engine's OnOutcome callback from another
// goroutine; the model pumps them with a self-rescheduling Cmd.
type CleanModel struct {
	events <-chan tea.Msg
	cancel context.CancelFunc

	total      int
	done       int
	succeeded  int
	failed     int
	bytesFreed int64
	lines      []string

	spinner  spinner.Model
	progress progress.Model
	width    int

	Summary  engine.Summary
	Err      error
	finished bool
	quitting bool
}

// NewCleanModel creates a model for a run of total planned tasks. cancel
// is invoked when the user aborts; the run then drains normally and the
// model quits on its DoneMsg.
func NewCleanModel(total int, events <-chan tea.Msg, cancel context.CancelFunc) CleanModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return CleanModel{
		events:   events,
		cancel:   cancel,
		total:    total,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient()),
		width:    80,
	}
}

// waitEvent blocks for the next engine event.
func (m CleanModel) waitEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

// ─── tea.Model interface ─────────────────────────────────────────────────────

func (m CleanModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitEvent())
}

func (m CleanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = msg.Width - 10
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			if m.cancel != nil {
				m.cancel()
			}
			// Keep pumping events; the engine delivers DoneMsg shortly.
			return m, nil
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PlanMsg:
		m.total = msg.Tasks
		return m, m.waitEvent()

	case OutcomeMsg:
		m.done++
		out := engine.Outcome(msg)
		if out.Succeeded {
			m.succeeded++
			m.bytesFreed += out.BytesFreed
		} else {
			m.failed++
		}
		m.lines = appendLine(m.lines, m.renderOutcomeLine(out), recentLines)
		return m, m.waitEvent()

	case DoneMsg:
		m.Summary = msg.Summary
		m.Err = msg.Err
		m.finished = true
		return m, tea.Quit
	}

	return m, nil
}

func (m CleanModel) View() string {
	if m.finished {
		return ""
	}
	return m.renderView()
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func appendLine(lines []string, line string, maxLen int) []string {
	lines = append(lines, line)
	if len(lines) > maxLen {
		lines = lines[1:]
	}
	return lines
}
