package report

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lakshaymaurya-felt/devmole/internal/engine"
)

// Bridge forwards engine callbacks into a bubbletea message channel from
// another goroutine. Once Close is called every send becomes a no-op, so
// the engine goroutine can never block on a buffer the consuming program
// stopped draining.
type Bridge struct {
	ch     chan tea.Msg
	closed chan struct{}
	once   sync.Once
}

// NewBridge creates a bridge with the given channel buffer.
func NewBridge(buffer int) *Bridge {
	return &Bridge{
		ch:     make(chan tea.Msg, buffer),
		closed: make(chan struct{}),
	}
}

// Events is the channel the model consumes.
func (b *Bridge) Events() <-chan tea.Msg { return b.ch }

// Close releases any sender still blocked on a full buffer. Call it after
// the consuming program exits; closing twice is safe.
func (b *Bridge) Close() {
	b.once.Do(func() { close(b.closed) })
}

func (b *Bridge) send(msg tea.Msg) {
	select {
	case b.ch <- msg:
	case <-b.closed:
	}
}

// Plan matches engine.Options.OnPlan.
func (b *Bridge) Plan(tasks []engine.Task, warnings []string) {
	b.send(PlanMsg{Tasks: len(tasks), Warnings: warnings})
}

// Outcome matches engine.Options.OnOutcome.
func (b *Bridge) Outcome(o engine.Outcome) {
	b.send(OutcomeMsg(o))
}

// Done signals the end of the run.
func (b *Bridge) Done(s engine.Summary, err error) {
	b.send(DoneMsg{Summary: s, Err: err})
}
