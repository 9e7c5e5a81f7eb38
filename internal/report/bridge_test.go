package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/devmole/internal/engine"
)

func TestBridgeDeliversEvents(t *testing.T) {
	b := NewBridge(4)
	b.Plan([]engine.Task{{}, {}}, []string{"w"})
	b.Outcome(engine.Outcome{Dir: "/w/a", Succeeded: true, BytesFreed: 10})
	b.Done(engine.Summary{TasksCompleted: 1}, nil)

	plan, ok := (<-b.Events()).(PlanMsg)
	require.True(t, ok)
	assert.Equal(t, 2, plan.Tasks)
	assert.Equal(t, []string{"w"}, plan.Warnings)

	out, ok := (<-b.Events()).(OutcomeMsg)
	require.True(t, ok)
	assert.Equal(t, "/w/a", out.Dir)

	done, ok := (<-b.Events()).(DoneMsg)
	require.True(t, ok)
	assert.Equal(t, 1, done.Summary.TasksCompleted)
}

func TestBridgeSendAfterCloseDoesNotBlock(t *testing.T) {
	b := NewBridge(1)
	// Fill the buffer with nobody reading, then close: the consumer is gone.
	b.Plan(nil, nil)
	b.Close()

	sent := make(chan struct{})
	go func() {
		b.Outcome(engine.Outcome{Dir: "/w/a"})
		b.Done(engine.Summary{}, nil)
		close(sent)
	}()

	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("send blocked after bridge was closed")
	}
}

func TestBridgeCloseIsIdempotent(t *testing.T) {
	b := NewBridge(1)
	b.Close()
	b.Close()
	b.Done(engine.Summary{}, nil) // still a no-op, still non-blocking
}
