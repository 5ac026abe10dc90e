package audit

import (
	"context"
	"sync"
	"time"
)

// Publisher records audit events. Implementations must be safe for
// concurrent use; emission failures never block the mutation that
// triggered them.
type Publisher interface {
	Emit(ctx context.Context, e Event)
}

// Noop discards every event. Used when no audit sink is configured.
type Noop struct{}

func (Noop) Emit(context.Context, Event) {}

// Memory keeps events in memory for tests and local development.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

// NewMemory creates an in-memory audit sink.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Emit(_ context.Context, e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
}

// Events returns a copy of the recorded events.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}
