package sink

import (
	"context"
	"sync"

	"permis/pkg/platform/audit"
)

// Memory keeps events in process memory. It backs tests and deployments
// that have no broker configured.
type Memory struct {
	mu     sync.RWMutex
	events []audit.Event
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Append(_ context.Context, event audit.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Events returns a copy of everything appended so far.
func (m *Memory) Events() []audit.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]audit.Event, len(m.events))
	copy(out, m.events)
	return out
}
