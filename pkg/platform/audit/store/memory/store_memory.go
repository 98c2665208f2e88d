package memory

import (
	"context"
	"sync"

	id "credo-consent/pkg/domain"
	audit "credo-consent/pkg/platform/audit"
)

// InMemoryStore keeps audit events in process memory for development and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByAccount returns the account's events in append order.
func (s *InMemoryStore) ListByAccount(_ context.Context, accountID id.AccountID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for _, e := range s.events {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListAll returns every event in append order.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events...), nil
}

// ListRecent returns up to limit of the most recently appended events.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := len(s.events) - limit
	if start < 0 {
		start = 0
	}
	return append([]audit.Event{}, s.events[start:]...), nil
}
