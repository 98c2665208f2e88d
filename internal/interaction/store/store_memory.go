package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"credo-consent/internal/interaction/models"
	id "credo-consent/pkg/domain"
	"credo-consent/pkg/platform/sentinel"
)

// Error Contract:
// All store methods follow this error pattern:
// - Return ErrNotFound when the interaction does not exist or already expired
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures

// InMemory keeps interaction sessions in memory for tests and development.
type InMemory struct {
	mu           sync.RWMutex
	interactions map[id.InteractionUID]*models.Interaction
	clock        func() time.Time
}

// NewInMemory constructs an empty in-memory interaction store.
func NewInMemory() *InMemory {
	return &InMemory{
		interactions: make(map[id.InteractionUID]*models.Interaction),
		clock:        time.Now,
	}
}

// WithClock swaps the time source, for expiry tests.
func (s *InMemory) WithClock(clock func() time.Time) *InMemory {
	s.clock = clock
	return s
}

func (s *InMemory) Save(_ context.Context, interaction *models.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *interaction
	s.interactions[interaction.UID] = &cp
	return nil
}

func (s *InMemory) Find(_ context.Context, uid id.InteractionUID) (*models.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	interaction, ok := s.interactions[uid]
	if !ok || interaction.IsExpired(s.clock()) {
		return nil, fmt.Errorf("interaction %s: %w", uid, sentinel.ErrNotFound)
	}
	cp := *interaction
	return &cp, nil
}
