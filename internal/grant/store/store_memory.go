package store

import (
	"context"
	"fmt"
	"sync"

	"credo-consent/internal/grant/models"
	id "credo-consent/pkg/domain"
	"credo-consent/pkg/platform/sentinel"
)

// InMemory stores grants in memory for tests and development.
type InMemory struct {
	mu     sync.RWMutex
	grants map[id.GrantID]models.Grant
}

// NewInMemory constructs an empty in-memory grant store.
func NewInMemory() *InMemory {
	return &InMemory{grants: make(map[id.GrantID]models.Grant)}
}

// Save upserts a grant. Concurrent saves of the same id are last-write-wins.
func (s *InMemory) Save(_ context.Context, grant *models.Grant) error {
	if !grant.IsSaved() {
		return fmt.Errorf("grant without id: %w", sentinel.ErrInvalidState)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// AddOIDCScope with nothing to add is a deep copy.
	s.grants[grant.ID] = grant.AddOIDCScope("")
	return nil
}

func (s *InMemory) FindByID(_ context.Context, grantID id.GrantID) (*models.Grant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	grant, ok := s.grants[grantID]
	if !ok {
		return nil, fmt.Errorf("grant %s: %w", grantID, sentinel.ErrNotFound)
	}
	cp := grant.AddOIDCScope("")
	return &cp, nil
}

// Count returns the number of stored grants.
func (s *InMemory) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.grants)
}
