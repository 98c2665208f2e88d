package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"credo-consent/internal/client/models"
	id "credo-consent/pkg/domain"
	"credo-consent/pkg/platform/sentinel"
)

// InMemory is a client registry held in memory.
type InMemory struct {
	mu      sync.RWMutex
	clients map[id.ClientID]*models.Client
}

func NewInMemory() *InMemory {
	return &InMemory{clients: make(map[id.ClientID]*models.Client)}
}

// Upsert registers or replaces a client.
func (s *InMemory) Upsert(_ context.Context, client *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *client
	cp.RedirectURIs = slices.Clone(client.RedirectURIs)
	s.clients[client.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(_ context.Context, clientID id.ClientID) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[clientID]
	if !ok {
		return nil, fmt.Errorf("client %s: %w", clientID, sentinel.ErrNotFound)
	}
	cp := *c
	cp.RedirectURIs = slices.Clone(c.RedirectURIs)
	return &cp, nil
}
