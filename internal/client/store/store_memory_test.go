package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"credo-consent/internal/client/models"
	"credo-consent/pkg/platform/sentinel"
)

type ClientStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestClientStoreSuite(t *testing.T) {
	suite.Run(t, new(ClientStoreSuite))
}

func (s *ClientStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *ClientStoreSuite) TestLookups() {
	s.Run("finds a seeded client", func() {
		seeded, err := SeedDemoClient(s.ctx, s.store, time.Now())
		s.Require().NoError(err)

		found, err := s.store.FindByID(s.ctx, DemoClientID)
		s.Require().NoError(err)
		s.Equal(seeded.Name, found.Name)
		s.Equal(models.ClientStatusActive, found.Status)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, "nope")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returned client is a copy", func() {
		found, err := s.store.FindByID(s.ctx, DemoClientID)
		s.Require().NoError(err)
		found.RedirectURIs[0] = "mutated"

		again, err := s.store.FindByID(s.ctx, DemoClientID)
		s.Require().NoError(err)
		s.Equal("http://localhost:3000/callback", again.RedirectURIs[0])
	})
}
