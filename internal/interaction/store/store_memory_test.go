package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"credo-consent/internal/interaction/models"
	"credo-consent/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	now   time.Time
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.now = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.store = NewInMemory().WithClock(func() time.Time { return s.now })
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) TestFind() {
	s.Run("returns a copy of a saved interaction", func() {
		s.Require().NoError(s.store.Save(s.ctx, &models.Interaction{UID: "u1", ExpiresAt: s.now.Add(time.Hour)}))

		found, err := s.store.Find(s.ctx, "u1")
		s.Require().NoError(err)
		found.ReturnTo = "/mutated"

		again, err := s.store.Find(s.ctx, "u1")
		s.Require().NoError(err)
		s.Empty(again.ReturnTo)
	})

	s.Run("unknown uid is not found", func() {
		_, err := s.store.Find(s.ctx, "missing")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("expired interaction is not found", func() {
		s.Require().NoError(s.store.Save(s.ctx, &models.Interaction{UID: "old", ExpiresAt: s.now.Add(-time.Second)}))
		_, err := s.store.Find(s.ctx, "old")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}
