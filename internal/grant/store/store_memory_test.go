package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"credo-consent/internal/grant/models"
	"credo-consent/pkg/platform/sentinel"
)

type GrantStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestGrantStoreSuite(t *testing.T) {
	suite.Run(t, new(GrantStoreSuite))
}

func (s *GrantStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *GrantStoreSuite) newSavedGrant() *models.Grant {
	g, err := models.NewGrant("acct-7", "app", time.Now())
	s.Require().NoError(err)
	g.ID = "g1"
	return g
}

func (s *GrantStoreSuite) TestSave() {
	s.Run("rejects unsaved grant", func() {
		g, err := models.NewGrant("acct-7", "app", time.Now())
		s.Require().NoError(err)
		s.ErrorIs(s.store.Save(s.ctx, g), sentinel.ErrInvalidState)
	})

	s.Run("stored grant is isolated from caller mutations", func() {
		g := s.newSavedGrant()
		merged := g.AddOIDCScope("openid")
		s.Require().NoError(s.store.Save(s.ctx, &merged))
		merged.OpenIDScope[0] = "mutated"

		found, err := s.store.FindByID(s.ctx, "g1")
		s.Require().NoError(err)
		s.Equal([]string{"openid"}, found.OpenIDScope)
	})

	s.Run("last write wins", func() {
		first := s.newSavedGrant().AddOIDCScope("openid")
		second := s.newSavedGrant().AddOIDCScope("email")
		s.Require().NoError(s.store.Save(s.ctx, &first))
		s.Require().NoError(s.store.Save(s.ctx, &second))

		found, err := s.store.FindByID(s.ctx, "g1")
		s.Require().NoError(err)
		s.Equal([]string{"email"}, found.OpenIDScope)
	})
}

func (s *GrantStoreSuite) TestFindMissing() {
	_, err := s.store.FindByID(s.ctx, "missing")
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.Equal(0, s.store.Count())
}
