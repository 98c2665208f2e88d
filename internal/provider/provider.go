// Package provider adapts the OIDC provider's interaction sessions, grants
// and client registry into the Engine the consent flow drives.
//
// The provider owns the interaction lifecycle: it creates interactions when
// an authorization request needs user input and resumes the authorization at
// the interaction's ReturnTo once a result is recorded. This package only
// exposes the operations the consent flow consumes.
package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	clientmodels "credo-consent/internal/client/models"
	grantmodels "credo-consent/internal/grant/models"
	"credo-consent/internal/interaction/models"
	id "credo-consent/pkg/domain"
	"credo-consent/pkg/platform/sentinel"
)

// InteractionStore persists pending interactions.
type InteractionStore interface {
	Save(ctx context.Context, interaction *models.Interaction) error
	Find(ctx context.Context, uid id.InteractionUID) (*models.Interaction, error)
}

// GrantStore persists grants.
type GrantStore interface {
	Save(ctx context.Context, grant *grantmodels.Grant) error
	FindByID(ctx context.Context, grantID id.GrantID) (*grantmodels.Grant, error)
}

// ClientStore reads client registrations.
type ClientStore interface {
	FindByID(ctx context.Context, clientID id.ClientID) (*clientmodels.Client, error)
}

// InteractionContext is the request-scoped handle engine calls operate on.
type InteractionContext struct {
	UID      id.InteractionUID
	OpenedAt time.Time
}

// Engine is the provider surface consumed by the consent flow.
// Interaction operations return an error wrapping sentinel.ErrNotFound when
// the interaction is unknown, expired or already consumed.
type Engine interface {
	OpenInteraction(ctx context.Context, uid id.InteractionUID) (InteractionContext, error)
	InteractionDetails(ctx context.Context, ic InteractionContext) (*models.Interaction, error)
	// InteractionResult records result and returns the redirect instruction
	// that resumes the authorization.
	InteractionResult(ctx context.Context, ic InteractionContext, result models.ResultPayload) (string, error)
	// InteractionFinished is InteractionResult with optional merging over the
	// previous submission for the same interaction. A recorded result consumes
	// the interaction: later calls fail as not found, except merging finishes
	// over a result that is not a denial.
	InteractionFinished(ctx context.Context, ic InteractionContext, result models.ResultPayload, mergeWithLastSubmission bool) (string, error)
	// FindGrant returns nil, nil when the grant does not exist or expired.
	FindGrant(ctx context.Context, grantID id.GrantID) (*grantmodels.Grant, error)
	NewGrant(ctx context.Context, accountID id.AccountID, clientID id.ClientID) (*grantmodels.Grant, error)
	SaveGrant(ctx context.Context, grant *grantmodels.Grant) (id.GrantID, error)
	// FindClient returns nil, nil when the client is unknown or inactive.
	FindClient(ctx context.Context, clientID id.ClientID) (*clientmodels.Client, error)
}

// Provider implements Engine over the interaction, grant and client stores.
type Provider struct {
	interactions   InteractionStore
	grants         GrantStore
	clients        ClientStore
	grantTTL       time.Duration
	interactionTTL time.Duration
	now            func() time.Time
	logger         *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithGrantTTL bounds grant lifetime; every save extends it. Zero means grants
// never expire.
func WithGrantTTL(ttl time.Duration) Option {
	return func(p *Provider) {
		p.grantTTL = ttl
	}
}

// WithInteractionTTL sets how long a started interaction stays open.
func WithInteractionTTL(ttl time.Duration) Option {
	return func(p *Provider) {
		p.interactionTTL = ttl
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

func New(interactions InteractionStore, grants GrantStore, clients ClientStore, opts ...Option) *Provider {
	p := &Provider{
		interactions:   interactions,
		grants:         grants,
		clients:        clients,
		interactionTTL: time.Hour,
		now:            time.Now,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// StartInteraction opens a new interaction asking prompt on behalf of the
// authorization request described by params. The returned interaction
// resumes at /oidc/auth/{uid} once a result is recorded.
func (p *Provider) StartInteraction(ctx context.Context, prompt models.Prompt, params map[string]string, session *models.Session) (*models.Interaction, error) {
	if params["client_id"] == "" {
		return nil, fmt.Errorf("authorization request without client_id: %w", sentinel.ErrInvalidState)
	}
	now := p.now()
	uid := id.InteractionUID(uuid.NewString())
	interaction := &models.Interaction{
		UID:       uid,
		Prompt:    prompt,
		Params:    params,
		Session:   session,
		ReturnTo:  "/oidc/auth/" + uid.String(),
		CreatedAt: now,
		ExpiresAt: now.Add(p.interactionTTL),
	}
	if err := p.interactions.Save(ctx, interaction); err != nil {
		return nil, err
	}
	p.logger.DebugContext(ctx, "interaction started",
		"interaction_uid", uid.String(),
		"prompt", string(prompt.Name),
		"client_id", params["client_id"],
	)
	return interaction, nil
}

func (p *Provider) OpenInteraction(ctx context.Context, uid id.InteractionUID) (InteractionContext, error) {
	if uid.IsNil() {
		return InteractionContext{}, fmt.Errorf("blank interaction uid: %w", sentinel.ErrNotFound)
	}
	if _, err := p.interactions.Find(ctx, uid); err != nil {
		return InteractionContext{}, err
	}
	return InteractionContext{UID: uid, OpenedAt: p.now()}, nil
}

func (p *Provider) InteractionDetails(ctx context.Context, ic InteractionContext) (*models.Interaction, error) {
	return p.interactions.Find(ctx, ic.UID)
}

func (p *Provider) InteractionResult(ctx context.Context, ic InteractionContext, result models.ResultPayload) (string, error) {
	return p.InteractionFinished(ctx, ic, result, false)
}

func (p *Provider) InteractionFinished(ctx context.Context, ic InteractionContext, result models.ResultPayload, mergeWithLastSubmission bool) (string, error) {
	interaction, err := p.interactions.Find(ctx, ic.UID)
	if err != nil {
		return "", err
	}
	if interaction.Finished() && (!mergeWithLastSubmission || interaction.Result.Error != "") {
		return "", fmt.Errorf("interaction %s already finished: %w", ic.UID, sentinel.ErrNotFound)
	}
	if mergeWithLastSubmission {
		result = result.Merge(interaction.LastSubmission)
	}
	interaction.Result = &result
	interaction.LastSubmission = &result
	if err := p.interactions.Save(ctx, interaction); err != nil {
		if errors.Is(err, sentinel.ErrExpired) {
			return "", fmt.Errorf("interaction %s: %w", ic.UID, sentinel.ErrNotFound)
		}
		return "", err
	}
	return interaction.ReturnTo, nil
}

func (p *Provider) FindGrant(ctx context.Context, grantID id.GrantID) (*grantmodels.Grant, error) {
	grant, err := p.grants.FindByID(ctx, grantID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if grant.IsExpired(p.now()) {
		p.logger.DebugContext(ctx, "grant expired", "grant_id", grantID.String())
		return nil, nil
	}
	return grant, nil
}

func (p *Provider) NewGrant(_ context.Context, accountID id.AccountID, clientID id.ClientID) (*grantmodels.Grant, error) {
	return grantmodels.NewGrant(accountID, clientID, p.now())
}

// SaveGrant assigns an id to a new grant, refreshes its expiry and writes it.
func (p *Provider) SaveGrant(ctx context.Context, grant *grantmodels.Grant) (id.GrantID, error) {
	now := p.now()
	if !grant.IsSaved() {
		grant.ID = id.NewGrantID()
	}
	grant.UpdatedAt = now
	if p.grantTTL > 0 {
		exp := now.Add(p.grantTTL)
		grant.ExpiresAt = &exp
	}
	if err := p.grants.Save(ctx, grant); err != nil {
		return "", err
	}
	return grant.ID, nil
}

func (p *Provider) FindClient(ctx context.Context, clientID id.ClientID) (*clientmodels.Client, error) {
	client, err := p.clients.FindByID(ctx, clientID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !client.IsActive() {
		return nil, nil
	}
	return client, nil
}
