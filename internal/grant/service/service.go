// Package service reconciles the grant a consent submission accumulates into.
//
// A submission runs Reconcile, then Apply (pure), then Persist exactly once.
// Reconcile never hands back a grant owned by another account: such a grant
// is discarded and a fresh one is built instead.
package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"credo-consent/internal/grant/models"
	"credo-consent/internal/platform/metrics"
	id "credo-consent/pkg/domain"
	dErrors "credo-consent/pkg/domain-errors"
	"credo-consent/pkg/platform/audit"
	"credo-consent/pkg/requestcontext"
)

// Engine is the subset of the provider engine the reconciler needs.
type Engine interface {
	// FindGrant returns nil, nil when the grant does not exist or expired.
	FindGrant(ctx context.Context, grantID id.GrantID) (*models.Grant, error)
	NewGrant(ctx context.Context, accountID id.AccountID, clientID id.ClientID) (*models.Grant, error)
	SaveGrant(ctx context.Context, grant *models.Grant) (id.GrantID, error)
}

// AuditPublisher records grant lifecycle events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service reconciles, merges and persists grants.
type Service struct {
	engine  Engine
	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor AuditPublisher
	tracer  trace.Tracer
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = p
	}
}

func New(engine Engine, opts ...Option) *Service {
	s := &Service{
		engine: engine,
		logger: slog.Default(),
		tracer: otel.Tracer("credo-consent/grant"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reconcile returns the grant to accumulate into for (accountID, clientID).
// An existing grant is reused only when it is still live and owned by the
// same account and client; otherwise a new unsaved grant is returned.
func (s *Service) Reconcile(ctx context.Context, accountID id.AccountID, clientID id.ClientID, existing id.GrantID) (*models.Grant, error) {
	if accountID.IsNil() {
		return nil, dErrors.New(dErrors.CodeNotAuthenticated, "account required to reconcile a grant")
	}
	if clientID.IsNil() {
		return nil, dErrors.New(dErrors.CodeServerError, "interaction has no client_id")
	}

	if !existing.IsNil() {
		grant, err := s.engine.FindGrant(ctx, existing)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeServerError, "failed to load grant")
		}
		switch {
		case grant == nil:
			s.logger.InfoContext(ctx, "referenced grant not found, creating a new one",
				"grant_id", existing.String(),
				"client_id", clientID.String(),
			)
		case !grant.BelongsTo(accountID) || grant.ClientID != clientID:
			s.discarded(ctx, grant, accountID, clientID)
		default:
			s.metrics.IncGrantReconcile(metrics.GrantLoaded)
			return grant, nil
		}
	}

	grant, err := s.engine.NewGrant(ctx, accountID, clientID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeServerError, "failed to construct grant")
	}
	s.metrics.IncGrantReconcile(metrics.GrantCreated)
	return grant, nil
}

func (s *Service) discarded(ctx context.Context, grant *models.Grant, accountID id.AccountID, clientID id.ClientID) {
	s.metrics.IncGrantReconcile(metrics.GrantDiscarded)
	s.logger.WarnContext(ctx, "discarding grant owned by a different account or client",
		"grant_id", grant.ID.String(),
		"grant_account_id", grant.AccountID.String(),
		"grant_client_id", grant.ClientID.String(),
		"account_id", accountID.String(),
		"client_id", clientID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.auditor == nil {
		return
	}
	err := s.auditor.Emit(ctx, audit.Event{
		Action:    string(audit.EventGrantDiscarded),
		AccountID: accountID,
		ClientID:  clientID,
		GrantID:   grant.ID,
		Reason:    "owner_mismatch",
		RequestID: requestcontext.RequestID(ctx),
	})
	if err != nil {
		s.metrics.IncAuditFailures()
		s.logger.ErrorContext(ctx, "failed to audit discarded grant", "grant_id", grant.ID.String(), "error", err)
	}
}

// Apply merges the missing scope tokens, claims and resource scopes into
// grant. Nil and empty inputs are the same no-op. The input is not modified.
func (s *Service) Apply(grant models.Grant, missingScope, missingClaims []string, missingResourceScopes map[string][]string) models.Grant {
	return Apply(grant, missingScope, missingClaims, missingResourceScopes)
}

// Apply is the pure merge behind Service.Apply.
func Apply(grant models.Grant, missingScope, missingClaims []string, missingResourceScopes map[string][]string) models.Grant {
	merged := grant.AddOIDCScope(strings.Join(missingScope, " "))
	merged = merged.AddOIDCClaims(missingClaims)

	indicators := make([]string, 0, len(missingResourceScopes))
	for indicator := range missingResourceScopes {
		indicators = append(indicators, indicator)
	}
	slices.Sort(indicators)
	for _, indicator := range indicators {
		merged = merged.AddResourceScope(indicator, strings.Join(missingResourceScopes[indicator], " "))
	}
	return merged
}

// Persist writes grant and returns its durable id.
func (s *Service) Persist(ctx context.Context, grant *models.Grant) (id.GrantID, error) {
	ctx, span := s.tracer.Start(ctx, "grant.persist",
		trace.WithAttributes(
			attribute.String("grant.client_id", grant.ClientID.String()),
			attribute.Bool("grant.new", !grant.IsSaved()),
		),
	)
	defer span.End()

	grantID, err := s.engine.SaveGrant(ctx, grant)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save grant")
		return "", dErrors.Wrap(err, dErrors.CodeServerError, "failed to persist grant")
	}
	if grantID.IsNil() {
		span.SetStatus(codes.Error, "empty grant id")
		return "", dErrors.New(dErrors.CodeServerError, "grant persisted without an id")
	}
	span.SetAttributes(attribute.String("grant.id", grantID.String()))
	s.metrics.IncGrantsPersisted()
	return grantID, nil
}
