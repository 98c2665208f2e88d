// Package service resolves consent and login decisions against pending
// provider interactions.
//
// Service is stateless: every operation obtains the shared provider engine
// from its Handle and works on one interaction at a time. Submit is the
// decision state machine; the remaining methods are thin pass-throughs used
// by the consent UI.
package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	clientmodels "credo-consent/internal/client/models"
	grantmodels "credo-consent/internal/grant/models"
	"credo-consent/internal/interaction/models"
	"credo-consent/internal/platform/metrics"
	"credo-consent/internal/provider"
	id "credo-consent/pkg/domain"
	dErrors "credo-consent/pkg/domain-errors"
	"credo-consent/pkg/platform/audit"
)

// GrantReconciler finds or creates the grant a consent accumulates into.
type GrantReconciler interface {
	Reconcile(ctx context.Context, accountID id.AccountID, clientID id.ClientID, existing id.GrantID) (*grantmodels.Grant, error)
	Apply(grant grantmodels.Grant, missingScope, missingClaims []string, missingResourceScopes map[string][]string) grantmodels.Grant
	Persist(ctx context.Context, grant *grantmodels.Grant) (id.GrantID, error)
}

// AuditPublisher records consent decisions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// FinishOptions controls how a result is recorded on the interaction.
type FinishOptions struct {
	// MergeWithLastSubmission overlays the result on the interaction's
	// previous submission instead of replacing it.
	MergeWithLastSubmission bool
}

// Service is the consent flow facade.
type Service struct {
	handle  *provider.Handle
	grants  GrantReconciler
	auth    Authenticator
	auditor AuditPublisher
	logger  *slog.Logger
	metrics *metrics.Metrics
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

// WithAuditPublisher enables audit events for decisions. Audit failures are
// logged and never fail a submission.
func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = p
	}
}

// WithAuthenticator replaces the default context-based user lookup.
func WithAuthenticator(a Authenticator) Option {
	return func(s *Service) {
		s.auth = a
	}
}

func New(handle *provider.Handle, grants GrantReconciler, opts ...Option) *Service {
	s := &Service{
		handle: handle,
		grants: grants,
		auth:   ContextAuthenticator{},
		logger: slog.Default(),
		tracer: otel.Tracer("credo-consent/consent"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetInteractionDetails returns the pending interaction for uid.
func (s *Service) GetInteractionDetails(ctx context.Context, uid string) (*models.Interaction, error) {
	_, _, interaction, err := s.loadDetails(ctx, uid)
	return interaction, err
}

// GetInteractionResult records result on the interaction and returns the
// redirect instruction that resumes the authorization.
func (s *Service) GetInteractionResult(ctx context.Context, uid string, result models.Result) (string, error) {
	engine, ic, err := s.LoadContext(ctx, uid)
	if err != nil {
		return "", err
	}
	payload, err := models.ToPayload(result)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeServerError, "invalid interaction result")
	}
	redirect, err := engine.InteractionResult(ctx, ic, payload)
	return checkRedirect(redirect, err)
}

// FinishInteraction is GetInteractionResult with merge control.
func (s *Service) FinishInteraction(ctx context.Context, uid string, result models.Result, opts FinishOptions) (string, error) {
	engine, ic, err := s.LoadContext(ctx, uid)
	if err != nil {
		return "", err
	}
	payload, err := models.ToPayload(result)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeServerError, "invalid interaction result")
	}
	redirect, err := engine.InteractionFinished(ctx, ic, payload, opts.MergeWithLastSubmission)
	return checkRedirect(redirect, err)
}

// FindOrCreateGrant returns the grant accountID would accumulate into for
// clientID, reusing grantID only when it belongs to the same account.
func (s *Service) FindOrCreateGrant(ctx context.Context, accountID id.AccountID, clientID id.ClientID, grantID id.GrantID) (*grantmodels.Grant, error) {
	return s.grants.Reconcile(ctx, accountID, clientID, grantID)
}

// GetClientMetadata returns the public registration of clientID.
func (s *Service) GetClientMetadata(ctx context.Context, clientID id.ClientID) (clientmodels.Metadata, error) {
	engine, err := s.engine()
	if err != nil {
		return clientmodels.Metadata{}, err
	}
	client, err := engine.FindClient(ctx, clientID)
	if err != nil {
		return clientmodels.Metadata{}, dErrors.Wrap(err, dErrors.CodeServerError, "failed to load client")
	}
	if client == nil {
		return clientmodels.Metadata{}, dErrors.New(dErrors.CodeNotFound, "client not found")
	}
	return client.Metadata(), nil
}

// Abort ends the interaction on the user's request with access_denied.
func (s *Service) Abort(ctx context.Context, uid string) (string, error) {
	redirect, err := s.FinishInteraction(ctx, uid, models.DenialResult{
		Error:            models.ErrorAccessDenied,
		ErrorDescription: models.AccessAbortedDescription,
	}, FinishOptions{MergeWithLastSubmission: false})
	if err != nil {
		return "", err
	}
	s.emit(ctx, audit.Event{
		Action:         string(audit.EventInteractionAborted),
		AccountID:      s.auth.CurrentUser(ctx).UserID,
		InteractionUID: id.InteractionUID(uid),
		Decision:       "aborted",
	})
	return redirect, nil
}

func checkRedirect(redirect string, err error) (string, error) {
	if err != nil {
		return "", classifyEngineError(err, "failed to finalize interaction")
	}
	if redirect == "" {
		return "", dErrors.New(dErrors.CodeServerError, "provider returned no redirect instruction")
	}
	return redirect, nil
}
