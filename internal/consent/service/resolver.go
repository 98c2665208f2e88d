package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"credo-consent/internal/interaction/models"
	id "credo-consent/pkg/domain"
	dErrors "credo-consent/pkg/domain-errors"
	"credo-consent/pkg/platform/audit"
	"credo-consent/pkg/platform/sentinel"
	"credo-consent/pkg/requestcontext"
)

// DecisionAccept is the only submission value that approves a prompt.
// Any other value, including an empty one, denies.
const DecisionAccept = "accept"

// Decision outcomes recorded in metrics and logs.
const (
	outcomeLogin    = "login"
	outcomeConsent  = "consent"
	outcomeDenied   = "denied"
	outcomeExpired  = "expired"
	outcomeRejected = "unauthenticated"
	outcomeError    = "error"
)

// Submission is a decision posted by the consent UI.
type Submission struct {
	UID      string
	Decision string
}

// Accepted reports whether the submission approves the prompt.
func (s Submission) Accepted() bool {
	return s.Decision == DecisionAccept
}

// Submit resolves the user's decision for interaction sub.UID into a result
// and hands it to the provider. It returns the redirect instruction that
// resumes the authorization.
//
// Errors carry one of three codes: invalid_request when the interaction is
// unknown or expired, not_authenticated when an accepting user is not signed in,
// and server_error for everything else.
func (s *Service) Submit(ctx context.Context, sub Submission) (string, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "consent.submit",
		trace.WithAttributes(attribute.String("interaction.uid", sub.UID)),
	)
	defer span.End()

	var prompt string
	redirect, outcome, err := s.submit(ctx, sub, &prompt)
	if err != nil {
		err = normalizeSubmitError(err)
		if outcome == "" {
			outcome = outcomeError
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		s.logger.WarnContext(ctx, "consent submission failed",
			"interaction_uid", sub.UID,
			"prompt", prompt,
			"outcome", outcome,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	span.SetAttributes(
		attribute.String("interaction.prompt", prompt),
		attribute.String("consent.outcome", outcome),
	)
	s.metrics.ObserveSubmission(prompt, decisionLabel(sub), outcome, time.Since(start))
	return redirect, err
}

func (s *Service) submit(ctx context.Context, sub Submission, prompt *string) (string, string, error) {
	engine, ic, interaction, err := s.loadDetails(ctx, sub.UID)
	if err != nil {
		if IsInteractionNotFound(err) {
			return "", outcomeExpired, err
		}
		return "", "", err
	}
	*prompt = string(interaction.Prompt.Name)
	if interaction.Finished() {
		// A decision was already recorded; only a new authorization request
		// can prompt again.
		return "", outcomeExpired, dErrors.Wrap(
			fmt.Errorf("interaction %s already finished: %w", interaction.UID, sentinel.ErrNotFound),
			dErrors.CodeInvalidRequest, interactionNotFoundMessage)
	}

	var (
		result models.Result
		event  audit.Event
	)
	outcome := outcomeDenied
	switch {
	case !sub.Accepted():
		result = models.AccessDenied()
		event = audit.Event{
			Action:    string(audit.EventConsentDenied),
			AccountID: s.auth.CurrentUser(ctx).UserID,
			Decision:  "denied",
			Reason:    models.ErrorAccessDenied,
		}

	default:
		user := s.auth.CurrentUser(ctx)
		if user.IsAnonymous() {
			return "", outcomeRejected, dErrors.New(dErrors.CodeNotAuthenticated, "authentication required")
		}
		switch interaction.Prompt.Name {
		case models.PromptLogin:
			result = models.LoginResult{Login: models.Login{AccountID: user.UserID, Remember: true}}
			event = audit.Event{
				Action:    string(audit.EventLoginConfirmed),
				AccountID: user.UserID,
				Decision:  "accepted",
			}
			outcome = outcomeLogin

		case models.PromptConsent:
			grantID, scope, err := s.consent(ctx, user.UserID, interaction)
			if err != nil {
				return "", "", err
			}
			consent := models.Consent{GrantID: grantID}
			if session := interaction.SessionAccountID(); !session.IsNil() && session != user.UserID {
				// The provider's session belongs to someone else; move it to
				// the account that actually consented.
				result = models.CombinedResult{
					Login:   models.Login{AccountID: user.UserID, Remember: true},
					Consent: consent,
				}
			} else {
				result = models.ConsentResult{Consent: consent}
			}
			event = audit.Event{
				Action:    string(audit.EventConsentGranted),
				AccountID: user.UserID,
				GrantID:   grantID,
				Scope:     scope,
				Decision:  "accepted",
			}
			outcome = outcomeConsent

		default:
			return "", "", dErrors.New(dErrors.CodeServerError, "unsupported interaction prompt: "+*prompt)
		}
	}

	payload, err := models.ToPayload(result)
	if err != nil {
		return "", "", dErrors.Wrap(err, dErrors.CodeServerError, "invalid interaction result")
	}
	redirect, err := checkRedirect(engine.InteractionResult(ctx, ic, payload))
	if err != nil {
		return "", "", err
	}

	event.ClientID = interaction.ClientID()
	event.InteractionUID = interaction.UID
	s.emit(ctx, event)

	s.logger.InfoContext(ctx, "consent submission resolved",
		"interaction_uid", interaction.UID.String(),
		"client_id", interaction.ClientID().String(),
		"prompt", *prompt,
		"outcome", outcome,
		"request_id", requestcontext.RequestID(ctx),
	)
	return redirect, outcome, nil
}

// consent accumulates the prompt's missing authorizations into the user's
// grant for the interaction's client and persists it.
func (s *Service) consent(ctx context.Context, accountID id.AccountID, interaction *models.Interaction) (id.GrantID, string, error) {
	grant, err := s.grants.Reconcile(ctx, accountID, interaction.ClientID(), interaction.GrantID)
	if err != nil {
		return "", "", err
	}
	details := interaction.Prompt.Details
	merged := s.grants.Apply(*grant, details.MissingOIDCScope, details.MissingOIDCClaims, details.MissingResourceScopes)
	grantID, err := s.grants.Persist(ctx, &merged)
	if err != nil {
		return "", "", err
	}
	return grantID, strings.Join(merged.OpenIDScope, " "), nil
}

// emit publishes event without failing the caller.
func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	event.RequestID = requestcontext.RequestID(ctx)
	event.IP = requestcontext.ClientIP(ctx)
	event.Device = requestcontext.Device(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.metrics.IncAuditFailures()
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"interaction_uid", event.InteractionUID.String(),
			"error", err,
		)
	}
}

// normalizeSubmitError keeps the codes the consent UI reacts to and folds
// everything else into server_error.
func normalizeSubmitError(err error) error {
	if de, ok := dErrors.As(err); ok {
		switch de.Code {
		case dErrors.CodeInvalidRequest, dErrors.CodeNotAuthenticated, dErrors.CodeServerError:
			return err
		}
	}
	return dErrors.Wrap(err, dErrors.CodeServerError, "consent submission failed")
}

func decisionLabel(sub Submission) string {
	if sub.Accepted() {
		return "accept"
	}
	return "deny"
}
