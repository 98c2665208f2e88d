package service

import (
	"context"
	"errors"

	"credo-consent/internal/interaction/models"
	"credo-consent/internal/provider"
	id "credo-consent/pkg/domain"
	dErrors "credo-consent/pkg/domain-errors"
	"credo-consent/pkg/platform/sentinel"
)

const interactionNotFoundMessage = "interaction session not found or expired"

// IsInteractionNotFound reports whether err means the interaction is unknown
// to the provider or expired. The user can only recover by restarting the
// authorization, never by resubmitting.
func IsInteractionNotFound(err error) bool {
	return dErrors.HasCode(err, dErrors.CodeInvalidRequest)
}

func (s *Service) engine() (provider.Engine, error) {
	engine, err := s.handle.Engine()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeServerError, "provider unavailable")
	}
	return engine, nil
}

// LoadContext opens the provider's handle on interaction uid. A blank,
// malformed, unknown or expired uid fails with an invalid_request error.
func (s *Service) LoadContext(ctx context.Context, uid string) (provider.Engine, provider.InteractionContext, error) {
	parsed, err := id.ParseInteractionUID(uid)
	if err != nil {
		return nil, provider.InteractionContext{}, dErrors.Wrap(err, dErrors.CodeInvalidRequest, interactionNotFoundMessage)
	}
	engine, err := s.engine()
	if err != nil {
		return nil, provider.InteractionContext{}, err
	}
	ic, err := engine.OpenInteraction(ctx, parsed)
	if err != nil {
		return nil, provider.InteractionContext{}, classifyEngineError(err, "failed to open interaction")
	}
	return engine, ic, nil
}

func (s *Service) loadDetails(ctx context.Context, uid string) (provider.Engine, provider.InteractionContext, *models.Interaction, error) {
	engine, ic, err := s.LoadContext(ctx, uid)
	if err != nil {
		return nil, ic, nil, err
	}
	interaction, err := engine.InteractionDetails(ctx, ic)
	if err != nil {
		return nil, ic, nil, classifyEngineError(err, "failed to load interaction details")
	}
	return engine, ic, interaction, nil
}

func classifyEngineError(err error, message string) error {
	if errors.Is(err, sentinel.ErrNotFound) || errors.Is(err, sentinel.ErrExpired) {
		return dErrors.Wrap(err, dErrors.CodeInvalidRequest, interactionNotFoundMessage)
	}
	return dErrors.Wrap(err, dErrors.CodeServerError, message)
}
