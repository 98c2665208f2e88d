package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and the provider engine
// return these (optionally wrapped) so services can translate them into
// domain errors:
//   - ErrNotFound: interaction, grant or client does not exist
//   - ErrExpired: interaction session or grant outlived its TTL
//   - ErrAlreadyUsed: interaction already consumed by the provider
//   - ErrInvalidState: entity in wrong state for the requested operation
//   - ErrUnavailable: backing store temporarily unavailable
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
