package audit

import (
	"context"
	"time"

	id "credo-consent/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// Categories drive retention and downstream routing.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance, such as
	// a user granting or refusing access to their data.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers events useful for debugging and operational
	// visibility.
	CategoryOperations EventCategory = "operations"
)

type AuditEvent string

const (
	EventConsentGranted     AuditEvent = "consent_granted"
	EventConsentDenied      AuditEvent = "consent_denied"
	EventLoginConfirmed     AuditEvent = "login_confirmed"
	EventGrantDiscarded     AuditEvent = "grant_discarded"
	EventInteractionAborted AuditEvent = "interaction_aborted"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventConsentGranted:     CategoryCompliance,
	EventConsentDenied:      CategoryCompliance,
	EventInteractionAborted: CategoryCompliance,
	EventGrantDiscarded:     CategoryCompliance,
	EventLoginConfirmed:     CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Event is emitted from the consent flow to capture decisions. It stays
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category       EventCategory     `json:"category"`
	Timestamp      time.Time         `json:"timestamp"`
	Action         string            `json:"action"`
	AccountID      id.AccountID      `json:"account_id,omitempty"`
	ClientID       id.ClientID       `json:"client_id,omitempty"`
	InteractionUID id.InteractionUID `json:"interaction_uid,omitempty"`
	GrantID        id.GrantID        `json:"grant_id,omitempty"`
	Decision       string            `json:"decision,omitempty"`
	Reason         string            `json:"reason,omitempty"`
	// Scope is the space-joined OIDC scope the grant covers after the decision.
	Scope     string `json:"scope,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	IP        string `json:"ip,omitempty"`
	Device    string `json:"device,omitempty"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
