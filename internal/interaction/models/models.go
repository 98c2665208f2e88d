package models

import (
	"time"

	id "credo-consent/pkg/domain"
)

// PromptName classifies what the provider needs from the user.
type PromptName string

const (
	PromptLogin   PromptName = "login"
	PromptConsent PromptName = "consent"
)

// PromptDetails lists what the consent prompt is missing. Any field may be nil;
// a nil field and an empty one both mean "nothing to add".
type PromptDetails struct {
	MissingOIDCScope      []string            `json:"missingOIDCScope,omitempty"`
	MissingOIDCClaims     []string            `json:"missingOIDCClaims,omitempty"`
	MissingResourceScopes map[string][]string `json:"missingResourceScopes,omitempty"`
}

// Prompt is the pending question raised by the provider.
type Prompt struct {
	Name    PromptName    `json:"name"`
	Reasons []string      `json:"reasons,omitempty"`
	Details PromptDetails `json:"details"`
}

// Session is the provider's idea of who is logged in for this interaction.
type Session struct {
	AccountID id.AccountID `json:"accountId,omitempty"`
	UID       string       `json:"uid,omitempty"`
}

// Interaction is a pending authorization interaction owned by the provider's
// session store. It is never persisted by the consent core.
type Interaction struct {
	UID      id.InteractionUID `json:"uid"`
	Prompt   Prompt            `json:"prompt"`
	Params   map[string]string `json:"params"`
	GrantID  id.GrantID        `json:"grantId,omitempty"`
	Session  *Session          `json:"session,omitempty"`
	ReturnTo string            `json:"returnTo"`

	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`

	// Result is the payload of the latest finalize call; LastSubmission is
	// what a merging finish builds upon.
	Result         *ResultPayload `json:"result,omitempty"`
	LastSubmission *ResultPayload `json:"lastSubmission,omitempty"`
}

// ClientID returns the client_id authorization parameter.
func (i *Interaction) ClientID() id.ClientID {
	return id.ClientID(i.Params["client_id"])
}

// SessionAccountID returns the provider's active account, or "" when the
// interaction carries no session.
func (i *Interaction) SessionAccountID() id.AccountID {
	if i.Session == nil {
		return ""
	}
	return i.Session.AccountID
}

// IsExpired reports whether the interaction outlived its TTL.
func (i *Interaction) IsExpired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Finished reports whether a result has already been recorded. A finished
// interaction no longer accepts user decisions.
func (i *Interaction) Finished() bool {
	return i.Result != nil
}
