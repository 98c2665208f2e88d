package models

import (
	"slices"
	"time"

	id "credo-consent/pkg/domain"
	dErrors "credo-consent/pkg/domain-errors"
	scopes "credo-consent/pkg/platform/strings"
)

// Grant records what an account has authorized a client to access.
//
// Invariants:
//   - AccountID and ClientID are non-empty and immutable
//   - OpenIDScope, OpenIDClaims and each Resources entry hold no duplicates
//   - ID is empty until the grant is persisted
//
// The Add* methods are value transformations: they return an updated copy
// and never modify the receiver. Persisting is a separate explicit step.
type Grant struct {
	ID           id.GrantID          `json:"jti,omitempty"`
	AccountID    id.AccountID        `json:"accountId"`
	ClientID     id.ClientID         `json:"clientId"`
	OpenIDScope  []string            `json:"openidScope,omitempty"`
	OpenIDClaims []string            `json:"openidClaims,omitempty"`
	Resources    map[string][]string `json:"resources,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	ExpiresAt    *time.Time          `json:"expiresAt,omitempty"`
}

// NewGrant constructs an unsaved grant scoped to (accountID, clientID).
func NewGrant(accountID id.AccountID, clientID id.ClientID, now time.Time) (*Grant, error) {
	if accountID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "grant account id cannot be empty")
	}
	if clientID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "grant client id cannot be empty")
	}
	return &Grant{
		AccountID: accountID,
		ClientID:  clientID,
		Resources: map[string][]string{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsSaved reports whether the grant has a durable id.
func (g Grant) IsSaved() bool {
	return !g.ID.IsNil()
}

// BelongsTo reports whether the grant is owned by accountID.
func (g Grant) BelongsTo(accountID id.AccountID) bool {
	return g.AccountID == accountID
}

// IsExpired reports whether the grant is past its optional expiry.
func (g Grant) IsExpired(now time.Time) bool {
	return g.ExpiresAt != nil && !now.Before(*g.ExpiresAt)
}

// AddOIDCScope merges a space-delimited scope set into the OpenID scope.
func (g Grant) AddOIDCScope(scope string) Grant {
	out := g.clone()
	out.OpenIDScope = scopes.Union(g.OpenIDScope, scope)
	return out
}

// AddOIDCClaims merges claim names into the OpenID claims.
func (g Grant) AddOIDCClaims(claims []string) Grant {
	out := g.clone()
	out.OpenIDClaims = scopes.Union(g.OpenIDClaims, claims...)
	return out
}

// AddResourceScope merges a space-delimited scope set into the scope of the
// given resource indicator.
func (g Grant) AddResourceScope(indicator string, scope string) Grant {
	out := g.clone()
	merged := scopes.Union(g.Resources[indicator], scope)
	if len(merged) == 0 && g.Resources[indicator] == nil {
		return out
	}
	out.Resources[indicator] = merged
	return out
}

// Scope renders the OpenID scope in its wire form.
func (g Grant) Scope() string {
	return scopes.Join(g.OpenIDScope)
}

// ResourceScope renders a resource's scope in its wire form.
func (g Grant) ResourceScope(indicator string) string {
	return scopes.Join(g.Resources[indicator])
}

func (g Grant) clone() Grant {
	out := g
	out.OpenIDScope = slices.Clone(g.OpenIDScope)
	out.OpenIDClaims = slices.Clone(g.OpenIDClaims)
	out.Resources = make(map[string][]string, len(g.Resources))
	for indicator, s := range g.Resources {
		out.Resources[indicator] = slices.Clone(s)
	}
	if g.ExpiresAt != nil {
		exp := *g.ExpiresAt
		out.ExpiresAt = &exp
	}
	return out
}
