// Package domain holds the identifier primitives shared across bounded contexts.
// Each identifier is a distinct type so an account id can never be passed
// where a client id is expected.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "credo-consent/pkg/domain-errors"
)

const (
	maxAccountIDLength = 255
	maxClientIDLength  = 255
	maxUIDLength       = 128
)

// AccountID identifies the end-user account the provider authenticates.
type AccountID string

// ClientID is the public OAuth client_id.
type ClientID string

// InteractionUID is the opaque id the provider assigns to a pending interaction.
type InteractionUID string

// GrantID is the durable id (jti) of a persisted grant.
type GrantID string

func (a AccountID) String() string      { return string(a) }
func (c ClientID) String() string       { return string(c) }
func (u InteractionUID) String() string { return string(u) }
func (g GrantID) String() string        { return string(g) }

func (a AccountID) IsNil() bool      { return a == "" }
func (c ClientID) IsNil() bool       { return c == "" }
func (u InteractionUID) IsNil() bool { return u == "" }
func (g GrantID) IsNil() bool        { return g == "" }

// NewGrantID allocates a fresh grant id.
func NewGrantID() GrantID {
	return GrantID(uuid.NewString())
}

// ParseAccountID validates an account id received at a trust boundary.
func ParseAccountID(s string) (AccountID, error) {
	v, err := parseOpaque(s, maxAccountIDLength, "account id")
	return AccountID(v), err
}

// ParseClientID validates a client_id.
func ParseClientID(s string) (ClientID, error) {
	v, err := parseOpaque(s, maxClientIDLength, "client id")
	return ClientID(v), err
}

// ParseInteractionUID validates an interaction uid. The provider generates
// URL-safe ids, so anything outside [A-Za-z0-9_-] is rejected.
func ParseInteractionUID(s string) (InteractionUID, error) {
	v, err := parseOpaque(s, maxUIDLength, "interaction uid")
	if err != nil {
		return "", err
	}
	for _, r := range v {
		if !isURLSafe(r) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "interaction uid contains invalid characters")
		}
	}
	return InteractionUID(v), nil
}

func parseOpaque(s string, maxLen int, what string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, what+" is required")
	}
	if len(v) > maxLen {
		return "", dErrors.New(dErrors.CodeInvalidInput, what+" is too long")
	}
	return v, nil
}

func isURLSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	}
	return false
}
