package models

import (
	"slices"
	"time"

	id "credo-consent/pkg/domain"
	dErrors "credo-consent/pkg/domain-errors"
)

// ClientStatus is the registration state of a relying party.
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

// Client is a registered relying party as the consent screen sees it.
//
// Invariants:
//   - ID is non-empty (the public client_id)
//   - Name is non-empty and at most 128 characters
//   - RedirectURIs is non-empty
type Client struct {
	ID           id.ClientID  `json:"client_id"`
	Name         string       `json:"client_name"`
	LogoURI      string       `json:"logo_uri,omitempty"`
	PolicyURI    string       `json:"policy_uri,omitempty"`
	TosURI       string       `json:"tos_uri,omitempty"`
	RedirectURIs []string     `json:"redirect_uris"`
	Status       ClientStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewClient validates and constructs an active client.
func NewClient(clientID id.ClientID, name string, redirectURIs []string, now time.Time) (*Client, error) {
	if clientID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "client_id cannot be empty")
	}
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "client name cannot be empty")
	}
	if len(name) > 128 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "client name must be 128 characters or less")
	}
	if len(redirectURIs) == 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "redirect_uris cannot be empty")
	}
	return &Client{
		ID:           clientID,
		Name:         name,
		RedirectURIs: slices.Clone(redirectURIs),
		Status:       ClientStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}

// Metadata is the public subset of the registration shown to the user.
type Metadata struct {
	ClientID     id.ClientID `json:"client_id"`
	ClientName   string      `json:"client_name"`
	LogoURI      string      `json:"logo_uri,omitempty"`
	PolicyURI    string      `json:"policy_uri,omitempty"`
	TosURI       string      `json:"tos_uri,omitempty"`
	RedirectURIs []string    `json:"redirect_uris"`
}

func (c *Client) Metadata() Metadata {
	return Metadata{
		ClientID:     c.ID,
		ClientName:   c.Name,
		LogoURI:      c.LogoURI,
		PolicyURI:    c.PolicyURI,
		TosURI:       c.TosURI,
		RedirectURIs: slices.Clone(c.RedirectURIs),
	}
}
