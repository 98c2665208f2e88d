package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "credo-consent/pkg/domain"
	dErrors "credo-consent/pkg/domain-errors"
)

func TestNewClient(t *testing.T) {
	now := time.Now()
	uris := []string{"https://app.example.com/cb"}

	tests := []struct {
		name     string
		clientID id.ClientID
		client   string
		uris     []string
	}{
		{"empty client id", "", "App", uris},
		{"empty name", "app", "", uris},
		{"name too long", "app", strings.Repeat("x", 129), uris},
		{"no redirect uris", "app", "App", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.clientID, tt.client, tt.uris, now)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		})
	}

	c, err := NewClient("app", "App", uris, now)
	require.NoError(t, err)
	assert.True(t, c.IsActive())
}

func TestMetadata(t *testing.T) {
	c, err := NewClient("app", "Example App", []string{"https://app.example.com/cb"}, time.Now())
	require.NoError(t, err)
	c.LogoURI = "https://app.example.com/logo.png"

	md := c.Metadata()
	assert.Equal(t, "app", md.ClientID.String())
	assert.Equal(t, "Example App", md.ClientName)
	assert.Equal(t, c.LogoURI, md.LogoURI)

	md.RedirectURIs[0] = "mutated"
	assert.Equal(t, "https://app.example.com/cb", c.RedirectURIs[0])
}
