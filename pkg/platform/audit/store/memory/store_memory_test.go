package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "credo-consent/pkg/platform/audit"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	require.NoError(t, s.Append(ctx, audit.Event{AccountID: "a", Action: string(audit.EventConsentGranted)}))
	require.NoError(t, s.Append(ctx, audit.Event{AccountID: "b", Action: string(audit.EventConsentDenied)}))
	require.NoError(t, s.Append(ctx, audit.Event{AccountID: "a", Action: string(audit.EventLoginConfirmed)}))

	byAccount, err := s.ListByAccount(ctx, "a")
	require.NoError(t, err)
	require.Len(t, byAccount, 2)
	assert.Equal(t, string(audit.EventLoginConfirmed), byAccount[1].Action)

	recent, err := s.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
	assert.Equal(t, "b", recent[0].AccountID.String())

	s.Clear()
	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEventCategory(t *testing.T) {
	assert.Equal(t, audit.CategoryCompliance, audit.EventConsentGranted.Category())
	assert.Equal(t, audit.CategoryOperations, audit.EventLoginConfirmed.Category())
	assert.Equal(t, audit.CategoryOperations, audit.AuditEvent("unknown").Category())
}
