package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "credo-consent/pkg/domain"
)

type bogusResult struct{ LoginResult }

func TestToPayload(t *testing.T) {
	t.Run("login", func(t *testing.T) {
		p, err := ToPayload(LoginResult{Login: Login{AccountID: "acct-7", Remember: true}})
		require.NoError(t, err)
		assert.Equal(t, &LoginPayload{AccountID: "acct-7", Remember: true}, p.Login)
		assert.Nil(t, p.Consent)
	})

	t.Run("combined carries both keys", func(t *testing.T) {
		p, err := ToPayload(CombinedResult{
			Login:   Login{AccountID: "acct-b", Remember: true},
			Consent: Consent{GrantID: "g1"},
		})
		require.NoError(t, err)

		raw, err := json.Marshal(p)
		require.NoError(t, err)
		assert.JSONEq(t, `{"login":{"accountId":"acct-b","remember":true},"consent":{"grantId":"g1"}}`, string(raw))
	})

	t.Run("denial", func(t *testing.T) {
		p, err := ToPayload(AccessDenied())
		require.NoError(t, err)

		raw, err := json.Marshal(p)
		require.NoError(t, err)
		assert.JSONEq(t, `{"error":"access_denied","error_description":"User denied the authorization request"}`, string(raw))
	})

	t.Run("consent without saved grant is rejected", func(t *testing.T) {
		_, err := ToPayload(ConsentResult{})
		assert.Error(t, err)
	})

	t.Run("unknown variant is rejected", func(t *testing.T) {
		_, err := ToPayload(bogusResult{})
		assert.Error(t, err)
	})

	t.Run("nil is rejected", func(t *testing.T) {
		_, err := ToPayload(nil)
		assert.Error(t, err)
	})
}

func TestResultPayload_Merge(t *testing.T) {
	last := &ResultPayload{Login: &LoginPayload{AccountID: "acct-7", Remember: true}}
	next := ResultPayload{Consent: &ConsentPayload{GrantID: id.GrantID("g1")}}

	merged := next.Merge(last)
	assert.Equal(t, last.Login, merged.Login)
	assert.Equal(t, next.Consent, merged.Consent)

	assert.Equal(t, next, next.Merge(nil))
}

func TestInteraction_Accessors(t *testing.T) {
	i := &Interaction{Params: map[string]string{"client_id": "app"}}
	assert.Equal(t, id.ClientID("app"), i.ClientID())
	assert.True(t, i.SessionAccountID().IsNil())

	i.Session = &Session{AccountID: "acct-a"}
	assert.Equal(t, id.AccountID("acct-a"), i.SessionAccountID())

	assert.False(t, i.Finished())
	i.Result = &ResultPayload{Error: ErrorAccessDenied}
	assert.True(t, i.Finished())
}
