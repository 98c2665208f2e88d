package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientstore "credo-consent/internal/client/store"
	"credo-consent/internal/interaction/models"
	"credo-consent/internal/platform/config"
	id "credo-consent/pkg/domain"
	"credo-consent/pkg/testutil"
)

func newTestApp(t *testing.T) *app {
	t.Helper()
	cfg, err := config.FromEnv()
	require.NoError(t, err)
	cfg.PublicURL = "https://id.example.com"

	a, err := build(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(a.close)
	require.Equal(t, "memory", a.storage)
	return a
}

func (a *app) sessionCookie(t *testing.T, accountID string) *http.Cookie {
	t.Helper()
	token, err := a.sessions.GenerateSessionToken(idOf(accountID), time.Minute)
	require.NoError(t, err)
	return &http.Cookie{Name: a.cfg.Session.CookieName, Value: token}
}

func TestConsentFlowEndToEnd(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	router := a.router()
	require.NoError(t, a.seedDemo(ctx))

	t.Run("login accept redirects to the public origin", func(t *testing.T) {
		interaction, err := a.engine.StartInteraction(ctx, models.Prompt{Name: models.PromptLogin},
			map[string]string{"client_id": clientstore.DemoClientID}, nil)
		require.NoError(t, err)

		req := testutil.NewFormRequest(t, http.MethodPost, "/interaction/consent", url.Values{
			"consent": {"accept"},
			"uid":     {interaction.UID.String()},
		})
		req.AddCookie(a.sessionCookie(t, "acct-7"))
		rr := testutil.DoRequest(router, req)

		testutil.AssertSeeOther(t, rr, "https://id.example.com/oidc/auth/"+interaction.UID.String())

		ic, err := a.engine.OpenInteraction(ctx, interaction.UID)
		require.NoError(t, err)
		stored, err := a.engine.InteractionDetails(ctx, ic)
		require.NoError(t, err)
		require.NotNil(t, stored.Result.Login)
		assert.Equal(t, "acct-7", stored.Result.Login.AccountID.String())
		assert.True(t, stored.Result.Login.Remember)
	})

	t.Run("reject is a redirect, not an error", func(t *testing.T) {
		interaction, err := a.engine.StartInteraction(ctx, models.Prompt{Name: models.PromptConsent},
			map[string]string{"client_id": clientstore.DemoClientID}, nil)
		require.NoError(t, err)

		req := testutil.NewFormRequest(t, http.MethodPost, "/interaction/consent", url.Values{
			"consent": {"reject"},
			"uid":     {interaction.UID.String()},
		})
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusSeeOther)

		ic, err := a.engine.OpenInteraction(ctx, interaction.UID)
		require.NoError(t, err)
		stored, err := a.engine.InteractionDetails(ctx, ic)
		require.NoError(t, err)
		assert.Equal(t, models.ErrorAccessDenied, stored.Result.Error)
		assert.Equal(t, models.AccessDeniedDescription, stored.Result.ErrorDescription)

		resubmit := testutil.NewFormRequest(t, http.MethodPost, "/interaction/consent", url.Values{
			"consent": {"accept"},
			"uid":     {interaction.UID.String()},
		})
		resubmit.AddCookie(a.sessionCookie(t, "acct-7"))
		rr = testutil.DoRequest(router, resubmit)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "invalid_request")
	})

	t.Run("consent accept persists the grant through the shared provider", func(t *testing.T) {
		interaction, err := a.engine.StartInteraction(ctx, models.Prompt{
			Name:    models.PromptConsent,
			Details: models.PromptDetails{MissingOIDCScope: []string{"openid email"}},
		}, map[string]string{"client_id": clientstore.DemoClientID}, nil)
		require.NoError(t, err)

		req := testutil.NewFormRequest(t, http.MethodPost, "/interaction/consent", url.Values{
			"consent": {"accept"},
			"uid":     {interaction.UID.String()},
		})
		req.AddCookie(a.sessionCookie(t, "acct-7"))
		testutil.AssertStatus(t, testutil.DoRequest(router, req), http.StatusSeeOther)

		ic, err := a.engine.OpenInteraction(ctx, interaction.UID)
		require.NoError(t, err)
		stored, err := a.engine.InteractionDetails(ctx, ic)
		require.NoError(t, err)
		require.NotNil(t, stored.Result.Consent)

		grant, err := a.engine.FindGrant(ctx, stored.Result.Consent.GrantID)
		require.NoError(t, err)
		require.NotNil(t, grant)
		assert.Equal(t, "acct-7", grant.AccountID.String())
		assert.Equal(t, []string{"openid", "email"}, grant.OpenIDScope)
	})

	t.Run("accept without a session is 401", func(t *testing.T) {
		interaction, err := a.engine.StartInteraction(ctx, models.Prompt{Name: models.PromptConsent},
			map[string]string{"client_id": clientstore.DemoClientID}, nil)
		require.NoError(t, err)

		req := testutil.NewFormRequest(t, http.MethodPost, "/interaction/consent", url.Values{
			"consent": {"accept"},
			"uid":     {interaction.UID.String()},
		})
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "not_authenticated")
	})

	t.Run("unknown interaction is 400", func(t *testing.T) {
		req := testutil.NewFormRequest(t, http.MethodPost, "/interaction/consent", url.Values{
			"consent": {"accept"},
			"uid":     {"does-not-exist"},
		})
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "invalid_request")
	})

	t.Run("health and metrics are served", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))
		testutil.AssertStatusOK(t, rr)

		rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
		testutil.AssertStatusOK(t, rr)
		assert.Contains(t, rr.Body.String(), "credo_consent_")
	})
}

func idOf(accountID string) id.AccountID {
	return id.AccountID(accountID)
}
