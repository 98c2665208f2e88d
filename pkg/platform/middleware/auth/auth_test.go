package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	id "credo-consent/pkg/domain"
	"credo-consent/pkg/requestcontext"
)

type stubValidator struct {
	claims *SessionClaims
	err    error
}

func (s stubValidator) ValidateToken(string) (*SessionClaims, error) {
	return s.claims, s.err
}

func resolve(t *testing.T, v SessionValidator, req *http.Request) id.AccountID {
	t.Helper()
	var got id.AccountID
	h := ResolveSession(v, "credo_session", slog.New(slog.NewTextHandler(io.Discard, nil)))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = requestcontext.AccountID(r.Context())
		}))
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestResolveSession(t *testing.T) {
	valid := stubValidator{claims: &SessionClaims{AccountID: "acct-7", SessionID: "s1"}}

	t.Run("cookie token resolves account", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(&http.Cookie{Name: "credo_session", Value: "tok"})
		assert.Equal(t, id.AccountID("acct-7"), resolve(t, valid, req))
	})

	t.Run("bearer token resolves account", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer tok")
		assert.Equal(t, id.AccountID("acct-7"), resolve(t, valid, req))
	})

	t.Run("no token stays anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		assert.True(t, resolve(t, valid, req).IsNil())
	})

	t.Run("invalid token stays anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer tok")
		assert.True(t, resolve(t, stubValidator{err: errors.New("expired")}, req).IsNil())
	})
}
