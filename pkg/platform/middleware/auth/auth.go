// Package auth resolves the logged-in account from the session token issued by
// the login service. Resolution is optional: anonymous requests pass through
// and handlers decide whether an account is required.
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	id "credo-consent/pkg/domain"
	request "credo-consent/pkg/platform/middleware/request"
	"credo-consent/pkg/requestcontext"
)

// SessionValidator validates a session token and returns its claims.
type SessionValidator interface {
	ValidateToken(tokenString string) (*SessionClaims, error)
}

// SessionClaims represents the claims we expect from the session validator.
type SessionClaims struct {
	AccountID string
	SessionID string
}

// ResolveSession reads the session token from cookieName or a Bearer
// Authorization header and, when valid, stores the account id in the context.
// Invalid tokens are logged and treated as anonymous.
func ResolveSession(validator SessionValidator, cookieName string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r, cookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "ignoring invalid session token",
					"error", err,
					"request_id", request.GetRequestID(ctx),
				)
				next.ServeHTTP(w, r)
				return
			}

			accountID, err := id.ParseAccountID(claims.AccountID)
			if err != nil {
				logger.WarnContext(ctx, "session token without account",
					"request_id", request.GetRequestID(ctx),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx = requestcontext.WithAccountID(ctx, accountID)
			ctx = requestcontext.WithSessionID(ctx, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request, cookieName string) string {
	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
			return c.Value
		}
	}
	const bearerPrefix = "Bearer "
	if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix); ok {
		return strings.TrimSpace(after)
	}
	return ""
}
