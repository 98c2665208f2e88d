package service

import (
	"context"

	id "credo-consent/pkg/domain"
	"credo-consent/pkg/requestcontext"
)

// CurrentUser is the end-user authenticated on the consent request. A zero
// UserID means the request is anonymous.
type CurrentUser struct {
	UserID id.AccountID
}

// IsAnonymous reports whether no user is authenticated.
func (u CurrentUser) IsAnonymous() bool {
	return u.UserID.IsNil()
}

// Authenticator resolves the end-user behind a request.
type Authenticator interface {
	CurrentUser(ctx context.Context) CurrentUser
}

// ContextAuthenticator reads the account placed on the request context by
// the session middleware.
type ContextAuthenticator struct{}

func (ContextAuthenticator) CurrentUser(ctx context.Context) CurrentUser {
	return CurrentUser{UserID: requestcontext.AccountID(ctx)}
}
