// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets these values; services read them without importing net/http.
//
//	accountID := requestcontext.AccountID(ctx)
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
package requestcontext

import (
	"context"
	"time"

	id "credo-consent/pkg/domain"
)

type (
	accountIDKey   struct{}
	sessionIDKey   struct{}
	deviceKey      struct{}
	clientIPKey    struct{}
	userAgentKey   struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyAccountID   = accountIDKey{}
	ContextKeySessionID   = sessionIDKey{}
	ContextKeyDevice      = deviceKey{}
	ContextKeyClientIP    = clientIPKey{}
	ContextKeyUserAgent   = userAgentKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// -----------------------------------------------------------------------------
// Auth context
// -----------------------------------------------------------------------------

// AccountID retrieves the authenticated account from the context.
// Returns the empty AccountID when the request is anonymous.
func AccountID(ctx context.Context) id.AccountID {
	if accountID, ok := ctx.Value(ContextKeyAccountID).(id.AccountID); ok {
		return accountID
	}
	return ""
}

// WithAccountID injects the authenticated account into the context.
func WithAccountID(ctx context.Context, accountID id.AccountID) context.Context {
	return context.WithValue(ctx, ContextKeyAccountID, accountID)
}

// SessionID retrieves the login session id (the session token's jti).
func SessionID(ctx context.Context) string {
	if sessionID, ok := ctx.Value(ContextKeySessionID).(string); ok {
		return sessionID
	}
	return ""
}

// WithSessionID injects the login session id into the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ContextKeySessionID, sessionID)
}

// -----------------------------------------------------------------------------
// Client metadata (IP, User-Agent, device label)
// -----------------------------------------------------------------------------

// ClientIP retrieves the client IP address from the context.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(ContextKeyClientIP).(string); ok {
		return ip
	}
	return ""
}

// UserAgent retrieves the User-Agent from the context.
func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(ContextKeyUserAgent).(string); ok {
		return ua
	}
	return ""
}

// Device retrieves the parsed device label ("Firefox on Linux").
func Device(ctx context.Context) string {
	if d, ok := ctx.Value(ContextKeyDevice).(string); ok {
		return d
	}
	return ""
}

// WithClientMetadata injects client IP, User-Agent and device label into a context.
// Useful for service unit tests that don't run the full HTTP middleware chain.
func WithClientMetadata(ctx context.Context, clientIP, userAgent, device string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyClientIP, clientIP)
	ctx = context.WithValue(ctx, ContextKeyUserAgent, userAgent)
	ctx = context.WithValue(ctx, ContextKeyDevice, device)
	return ctx
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
