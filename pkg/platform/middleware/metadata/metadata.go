package metadata

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"credo-consent/pkg/requestcontext"
)

// ClientMetadata extracts client IP address, User-Agent and a readable device
// label from the request and adds them to the context for audit enrichment.
// This middleware should be applied early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := r.Header.Get("User-Agent")
		ctx := requestcontext.WithClientMetadata(r.Context(), ClientIPFromRequest(r), ua, DeviceLabel(ua))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DeviceLabel renders a short "Browser on OS" label, or "" when the
// User-Agent carries nothing recognizable.
func DeviceLabel(userAgent string) string {
	if strings.TrimSpace(userAgent) == "" {
		return ""
	}
	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	os := ua.OS()
	switch {
	case ua.Bot():
		return "bot"
	case browser != "" && os != "":
		return browser + " on " + os
	case browser != "":
		return browser
	default:
		return os
	}
}

// ClientIPFromRequest extracts the real client IP from the request, handling proxies and load balancers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs (client, proxy1, proxy2, ...)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is "ip:port"; IPv6 is "[::1]:port"
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}

	return "unknown"
}
