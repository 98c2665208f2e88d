package handler

import "net/http"

// skippedHeaders are request headers never echoed on a redirect response:
// hop-by-hop headers, headers describing the request body and credentials.
var skippedHeaders = map[string]struct{}{
	"Connection":          {},
	"Keep-Alive":          {},
	"Proxy-Authenticate":  {},
	"Proxy-Authorization": {},
	"Proxy-Connection":    {},
	"Te":                  {},
	"Trailer":             {},
	"Transfer-Encoding":   {},
	"Upgrade":             {},
	"Content-Length":      {},
	"Content-Type":        {},
	"Content-Encoding":    {},
	"Authorization":       {},
	"Cookie":              {},
	"Host":                {},
	"Location":            {},
}

// forwardHeaders copies request headers onto the response, leaving headers
// already set on dst untouched.
func forwardHeaders(dst, src http.Header) {
	for name, values := range src {
		key := http.CanonicalHeaderKey(name)
		if _, skip := skippedHeaders[key]; skip {
			continue
		}
		if _, exists := dst[key]; exists {
			continue
		}
		dst[key] = append([]string(nil), values...)
	}
}
