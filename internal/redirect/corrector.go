package redirect

import (
	"net/http"
	"net/url"
	"strings"
)

// Noop leaves URLs unchanged.
type Noop struct{}

func (Noop) Correct(_ *http.Request, u *url.URL) *url.URL {
	return u
}

// PublicOrigin rewrites URLs on the request's own origin to the configured
// public origin. URLs pointing elsewhere, such as a client's redirect_uri,
// are left alone.
type PublicOrigin struct {
	Scheme string
	Host   string
}

// NewPublicOrigin parses a public base URL such as https://id.example.com.
func NewPublicOrigin(publicURL string) (PublicOrigin, error) {
	u, err := url.Parse(publicURL)
	if err != nil {
		return PublicOrigin{}, err
	}
	if u.Scheme == "" || u.Host == "" {
		return PublicOrigin{}, ErrInvalidRedirect
	}
	return PublicOrigin{Scheme: u.Scheme, Host: u.Host}, nil
}

func (p PublicOrigin) Correct(r *http.Request, u *url.URL) *url.URL {
	if !sameHost(u, r.Host) {
		return u
	}
	out := *u
	out.Scheme = p.Scheme
	out.Host = p.Host
	return &out
}

// ForwardedHeaders trusts X-Forwarded-Proto and X-Forwarded-Host set by a
// reverse proxy. Only enable it when every request passes through one.
type ForwardedHeaders struct{}

func (ForwardedHeaders) Correct(r *http.Request, u *url.URL) *url.URL {
	if !sameHost(u, r.Host) {
		return u
	}
	out := *u
	if proto := firstValue(r.Header.Get("X-Forwarded-Proto")); proto == "http" || proto == "https" {
		out.Scheme = proto
	}
	if host := firstValue(r.Header.Get("X-Forwarded-Host")); host != "" {
		out.Host = host
	}
	return &out
}

// Chain applies correctors in order.
type Chain []OriginCorrector

func (c Chain) Correct(r *http.Request, u *url.URL) *url.URL {
	for _, corrector := range c {
		if u == nil {
			return nil
		}
		u = corrector.Correct(r, u)
	}
	return u
}

func sameHost(u *url.URL, host string) bool {
	return strings.EqualFold(u.Host, host)
}

// firstValue returns the client-most entry of a comma separated proxy header.
func firstValue(v string) string {
	first, _, _ := strings.Cut(v, ",")
	return strings.ToLower(strings.TrimSpace(first))
}
