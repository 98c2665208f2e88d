// Package redirect turns the provider's redirect instruction into the
// external URL the browser is sent to.
package redirect

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	dErrors "credo-consent/pkg/domain-errors"
)

// ErrInvalidRedirect is returned when an instruction is not a usable URL.
var ErrInvalidRedirect = errors.New("invalid redirect")

// OriginCorrector rewrites a resolved URL to match the deployment, for
// example when the service runs behind a reverse proxy. Implementations must
// leave path and query untouched.
type OriginCorrector interface {
	Correct(r *http.Request, u *url.URL) *url.URL
}

// Finalizer resolves redirect instructions against the request origin.
type Finalizer struct {
	corrector OriginCorrector
}

// New returns a Finalizer. A nil corrector is treated as Noop.
func New(corrector OriginCorrector) *Finalizer {
	if corrector == nil {
		corrector = Noop{}
	}
	return &Finalizer{corrector: corrector}
}

// Finalize resolves instruction against the origin of r when it is relative,
// then applies origin correction. Failures are server errors: a bad
// instruction is a provider or configuration defect, not a user error.
func (f *Finalizer) Finalize(instruction string, r *http.Request) (*url.URL, error) {
	if strings.TrimSpace(instruction) == "" {
		return nil, dErrors.New(dErrors.CodeServerError, "missing redirect instruction")
	}
	ref, err := url.Parse(instruction)
	if err != nil {
		return nil, dErrors.Wrap(errors.Join(ErrInvalidRedirect, err), dErrors.CodeServerError, "redirect instruction is not a valid URL")
	}
	resolved := RequestOrigin(r).ResolveReference(ref)
	if resolved.Scheme == "" || resolved.Host == "" {
		return nil, dErrors.Wrap(ErrInvalidRedirect, dErrors.CodeServerError, "redirect instruction did not resolve to an absolute URL")
	}
	corrected := f.corrector.Correct(r, resolved)
	if corrected == nil {
		return nil, dErrors.Wrap(ErrInvalidRedirect, dErrors.CodeServerError, "origin correction produced no URL")
	}
	return corrected, nil
}

// RequestOrigin is the scheme and host the request was received on.
func RequestOrigin(r *http.Request) *url.URL {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return &url.URL{Scheme: scheme, Host: r.Host, Path: "/"}
}
