package models

import (
	"fmt"

	id "credo-consent/pkg/domain"
)

// Error codes and descriptions defined by the OAuth protocol for denial.
const (
	ErrorAccessDenied        = "access_denied"
	AccessDeniedDescription  = "User denied the authorization request"
	AccessAbortedDescription = "End-User aborted interaction"
)

// Login confirms which account completed the login prompt.
type Login struct {
	AccountID id.AccountID
	Remember  bool
}

// Consent references the persisted grant covering the consented scopes.
type Consent struct {
	GrantID id.GrantID
}

// Result is the outcome handed to the provider to finish an interaction.
// It is a closed union: LoginResult, ConsentResult, CombinedResult or DenialResult.
type Result interface {
	isResult()
}

// LoginResult answers a login prompt.
type LoginResult struct {
	Login Login
}

// ConsentResult answers a consent prompt.
type ConsentResult struct {
	Consent Consent
}

// CombinedResult answers a consent prompt and re-synchronizes the provider's
// session to the authenticated account in the same round trip.
type CombinedResult struct {
	Login   Login
	Consent Consent
}

// DenialResult ends the interaction with a protocol error.
type DenialResult struct {
	Error            string
	ErrorDescription string
}

func (LoginResult) isResult()    {}
func (ConsentResult) isResult()  {}
func (CombinedResult) isResult() {}
func (DenialResult) isResult()   {}

// AccessDenied is the denial produced when the user rejects the request.
func AccessDenied() DenialResult {
	return DenialResult{Error: ErrorAccessDenied, ErrorDescription: AccessDeniedDescription}
}

// LoginPayload is the wire form of Login.
type LoginPayload struct {
	AccountID id.AccountID `json:"accountId"`
	Remember  bool         `json:"remember"`
}

// ConsentPayload is the wire form of Consent.
type ConsentPayload struct {
	GrantID id.GrantID `json:"grantId"`
}

// ResultPayload is the canonical interaction result understood by the provider.
type ResultPayload struct {
	Login            *LoginPayload   `json:"login,omitempty"`
	Consent          *ConsentPayload `json:"consent,omitempty"`
	Error            string          `json:"error,omitempty"`
	ErrorDescription string          `json:"error_description,omitempty"`
}

// ToPayload converts a Result into the provider's wire form. Every variant is
// handled explicitly; anything else is rejected.
func ToPayload(r Result) (ResultPayload, error) {
	switch v := r.(type) {
	case LoginResult:
		return ResultPayload{Login: loginPayload(v.Login)}, nil
	case ConsentResult:
		if v.Consent.GrantID.IsNil() {
			return ResultPayload{}, fmt.Errorf("consent result without grant id")
		}
		return ResultPayload{Consent: &ConsentPayload{GrantID: v.Consent.GrantID}}, nil
	case CombinedResult:
		if v.Consent.GrantID.IsNil() {
			return ResultPayload{}, fmt.Errorf("combined result without grant id")
		}
		return ResultPayload{
			Login:   loginPayload(v.Login),
			Consent: &ConsentPayload{GrantID: v.Consent.GrantID},
		}, nil
	case DenialResult:
		if v.Error == "" {
			return ResultPayload{}, fmt.Errorf("denial result without error code")
		}
		return ResultPayload{Error: v.Error, ErrorDescription: v.ErrorDescription}, nil
	default:
		return ResultPayload{}, fmt.Errorf("unsupported interaction result %T", r)
	}
}

func loginPayload(l Login) *LoginPayload {
	return &LoginPayload{AccountID: l.AccountID, Remember: l.Remember}
}

// Merge overlays p on top of base, field by field. Used when finishing an
// interaction with mergeWithLastSubmission.
func (p ResultPayload) Merge(base *ResultPayload) ResultPayload {
	if base == nil {
		return p
	}
	merged := *base
	if p.Login != nil {
		merged.Login = p.Login
	}
	if p.Consent != nil {
		merged.Consent = p.Consent
	}
	if p.Error != "" {
		merged.Error = p.Error
		merged.ErrorDescription = p.ErrorDescription
	}
	return merged
}
