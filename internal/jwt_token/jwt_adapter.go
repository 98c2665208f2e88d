package jwttoken

import (
	authmw "credo-consent/pkg/platform/middleware/auth"
)

// ValidatorFunc adapts a plain function to authmw.SessionValidator.
type ValidatorFunc func(token string) (*authmw.SessionClaims, error)

func (f ValidatorFunc) ValidateToken(token string) (*authmw.SessionClaims, error) {
	return f(token)
}

// SessionValidator exposes s to the session middleware, which only needs the
// account and the token id.
func (s *JWTService) SessionValidator() authmw.SessionValidator {
	return ValidatorFunc(func(token string) (*authmw.SessionClaims, error) {
		claims, err := s.ValidateToken(token)
		if err != nil {
			return nil, err
		}
		return &authmw.SessionClaims{AccountID: claims.AccountID(), SessionID: claims.ID}, nil
	})
}
