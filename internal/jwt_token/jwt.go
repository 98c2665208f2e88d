package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "credo-consent/pkg/domain"
	dErrors "credo-consent/pkg/domain-errors"
)

// SessionClaims are the claims of the login session token. The login
// service issues it after authenticating the user; this service only reads it.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// AccountID returns the authenticated account (the token subject).
func (c *SessionClaims) AccountID() string {
	return c.Subject
}

// JWTService handles session token creation and validation.
type JWTService struct {
	signingKey []byte
	issuer     string
	audience   string
}

func NewJWTService(signingKey string, issuer string, audience string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// GenerateSessionToken mints a session token for accountID. Used by the
// development login helper and tests.
func (s *JWTService) GenerateSessionToken(accountID id.AccountID, expiresIn time.Duration) (string, error) {
	now := time.Now()
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotAuthenticated, "session has expired")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeNotAuthenticated, "invalid session token")
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeNotAuthenticated, "invalid session claims")
	}
	if claims.Subject == "" {
		return nil, dErrors.New(dErrors.CodeNotAuthenticated, "session token has no subject")
	}

	return claims, nil
}
