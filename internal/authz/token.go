package authz

import (
	"errors"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenVerifier validates externally issued HS256 identity tokens and
// extracts the username. This service never issues tokens; the upstream
// identity provider owns that.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier builds a verifier. An empty secret disables bearer
// token identity resolution.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Enabled reports whether token verification is configured.
func (v *TokenVerifier) Enabled() bool {
	return v != nil && len(v.secret) > 0
}

// Verify parses the token and returns its subject username.
func (v *TokenVerifier) Verify(tokenStr string) (string, error) {
	if !v.Enabled() {
		return "", errors.New("token verification not configured")
	}
	parsed, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", errors.New("invalid token claims")
	}
	return claims.Subject, nil
}
