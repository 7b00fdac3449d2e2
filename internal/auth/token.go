// Package auth issues and verifies the HS256 bearer tokens that guard the
// admin routes.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Parse for any token that must be rejected.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload carried by an admin token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token for subject with the given role, valid for ttl from now.
func Issue(secret []byte, subject, role string, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("auth.Issue: %w", err)
	}
	return signed, nil
}

// Parse verifies signature and expiry and returns the claims.
// now is used as the validation clock; pass time.Now in production.
func Parse(secret []byte, token string, now func() time.Time) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return nil, fmt.Errorf("auth.Parse: %w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}
