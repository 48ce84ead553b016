// Package auth resolves admin identities for privileged endpoints, either
// from a static shared secret or from a verified bearer token checked
// against configured allow-lists.
package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the subject resolved from a verified bearer token.
type Identity struct {
	UserID string
	Email  string
}

// ErrInvalidToken is returned when a bearer token fails verification.
var ErrInvalidToken = errors.New("invalid or expired token")

// Verifier validates HS256 bearer tokens issued by the auth provider.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the given signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates the token and extracts the subject's
// id and email claims.
func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{UserID: sub, Email: email}, nil
}
