package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fotofolio/service/internal/response"
)

// SecretHeader carries the static admin secret on privileged requests.
const SecretHeader = "X-Admin-Secret"

// ErrNotAllowed is returned when a valid identity is not on any allow-list,
// or when no credential grants access.
var ErrNotAllowed = errors.New("forbidden")

// TokenVerifier resolves a bearer token into an identity.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// Admin decides whether a request may perform privileged operations.
// Two independent grants exist: a static shared secret, or a verified
// identity matched against the uid/email allow-lists. With both
// allow-lists empty the identity path grants nobody (fail closed).
type Admin struct {
	secret   string
	uids     []string
	emails   []string // lower-cased
	verifier TokenVerifier
}

// NewAdmin creates an Admin authorizer. emails must already be lower-cased.
func NewAdmin(secret string, uids, emails []string, verifier TokenVerifier) *Admin {
	return &Admin{secret: secret, uids: uids, emails: emails, verifier: verifier}
}

// Authorize evaluates the request's credentials. It returns nil when access
// is granted, ErrInvalidToken when a bearer token fails verification, and
// ErrNotAllowed otherwise.
func (a *Admin) Authorize(r *http.Request) error {
	// Variant A: static shared secret for the admin dashboard.
	if provided := r.Header.Get(SecretHeader); a.secret != "" && provided != "" && provided == a.secret {
		return nil
	}

	// Variant B: verified bearer identity on an allow-list.
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return ErrNotAllowed
	}

	ident, err := a.verifier.Verify(strings.TrimSpace(authHeader[len("bearer "):]))
	if err != nil {
		return ErrInvalidToken
	}

	if len(a.uids) == 0 && len(a.emails) == 0 {
		return ErrNotAllowed
	}
	if contains(a.uids, ident.UserID) || contains(a.emails, strings.ToLower(ident.Email)) {
		return nil
	}
	return ErrNotAllowed
}

// RequireAdmin returns middleware that rejects requests Authorize denies.
func RequireAdmin(a *Admin) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch err := a.Authorize(r); {
			case errors.Is(err, ErrInvalidToken):
				response.Unauthorized(w, "Unauthorized")
			case err != nil:
				response.Forbidden(w, "Forbidden")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
