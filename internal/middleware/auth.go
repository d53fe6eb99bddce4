package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/healthri/basket-api/internal/auth"
)

// TokenVerifier validates a bearer token and returns the user it belongs to.
// *auth.Verifier satisfies this; tests can inject a stub.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// NewAuthHandler returns a middleware that resolves the caller's identity
// from the Authorization header and stores it in the request context.
// Requests without a valid bearer token are rejected with 401.
//
// When debugUserID is non-nil, token validation is bypassed and every
// request is attributed to that user — the local-development equivalent of
// a fixed identity provider.
func NewAuthHandler(verifier TokenVerifier, debugUserID *uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if debugUserID != nil {
				next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), *debugUserID)))
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}
