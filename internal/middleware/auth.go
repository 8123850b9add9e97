// Package middleware provides HTTP middleware: JWT authentication, request
// logging, and prometheus metrics.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/splitease/splitease/internal/auth"
	"github.com/splitease/splitease/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// currentUserKey is the context key for the authenticated caller.
const currentUserKey contextKey = "current_user"

// GetCurrentUser extracts the authenticated caller from the context.
// The zero value means no authenticated user.
func GetCurrentUser(ctx context.Context) models.CurrentUser {
	cur, _ := ctx.Value(currentUserKey).(models.CurrentUser)
	return cur
}

// WithCurrentUser returns a context carrying the given caller. Used by
// handlers in tests.
func WithCurrentUser(ctx context.Context, cur models.CurrentUser) context.Context {
	return context.WithValue(ctx, currentUserKey, cur)
}

// RequireAuth validates the bearer token on every request and stores a typed
// CurrentUser in the context. Requests without a valid token get 401.
func RequireAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, auth.ErrMissingToken)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, auth.ErrInvalidToken)
				return
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				unauthorized(w, err)
				return
			}

			cur := models.CurrentUser{
				UserID:      claims.UserID,
				DisplayName: claims.DisplayName,
			}
			next.ServeHTTP(w, r.WithContext(WithCurrentUser(r.Context(), cur)))
		})
	}
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
