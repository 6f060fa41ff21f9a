package middleware

import (
	"context"
	"net/http"
	"strings"

	"fintrack/internal/infrastructure/auth"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// OwnerContextKey is the context key for the authenticated owner ID
	OwnerContextKey ContextKey = "owner"
)

// AuthMiddleware creates an authentication middleware. Every request must
// carry a valid bearer token; the owner ID from the claims scopes all data
// access downstream.
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), OwnerContextKey, claims.OwnerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StaticOwner injects a fixed owner ID for deployments without
// authentication, such as a single-user local install.
func StaticOwner(ownerID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), OwnerContextKey, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetOwnerFromContext extracts the authenticated owner ID from context
func GetOwnerFromContext(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(OwnerContextKey).(string)
	return ownerID, ok && ownerID != ""
}
