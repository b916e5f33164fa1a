// Package middleware holds the HTTP middleware the API mounts in front of
// its authenticated routes.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is the package's own context key type so nothing outside it can
// collide with the values it stores.
type ContextKey string

const userIDKey ContextKey = "userID"

// TokenValidator checks a bearer token and yields the claims behind it.
// The JWT service satisfies this through an adapter so this package never
// imports it.
type TokenValidator interface {
	ValidateToken(tokenString string) (UserIDGetter, error)
}

// UserIDGetter exposes the authenticated user behind validated claims.
type UserIDGetter interface {
	GetUserID() uuid.UUID
}

// ErrNoUserID is returned by GetUserID when a handler runs outside the auth
// middleware, which is a wiring bug rather than a client error.
var ErrNoUserID = errors.New("no authenticated user in request context")

// AuthMiddleware rejects requests without a valid bearer token and stamps the
// authenticated user ID onto the request context for the handlers downstream.
func AuthMiddleware(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				deny(w)
				return
			}

			claims, err := tokens.ValidateToken(raw)
			if err != nil {
				deny(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.GetUserID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken pulls the token out of the Authorization header. The scheme
// match is case-insensitive; anything other than exactly "Bearer <token>"
// is rejected.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// deny writes the API's JSON error shape. The reason is deliberately uniform:
// a probing client learns nothing about whether the token was absent,
// malformed, expired or forged.
func deny(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}

// GetUserID reads the authenticated user ID stamped by AuthMiddleware.
func GetUserID(r *http.Request) (uuid.UUID, error) {
	id, ok := r.Context().Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrNoUserID
	}
	return id, nil
}

// UserIDKey exposes the context key so handler tests can seed an
// authenticated request without running the middleware.
func UserIDKey() ContextKey {
	return userIDKey
}
