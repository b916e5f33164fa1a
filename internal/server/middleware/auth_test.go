package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClaims is the minimal UserIDGetter a validated token resolves to.
type stubClaims struct {
	userID uuid.UUID
}

func (c stubClaims) GetUserID() uuid.UUID { return c.userID }

// stubValidator accepts exactly the tokens it was seeded with.
type stubValidator struct {
	sessions map[string]uuid.UUID
}

var errUnknownSession = errors.New("unknown session")

func (v *stubValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	id, ok := v.sessions[tokenString]
	if !ok {
		return nil, errUnknownSession
	}
	return stubClaims{userID: id}, nil
}

// echoUserID is the protected handler under test: it reports whichever user
// the middleware stamped onto the context.
func echoUserID(t *testing.T) (http.Handler, *uuid.UUID) {
	t.Helper()
	seen := new(uuid.UUID)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserID(r)
		require.NoError(t, err)
		*seen = id
		w.WriteHeader(http.StatusOK)
	}), seen
}

func TestAuthMiddleware_ValidTokenReachesHandler(t *testing.T) {
	student := uuid.New()
	validator := &stubValidator{sessions: map[string]uuid.UUID{"session-abc": student}}
	handler, seen := echoUserID(t)

	req := httptest.NewRequest(http.MethodGet, "/analysis/history", nil)
	req.Header.Set("Authorization", "Bearer session-abc")
	rec := httptest.NewRecorder()

	AuthMiddleware(validator)(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, student, *seen)
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	student := uuid.New()
	validator := &stubValidator{sessions: map[string]uuid.UUID{"session-abc": student}}
	handler, seen := echoUserID(t)

	req := httptest.NewRequest(http.MethodGet, "/analysis/history", nil)
	req.Header.Set("Authorization", "bearer session-abc")
	rec := httptest.NewRecorder()

	AuthMiddleware(validator)(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, student, *seen)
}

func TestAuthMiddleware_RejectsBadRequests(t *testing.T) {
	validator := &stubValidator{sessions: map[string]uuid.UUID{"session-abc": uuid.New()}}
	blocked := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for an unauthenticated request")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic session-abc"},
		{"scheme without token", "Bearer"},
		{"scheme with blank token", "Bearer   "},
		{"extra fields", "Bearer session-abc trailing"},
		{"unknown token", "Bearer session-forged"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(validator)(blocked).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), "Unauthorized")
		})
	}
}

func TestAuthMiddleware_ErrorBodyIsUniform(t *testing.T) {
	validator := &stubValidator{sessions: map[string]uuid.UUID{}}
	blocked := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	bodies := make(map[string]struct{})
	for _, header := range []string{"", "Basic x", "Bearer session-forged"} {
		req := httptest.NewRequest(http.MethodPost, "/roadmap", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		AuthMiddleware(validator)(blocked).ServeHTTP(rec, req)
		bodies[rec.Body.String()] = struct{}{}
	}

	assert.Len(t, bodies, 1, "every rejection reads the same to the client")
}

func TestGetUserID_OutsideMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/analysis/history", nil)

	_, err := GetUserID(req)
	assert.ErrorIs(t, err, ErrNoUserID)
}

func TestGetUserID_SeededContext(t *testing.T) {
	student := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/analysis/history", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey(), student))

	id, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, student, id)
}

func TestGetUserID_WrongValueType(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/analysis/history", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey(), "not-a-uuid"))

	_, err := GetUserID(req)
	assert.ErrorIs(t, err, ErrNoUserID)
}
