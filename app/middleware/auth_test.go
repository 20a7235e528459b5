package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"socialgraph/app/auth"
	"socialgraph/app/logging"
	"socialgraph/app/models"
)

type stubResolver map[string]models.Identity

func (s stubResolver) IdentityFromToken(ctx context.Context, token string) (models.Identity, error) {
	if token == "broken" {
		return models.Identity{}, errors.New("store unavailable")
	}
	identity, ok := s[token]
	if !ok {
		return models.Identity{}, auth.ErrUnauthenticated
	}
	return identity, nil
}

func TestAuthenticate(t *testing.T) {
	resolver := stubResolver{"abc123": {UserID: 1, Username: "alice"}}

	var seen models.Identity
	var seenToken string
	handler := Authenticate(resolver, logging.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFromContext(r.Context())
		seenToken, _ = TokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedBody   string
	}{
		{"bearer scheme", "Bearer abc123", http.StatusOK, ""},
		{"token scheme", "Token abc123", http.StatusOK, ""},
		{"lowercase scheme", "bearer abc123", http.StatusOK, ""},
		{"missing header", "", http.StatusUnauthorized, `{"error":"Authentication credentials were not provided."}`},
		{"unknown scheme", "Basic abc123", http.StatusUnauthorized, `{"error":"Authentication credentials were not provided."}`},
		{"empty token", "Bearer ", http.StatusUnauthorized, `{"error":"Authentication credentials were not provided."}`},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, `{"error":"Invalid token."}`},
		{"resolver failure", "Bearer broken", http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen, seenToken = models.Identity{}, ""

			req := httptest.NewRequest("GET", "/api/user/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
				assert.Zero(t, seen.UserID)
				return
			}
			assert.Equal(t, "alice", seen.Username)
			assert.Equal(t, "abc123", seenToken)
		})
	}
}

func TestIdentityFromContext_Missing(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), models.Identity{UserID: 3, Username: "carol"})
	identity, ok := IdentityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, uint(3), identity.UserID)
}
