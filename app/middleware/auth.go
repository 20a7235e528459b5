package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"socialgraph/app/auth"
	"socialgraph/app/models"
)

// IdentityResolver resolves a bearer token to the caller's identity.
type IdentityResolver interface {
	IdentityFromToken(ctx context.Context, token string) (models.Identity, error)
}

type contextKey int

const (
	identityKey contextKey = iota
	tokenKey
)

const (
	msgNoCredentials = "Authentication credentials were not provided."
	msgInvalidToken  = "Invalid token."
)

// Authenticate rejects requests without a valid bearer token and stores the
// resolved identity in the request context. Both "Bearer" and "Token"
// schemes are accepted.
func Authenticate(resolver IdentityResolver, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeError(w, http.StatusUnauthorized, msgNoCredentials)
				return
			}

			identity, err := resolver.IdentityFromToken(r.Context(), token)
			if err != nil {
				if !errors.Is(err, auth.ErrUnauthenticated) {
					log.WithError(err).Error("resolving bearer token")
					writeError(w, http.StatusInternalServerError, "Internal server error")
					return
				}
				writeError(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the identity stored by Authenticate.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	return identity, ok
}

// TokenFromContext returns the bearer token the request was authenticated with.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	if !strings.EqualFold(scheme, "Bearer") && !strings.EqualFold(scheme, "Token") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
