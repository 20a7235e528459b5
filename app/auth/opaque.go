package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"socialgraph/app/models"
	"socialgraph/app/repositories"
)

// OpaqueIssuer hands out random tokens kept in a TokenRepository. A user
// keeps receiving the same token until it expires or is revoked.
type OpaqueIssuer struct {
	tokens repositories.TokenRepository
	ttl    time.Duration
}

// NewOpaqueIssuer creates a new OpaqueIssuer
func NewOpaqueIssuer(tokens repositories.TokenRepository, ttl time.Duration) *OpaqueIssuer {
	return &OpaqueIssuer{tokens: tokens, ttl: ttl}
}

// Issue returns the user's live token, extending its lifetime, or creates one
func (i *OpaqueIssuer) Issue(user *models.User) (string, error) {
	candidate := strings.ReplaceAll(uuid.NewString(), "-", "")
	return i.tokens.GetOrCreate(user.ID, candidate, i.ttl)
}

// Resolve maps a token to its user ID
func (i *OpaqueIssuer) Resolve(token string) (uint, error) {
	userID, err := i.tokens.Lookup(token)
	if errors.Is(err, repositories.ErrNotFound) {
		return 0, ErrUnauthenticated
	}
	return userID, err
}

// Revoke deletes the token so it no longer resolves
func (i *OpaqueIssuer) Revoke(token string) error {
	err := i.tokens.Delete(token)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrUnauthenticated
	}
	return err
}
