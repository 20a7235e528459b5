// Package auth authenticates credentials and resolves bearer tokens to
// identities.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"socialgraph/app/models"
	"socialgraph/app/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUserExists         = errors.New("username or email already registered")
)

// TokenIssuer issues bearer tokens and resolves them back to a user ID.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
	Resolve(token string) (uint, error)
	Revoke(token string) error
}

// Registration is the input to Register.
type Registration struct {
	Username string `validate:"required,min=3,max=150"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=8,max=72"`
}

// Provider is the authentication front of the service.
type Provider struct {
	users  repositories.UserRepository
	issuer TokenIssuer
	log    *logrus.Logger
	cost   int
}

// NewProvider creates a Provider that hashes passwords with bcrypt.DefaultCost.
func NewProvider(users repositories.UserRepository, issuer TokenIssuer, log *logrus.Logger) *Provider {
	return &Provider{
		users:  users,
		issuer: issuer,
		log:    log,
		cost:   bcrypt.DefaultCost,
	}
}

// WithCost returns a copy of the provider using the given bcrypt cost.
func (p *Provider) WithCost(cost int) *Provider {
	cp := *p
	cp.cost = cost
	return &cp
}

// dummyHash is compared against when the login is unknown so that both
// failure paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("socialgraph-dummy-password"), bcrypt.DefaultCost)

// Authenticate checks login (an email or username) and password and returns a
// bearer token for the user.
func (p *Provider) Authenticate(ctx context.Context, login, password string) (string, models.Identity, error) {
	user, err := p.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", models.Identity{}, ErrInvalidCredentials
		}
		return "", models.Identity{}, fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		p.log.WithField("user_id", user.ID).Info("rejected login with wrong password")
		return "", models.Identity{}, ErrInvalidCredentials
	}

	token, err := p.issuer.Issue(user)
	if err != nil {
		return "", models.Identity{}, fmt.Errorf("issuing token: %w", err)
	}
	return token, user.Identity(), nil
}

// IdentityFromToken resolves a bearer token to the identity it was issued for.
func (p *Provider) IdentityFromToken(ctx context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, ErrUnauthenticated
	}
	userID, err := p.issuer.Resolve(token)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return models.Identity{}, err
		}
		return models.Identity{}, fmt.Errorf("resolving token: %w", err)
	}

	user, err := p.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Identity{}, ErrUnauthenticated
		}
		return models.Identity{}, fmt.Errorf("loading token user: %w", err)
	}
	return user.Identity(), nil
}

// Revoke invalidates token. Stateless tokens cannot be revoked and are left alone.
func (p *Provider) Revoke(ctx context.Context, token string) error {
	return p.issuer.Revoke(token)
}

// Register creates a user with a bcrypt-hashed password.
func (p *Provider) Register(ctx context.Context, reg Registration) (*models.User, error) {
	if err := models.ValidateStruct(reg); err != nil {
		return nil, fmt.Errorf("invalid registration: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: string(hash),
	}
	if err := p.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	p.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("registered user")
	return user, nil
}
