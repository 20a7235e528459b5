package controllers

import (
	"context"
	"errors"
	"net/http"

	"socialgraph/app/auth"
	"socialgraph/app/metrics"
	"socialgraph/app/middleware"
	"socialgraph/app/models"
)

// Authenticator checks credentials and revokes tokens
type Authenticator interface {
	Authenticate(ctx context.Context, login, password string) (string, models.Identity, error)
	Revoke(ctx context.Context, token string) error
}

// AuthController handles token issuing and logout
type AuthController struct {
	auth Authenticator
	resp *Responder
}

// NewAuthController creates a new AuthController
func NewAuthController(authenticator Authenticator, resp *Responder) *AuthController {
	return &AuthController{auth: authenticator, resp: resp}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Authenticate exchanges an email (or username) and password for a token
func (ac *AuthController) Authenticate(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if !ac.resp.decode(w, r, "authenticate", &in) {
		return
	}

	token, _, err := ac.auth.Authenticate(r.Context(), in.Email, in.Password)
	if err != nil {
		ac.resp.fail(w, r, "authenticate", err)
		return
	}

	metrics.RecordOperation("authenticate", metrics.OutcomeOK)
	ac.resp.sendJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Logout revokes the token the request was made with
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		ac.resp.sendError(w, msgUnauthenticated, http.StatusUnauthorized)
		return
	}

	if err := ac.auth.Revoke(r.Context(), token); err != nil && !errors.Is(err, auth.ErrUnauthenticated) {
		ac.resp.fail(w, r, "logout", err)
		return
	}

	metrics.RecordOperation("logout", metrics.OutcomeOK)
	ac.resp.sendMessage(w, "You have been logged out.")
}
