package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"socialgraph/app/auth"
	"socialgraph/app/metrics"
	"socialgraph/app/middleware"
	"socialgraph/app/models"
	"socialgraph/app/services"
)

// Response messages shared with API clients.
const (
	msgInvalidCredentials = "Invalid credentials"
	msgUserNotFound       = "User not found."
	msgCannotFollowSelf   = "You cannot follow yourself."
	msgPostNotFound       = "Post not found."
	msgNotFoundOrNotOwner = "Post not found or you are not the owner of this post."
	msgPostOrLikeNotFound = "Post not found or you have not liked this post yet."
	msgInvalidJSON        = "Invalid JSON body."
	msgInternal           = "Internal server error"
	msgUnauthenticated    = "Authentication credentials were not provided."
)

// Responder writes JSON responses for all controllers. In legacy mode domain
// errors are reported with HTTP 200 and an {"error": ...} body.
type Responder struct {
	log    *logrus.Logger
	legacy bool
}

// NewResponder creates a new Responder
func NewResponder(log *logrus.Logger, legacyStatusCodes bool) *Responder {
	return &Responder{log: log, legacy: legacyStatusCodes}
}

func (rs *Responder) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	if rs.legacy && status == http.StatusCreated {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.log.WithError(err).Warn("writing response body")
	}
}

func (rs *Responder) sendMessage(w http.ResponseWriter, message string) {
	rs.sendJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (rs *Responder) sendError(w http.ResponseWriter, message string, status int) {
	if rs.legacy && status < http.StatusInternalServerError {
		status = http.StatusOK
	}
	rs.sendJSON(w, status, map[string]string{"error": message})
}

// fail reports err, recording the outcome of operation. Unknown errors are
// logged and hidden behind a generic message.
func (rs *Responder) fail(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status, outcome, message := http.StatusInternalServerError, metrics.OutcomeError, msgInternal

	switch {
	case errors.Is(err, services.ErrInvalidInput):
		status, outcome, message = http.StatusBadRequest, metrics.OutcomeInvalid, validationMessage(err)
	case errors.Is(err, services.ErrCannotFollowSelf):
		status, outcome, message = http.StatusBadRequest, metrics.OutcomeRejected, msgCannotFollowSelf
	case errors.Is(err, auth.ErrInvalidCredentials):
		status, outcome, message = http.StatusUnauthorized, metrics.OutcomeRejected, msgInvalidCredentials
	case errors.Is(err, services.ErrUserNotFound):
		status, outcome, message = http.StatusNotFound, metrics.OutcomeNotFound, msgUserNotFound
	case errors.Is(err, services.ErrPostNotFound):
		status, outcome, message = http.StatusNotFound, metrics.OutcomeNotFound, msgPostNotFound
	case errors.Is(err, services.ErrNotFoundOrNotOwner):
		status, outcome, message = http.StatusNotFound, metrics.OutcomeNotFound, msgNotFoundOrNotOwner
	case errors.Is(err, services.ErrPostOrLikeNotFound):
		status, outcome, message = http.StatusNotFound, metrics.OutcomeNotFound, msgPostOrLikeNotFound
	default:
		rs.log.WithFields(logrus.Fields{
			"operation": operation,
			"method":    r.Method,
			"path":      r.URL.Path,
		}).WithError(err).Error("request failed")
	}

	metrics.RecordOperation(operation, outcome)
	rs.sendError(w, message, status)
}

// identity returns the authenticated caller, writing a 401 when there is none.
func (rs *Responder) identity(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": msgUnauthenticated})
	}
	return identity, ok
}

// decode reads a JSON body into dst and validates it.
func (rs *Responder) decode(w http.ResponseWriter, r *http.Request, operation string, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		metrics.RecordOperation(operation, metrics.OutcomeInvalid)
		rs.sendError(w, msgInvalidJSON, http.StatusBadRequest)
		return false
	}
	if err := models.ValidateStruct(dst); err != nil {
		rs.fail(w, r, operation, fmt.Errorf("%w: %w", services.ErrInvalidInput, err))
		return false
	}
	return true
}

// pathID parses a numeric route variable. Zero is passed through so the
// service reports it as missing.
func (rs *Responder) pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil {
		rs.sendError(w, "Invalid "+name+".", http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid input."
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required."
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", field, fe.Param())
	case "email":
		return field + " must be a valid email address."
	}
	return field + " is invalid."
}
