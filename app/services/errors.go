package services

import (
	"errors"
	"fmt"
)

// Error kinds returned by the services. Each operation collapses the causes it
// does not distinguish into a single kind.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrNotFoundOrNotOwner = errors.New("post not found or not owned by caller")
	ErrPostOrLikeNotFound = errors.New("post not found or not liked by caller")
	ErrCannotFollowSelf   = errors.New("users cannot follow themselves")
	ErrInvalidInput       = errors.New("invalid input")
)

func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
