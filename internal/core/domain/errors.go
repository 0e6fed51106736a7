package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrArtistNotFound     = errors.New("artist not found")
	ErrCommissionNotFound = errors.New("commission not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrCardNotFound       = errors.New("card not found")
	ErrUserExists         = errors.New("user already exists")
	ErrDuplicateReview    = errors.New("commission already reviewed by this user")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a malformed or out-of-range scalar input. It is
// always raised before any write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// WriteConflictError reports a store update that did not match or modify the
// expected number of records. When it follows a successful primary insert the
// inserted entity exists but is not fully cross-referenced; there is no
// automatic rollback, callers must reconcile.
type WriteConflictError struct {
	Entity string // record the failed update targeted, e.g. "artist"
	Op     string // what the update was doing, e.g. "add commission"
}

func (e *WriteConflictError) Error() string {
	return fmt.Sprintf("could not %s to %s", e.Op, e.Entity)
}

// RateLimitError reports a sender over quota. ResetAt is when the current
// window ends and sending becomes possible again.
type RateLimitError struct {
	Limit   int
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("message limit of %d reached, try again after %s", e.Limit, e.ResetAt.Format(time.RFC1123))
}
