// Package domain defines the typed errors every business rule violation
// surfaces as. Handlers translate them to HTTP responses; nothing below the
// transport layer swallows them.
package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	ErrSoldOut        = errors.New("ticket is sold out")
	ErrTicketInactive = errors.New("ticket is not available for sale")

	ErrDuplicateRSVP       = errors.New("you have already RSVP'd for this event")
	ErrAlreadyOnWaitlist   = errors.New("you are already on the waitlist for this event")
	ErrEmailTaken          = errors.New("email address is already registered")
	ErrAlreadySubscribed   = errors.New("this email address is already subscribed")
	ErrDuplicateTicketName = errors.New("a ticket with this name already exists for the event")
)

// ValidationError reports malformed or out-of-range input. Field is empty for
// errors that span the whole request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func Validationf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is a uniqueness violation surfaced as a
// domain error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateRSVP) ||
		errors.Is(err, ErrAlreadyOnWaitlist) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrAlreadySubscribed) ||
		errors.Is(err, ErrDuplicateTicketName)
}
