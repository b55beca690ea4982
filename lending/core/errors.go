package core

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateActiveLoan means the user already has a pending or approved loan for the book.
	ErrDuplicateActiveLoan = errors.New("duplicate active loan")

	// ErrInvalidTransition means the loan is not in the status the operation requires.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrNotOverdue means an extension was requested before the due date passed.
	ErrNotOverdue = errors.New("loan is not overdue")

	// ErrNotFound means the referenced loan does not exist.
	ErrNotFound = errors.New("loan not found")

	// ErrStoreUnavailable wraps infrastructure failures of the loan store. Callers may retry.
	ErrStoreUnavailable = errors.New("loan store unavailable")

	// ErrNotLoanOwner means a user acted on a loan that belongs to somebody else.
	ErrNotLoanOwner = errors.New("loan belongs to another user")

	// ErrForbidden means the actor lacks the administrator capability.
	ErrForbidden = errors.New("administrator capability required")

	// ErrExtensionLimitReached means the extension policy allows no further extension.
	ErrExtensionLimitReached = errors.New("extension limit reached")

	// ErrInvalidArgument means a command carried an empty or malformed value.
	ErrInvalidArgument = errors.New("invalid argument")
)

// IsBusinessFailure reports whether err is an expected outcome of the lifecycle rules
// rather than a fault. Business failures are logged at info level and never retried.
func IsBusinessFailure(err error) bool {
	for _, expected := range []error{
		ErrDuplicateActiveLoan,
		ErrInvalidTransition,
		ErrNotOverdue,
		ErrNotLoanOwner,
		ErrExtensionLimitReached,
	} {
		if errors.Is(err, expected) {
			return true
		}
	}

	return false
}

// FailureCode returns a stable, machine readable code for a classified failure.
func FailureCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDuplicateActiveLoan):
		return "duplicate_active_loan"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrNotOverdue):
		return "not_overdue"
	case errors.Is(err, ErrExtensionLimitReached):
		return "extension_limit_reached"
	case errors.Is(err, ErrNotLoanOwner):
		return "not_loan_owner"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "internal"
	}
}

// FailureMessage returns the text shown to the person who triggered err.
func FailureMessage(err error) string {
	switch FailureCode(err) {
	case "duplicate_active_loan":
		return "You already have an active request for this book."
	case "invalid_transition":
		return "This loan has changed in the meantime. Please refresh to see its current status."
	case "not_overdue":
		return "An extension can only be requested once the loan is overdue."
	case "extension_limit_reached":
		return "This loan cannot be extended any further."
	case "not_loan_owner":
		return "You can only extend your own loans."
	case "forbidden":
		return "Only administrators can do this."
	case "not_found":
		return "The loan does not exist."
	case "invalid_argument":
		return "The request is incomplete or malformed."
	case "store_unavailable":
		return "Loans are temporarily unavailable. Please try again."
	default:
		return "Unexpected error."
	}
}

// InvalidTransitionError builds an ErrInvalidTransition naming the current status and the attempted action.
func InvalidTransitionError(current Status, action string) error {
	return fmt.Errorf("%w: cannot %s a %s loan", ErrInvalidTransition, action, current)
}

// InvalidArgumentError builds an ErrInvalidArgument with a formatted detail.
func InvalidArgumentError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
