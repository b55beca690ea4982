package shell

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

var coreFailures = []error{
	core.ErrDuplicateActiveLoan,
	core.ErrInvalidTransition,
	core.ErrNotOverdue,
	core.ErrNotFound,
	core.ErrStoreUnavailable,
	core.ErrNotLoanOwner,
	core.ErrForbidden,
	core.ErrExtensionLimitReached,
	core.ErrInvalidArgument,
}

// MapStoreError translates an error coming out of a handler into exactly one typed core failure.
// The original error stays reachable through errors.Is.
//
//   - core failures and context errors pass through unchanged
//   - loanstore.ErrActiveLoanExists becomes core.ErrDuplicateActiveLoan
//   - loanstore.ErrLoanNotFound becomes core.ErrNotFound
//   - loanstore.ErrConcurrencyConflict (retries exhausted) becomes core.ErrInvalidTransition
//   - everything else becomes core.ErrStoreUnavailable
func MapStoreError(err error) error {
	if err == nil {
		return nil
	}

	for _, failure := range coreFailures {
		if errors.Is(err, failure) {
			return err
		}
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, loanstore.ErrActiveLoanExists):
		return errors.Join(core.ErrDuplicateActiveLoan, err)
	case errors.Is(err, loanstore.ErrLoanNotFound):
		return errors.Join(core.ErrNotFound, err)
	case errors.Is(err, loanstore.ErrConcurrencyConflict):
		return errors.Join(core.ErrInvalidTransition, err)
	default:
		return errors.Join(core.ErrStoreUnavailable, err)
	}
}
