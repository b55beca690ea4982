package shell_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

func Test_MapStoreError(t *testing.T) {
	driverErr := errors.New("dial tcp: connection refused")

	testCases := []struct {
		name     string
		input    error
		expected error
	}{
		{name: "active loan exists", input: loanstore.ErrActiveLoanExists, expected: core.ErrDuplicateActiveLoan},
		{name: "not found", input: loanstore.ErrLoanNotFound, expected: core.ErrNotFound},
		{name: "exhausted conflict", input: loanstore.ErrConcurrencyConflict, expected: core.ErrInvalidTransition},
		{name: "driver failure", input: errors.Join(loanstore.ErrQueryingLoansFailed, driverErr), expected: core.ErrStoreUnavailable},
		{name: "core failure passes through", input: core.ErrNotOverdue, expected: core.ErrNotOverdue},
		{name: "context canceled passes through", input: context.Canceled, expected: context.Canceled},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := shell.MapStoreError(tc.input)

			assert.ErrorIs(t, mapped, tc.expected)
			assert.ErrorIs(t, mapped, tc.input, "the cause must stay reachable")
		})
	}
}

func Test_MapStoreError_Nil(t *testing.T) {
	assert.NoError(t, shell.MapStoreError(nil))
}

func Test_MapStoreError_ContextErrorIsNotStoreUnavailable(t *testing.T) {
	mapped := shell.MapStoreError(fmt.Errorf("query: %w", context.DeadlineExceeded))

	assert.NotErrorIs(t, mapped, core.ErrStoreUnavailable)
}

func Test_ClassifyError(t *testing.T) {
	assert.Equal(t, shell.StatusSuccess, shell.ClassifyError(nil))
	assert.Equal(t, shell.StatusBusinessFailure, shell.ClassifyError(core.ErrDuplicateActiveLoan))
	assert.Equal(t, shell.StatusClientError, shell.ClassifyError(core.ErrNotFound))
	assert.Equal(t, shell.StatusClientError, shell.ClassifyError(core.ErrForbidden))
	assert.Equal(t, shell.StatusCanceled, shell.ClassifyError(context.Canceled))
	assert.Equal(t, shell.StatusTimeout, shell.ClassifyError(context.DeadlineExceeded))
	assert.Equal(t, shell.StatusError, shell.ClassifyError(errors.Join(core.ErrStoreUnavailable, errors.New("x"))))
}
