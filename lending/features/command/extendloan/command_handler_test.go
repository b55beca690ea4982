package extendloan_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/command/approveloan"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/command/extendloan"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/command/requestloan"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore/memoryengine"
	. "github.com/AntonStoeckl/loan-lifecycle-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_Success_OneDayLate(t *testing.T) {
	// arrange
	store := memoryengine.NewLoanStore()
	approvedAt := FakeClock().Add(time.Hour)
	approved := givenApprovedLoanInStore(t, store, approvedAt)
	originalDue := approvedAt.Add(14 * day)

	// act
	result, err := extendloan.NewCommandHandler(store).Handle(
		context.Background(),
		extendloan.BuildCommand(approved.ID, "user-a", originalDue.Add(day)),
	)

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.StatusApproved, result.Loan.Status)
	assert.Equal(t, originalDue.Add(30*day), *result.Loan.DueDate)
	assert.Equal(t, 1, result.Loan.ExtensionCount)
	assert.Equal(t,
		"Loan extended by 30 days on 1970-01-16 (new due date 1970-02-14)",
		result.Loan.NotesText(),
	)
}

func Test_CommandHandler_Handle_Success_CompoundsWhenExtendedTwice(t *testing.T) {
	// arrange
	store := memoryengine.NewLoanStore()
	approved := givenApprovedLoanInStore(t, store, FakeClock())
	handler := extendloan.NewCommandHandler(store)

	first, err := handler.Handle(context.Background(), extendloan.BuildCommand(approved.ID, "user-a", approved.DueDate.Add(day)))
	require.NoError(t, err)

	// act
	second, err := handler.Handle(context.Background(), extendloan.BuildCommand(approved.ID, "user-a", first.Loan.DueDate.Add(day)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, approved.DueDate.Add(60*day), *second.Loan.DueDate)
	assert.Equal(t, 2, second.Loan.ExtensionCount)
	assert.Len(t, strings.Split(second.Loan.NotesText(), "\n"), 2)
}

func Test_CommandHandler_Handle_Error_NotOverdue(t *testing.T) {
	// arrange
	store := memoryengine.NewLoanStore()
	approved := givenApprovedLoanInStore(t, store, FakeClock())

	// act
	_, err := extendloan.NewCommandHandler(store).Handle(
		context.Background(),
		extendloan.BuildCommand(approved.ID, "user-a", approved.DueDate.Add(-time.Hour)),
	)

	// assert
	assert.ErrorIs(t, err, core.ErrNotOverdue)

	stored, getErr := store.Get(context.Background(), approved.ID)
	require.NoError(t, getErr)
	assert.Equal(t, *approved.DueDate, *stored.DueDate)
}

func Test_CommandHandler_Handle_Error_NotLoanOwner(t *testing.T) {
	// arrange
	store := memoryengine.NewLoanStore()
	approved := givenApprovedLoanInStore(t, store, FakeClock())

	// act
	_, err := extendloan.NewCommandHandler(store).Handle(
		context.Background(),
		extendloan.BuildCommand(approved.ID, "user-b", approved.DueDate.Add(day)),
	)

	// assert
	assert.ErrorIs(t, err, core.ErrNotLoanOwner)
}

func Test_CommandHandler_Handle_Error_ExtensionLimitReached(t *testing.T) {
	// arrange
	store := memoryengine.NewLoanStore()
	approved := givenApprovedLoanInStore(t, store, FakeClock())
	handler := extendloan.NewCommandHandler(store, extendloan.WithExtensionPolicy(core.SingleExtension()))

	first, err := handler.Handle(context.Background(), extendloan.BuildCommand(approved.ID, "user-a", approved.DueDate.Add(day)))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(context.Background(), extendloan.BuildCommand(approved.ID, "user-a", first.Loan.DueDate.Add(day)))

	// assert
	assert.ErrorIs(t, err, core.ErrExtensionLimitReached)
}

func givenApprovedLoanInStore(t *testing.T, store *memoryengine.LoanStore, approvedAt time.Time) core.LoanRequest {
	t.Helper()

	requested, err := requestloan.NewCommandHandler(store).Handle(
		context.Background(),
		requestloan.BuildCommand("user-a", "b1", core.PlaceholderBookSnapshot(), FakeClock()),
	)
	require.NoError(t, err, "error in arranging test data")

	approved, err := approveloan.NewCommandHandler(store).Handle(
		context.Background(),
		approveloan.BuildCommand(requested.Loan.ID, "admin-1", approvedAt),
	)
	require.NoError(t, err, "error in arranging test data")

	return approved.Loan
}
