package loansbyuser_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/command/approveloan"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/command/requestloan"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/loansbyuser"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore/memoryengine"
	. "github.com/AntonStoeckl/loan-lifecycle-go/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_ReturnsOnlyTheUsersLoans_NewestFirst(t *testing.T) {
	// arrange
	store := memoryengine.NewLoanStore()
	first := givenRequestedLoan(t, store, "user-a", "b1", 0)
	second := givenRequestedLoan(t, store, "user-a", "b2", day)
	_ = givenRequestedLoan(t, store, "user-b", "b1", 2*day)

	_, err := approveloan.NewCommandHandler(store).Handle(
		context.Background(),
		approveloan.BuildCommand(first, "admin-1", FakeClock().Add(3*day)),
	)
	require.NoError(t, err, "error in arranging test data")

	// act
	result, err := loansbyuser.NewQueryHandler(store).Handle(
		context.Background(),
		loansbyuser.BuildQuery("user-a", FakeClock().Add(30*day)),
	)

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, second, result.Loans[0].Loan.ID)
	assert.Equal(t, first, result.Loans[1].Loan.ID)
	assert.True(t, result.Loans[1].Overdue)
	assert.Equal(t, 13, result.Loans[1].DaysOverdue)
}

func Test_QueryHandler_Handle_UnknownUser_ReturnsEmptyList(t *testing.T) {
	// act
	result, err := loansbyuser.NewQueryHandler(memoryengine.NewLoanStore()).Handle(
		context.Background(),
		loansbyuser.BuildQuery("nobody", FakeClock()),
	)

	// assert
	require.NoError(t, err)
	assert.Empty(t, result.Loans)
	assert.Zero(t, result.Count)
}

func Test_QueryHandler_Handle_Error_MissingUser(t *testing.T) {
	// act
	_, err := loansbyuser.NewQueryHandler(memoryengine.NewLoanStore()).Handle(
		context.Background(),
		loansbyuser.BuildQuery("", FakeClock()),
	)

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func Test_QueryHandler_Handle_Error_StoreUnavailable(t *testing.T) {
	// act
	_, err := loansbyuser.NewQueryHandler(failingLoanStore{}).Handle(
		context.Background(),
		loansbyuser.BuildQuery("user-a", FakeClock()),
	)

	// assert
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)
	assert.ErrorIs(t, err, loanstore.ErrQueryingLoansFailed)
}

func givenRequestedLoan(
	t *testing.T,
	store *memoryengine.LoanStore,
	userID, bookID string,
	offset time.Duration,
) string {

	t.Helper()

	result, err := requestloan.NewCommandHandler(store).Handle(
		context.Background(),
		requestloan.BuildCommand(userID, bookID, core.PlaceholderBookSnapshot(), FakeClock().Add(offset)),
	)
	require.NoError(t, err, "error in arranging test data")

	return result.Loan.ID
}

type failingLoanStore struct{}

func (failingLoanStore) QueryByUser(context.Context, string) (loanstore.Records, error) {
	return nil, loanstore.ErrQueryingLoansFailed
}
