package loanstats_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/command/approveloan"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/command/markreturned"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/command/rejectloan"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/command/requestloan"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/loanstats"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore/memoryengine"
	. "github.com/AntonStoeckl/loan-lifecycle-go/testutil/helper" //nolint:revive
)

const day = 24 * time.Hour

func Test_Project_CountsPerStatus(t *testing.T) {
	// arrange
	due := FakeClock().Add(14 * day)
	loans := []core.LoanRequest{
		{Status: core.StatusPending},
		{Status: core.StatusPending},
		{Status: core.StatusApproved, DueDate: &due},
		{Status: core.StatusRejected},
		{Status: core.StatusReturned, DueDate: &due},
	}

	// act
	stats := loanstats.Project(loans, loanstats.BuildQuery("", FakeClock().Add(15*day)))

	// assert
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.Approved)
	assert.Equal(t, 1, stats.Rejected)
	assert.Equal(t, 1, stats.Returned)
	assert.Equal(t, 1, stats.Overdue, "returned loans are never overdue")
	assert.Equal(t, 2, stats.LoansApproved)
}

func Test_Project_EmptyInput(t *testing.T) {
	// act
	stats := loanstats.Project(nil, loanstats.BuildQuery("user-a", FakeClock()))

	// assert
	assert.Equal(t, loanstats.LoanStats{UserID: "user-a", EvaluatedAt: FakeClock()}, stats)
}

func Test_QueryHandler_Handle_ScopesToUser(t *testing.T) {
	// arrange
	store := memoryengine.NewLoanStore()
	ctx := context.Background()

	a1 := givenRequestedLoan(t, store, "user-a", "b1")
	a2 := givenRequestedLoan(t, store, "user-a", "b2")
	givenRequestedLoan(t, store, "user-a", "b3")
	givenRequestedLoan(t, store, "user-b", "b1")

	_, err := approveloan.NewCommandHandler(store).Handle(ctx, approveloan.BuildCommand(a1, "admin-1", FakeClock()))
	require.NoError(t, err, "error in arranging test data")
	_, err = markreturned.NewCommandHandler(store).Handle(ctx, markreturned.BuildCommand(a1, FakeClock().Add(day)))
	require.NoError(t, err, "error in arranging test data")
	_, err = rejectloan.NewCommandHandler(store).Handle(ctx, rejectloan.BuildCommand(a2, "admin-1", "", FakeClock()))
	require.NoError(t, err, "error in arranging test data")

	handler := loanstats.NewQueryHandler(store)

	// act
	userStats, userErr := handler.Handle(ctx, loanstats.BuildQuery("user-a", FakeClock()))
	allStats, allErr := handler.Handle(ctx, loanstats.BuildQuery("", FakeClock()))

	// assert
	require.NoError(t, userErr)
	assert.Equal(t, 3, userStats.Total)
	assert.Equal(t, 1, userStats.Pending)
	assert.Equal(t, 1, userStats.Returned)
	assert.Equal(t, 1, userStats.Rejected)
	assert.Equal(t, 1, userStats.LoansApproved)

	require.NoError(t, allErr)
	assert.Equal(t, 4, allStats.Total)
	assert.Equal(t, 2, allStats.Pending)
}

func givenRequestedLoan(t *testing.T, store *memoryengine.LoanStore, userID, bookID string) string {
	t.Helper()

	result, err := requestloan.NewCommandHandler(store).Handle(
		context.Background(),
		requestloan.BuildCommand(userID, bookID, core.PlaceholderBookSnapshot(), FakeClock()),
	)
	require.NoError(t, err, "error in arranging test data")

	return result.Loan.ID
}
