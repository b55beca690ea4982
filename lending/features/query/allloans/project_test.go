package allloans_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/allloans"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
	. "github.com/AntonStoeckl/loan-lifecycle-go/testutil/helper" //nolint:revive
)

const day = 24 * time.Hour

func Test_Project_OverdueOnly_UsesTheSameNowForFilterAndLabels(t *testing.T) {
	// arrange
	now := FakeClock().Add(20 * day)
	loans := []core.LoanRequest{
		givenApprovedLoan("l1", "user-a", FakeClock().Add(10*day)),
		givenApprovedLoan("l2", "user-b", now),
		givenApprovedLoan("l3", "user-c", FakeClock().Add(19*day)),
		{ID: "l4", UserID: "user-d", Status: core.StatusPending},
	}

	// act
	result := allloans.Project(loans, allloans.BuildQuery(now, true, 0), core.UnlimitedExtensions())

	// assert
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 2, result.OverdueCount)
	assert.Equal(t, "l1", result.Loans[0].Loan.ID)
	assert.Equal(t, "l3", result.Loans[1].Loan.ID)

	for _, view := range result.Loans {
		assert.True(t, view.Overdue)
	}
}

func Test_Project_AppliesStatusFilterAndLimit(t *testing.T) {
	// arrange
	loans := []core.LoanRequest{
		{ID: "l1", Status: core.StatusPending},
		{ID: "l2", Status: core.StatusRejected},
		{ID: "l3", Status: core.StatusPending},
		{ID: "l4", Status: core.StatusPending},
	}

	// act
	result := allloans.Project(
		loans,
		allloans.BuildQuery(FakeClock(), false, 2, core.StatusPending),
		core.UnlimitedExtensions(),
	)

	// assert
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, "l1", result.Loans[0].Loan.ID)
	assert.Equal(t, "l3", result.Loans[1].Loan.ID)
	assert.Zero(t, result.OverdueCount)
}

func Test_BuildLoanFilter(t *testing.T) {
	t.Run("pushes the limit down without overdue filter", func(t *testing.T) {
		filter := allloans.BuildLoanFilter(allloans.BuildQuery(FakeClock(), false, 5, core.StatusRejected))

		assert.Equal(t, uint(5), filter.Limit())
		assert.Equal(t, []loanstore.Status{loanstore.StatusRejected}, filter.Statuses())
	})

	t.Run("reads approved loans without limit for overdue filter", func(t *testing.T) {
		filter := allloans.BuildLoanFilter(allloans.BuildQuery(FakeClock(), true, 5))

		assert.Zero(t, filter.Limit())
		assert.Equal(t, []loanstore.Status{loanstore.StatusApproved}, filter.Statuses())
	})
}

func givenApprovedLoan(id, userID string, dueDate time.Time) core.LoanRequest {
	respondedAt := dueDate.Add(-core.LoanPeriod)

	return core.LoanRequest{
		ID:          id,
		UserID:      userID,
		BookID:      "book-" + id,
		Status:      core.StatusApproved,
		RequestedAt: respondedAt,
		RespondedAt: &respondedAt,
		DueDate:     &dueDate,
	}
}
