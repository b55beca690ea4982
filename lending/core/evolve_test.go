package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

func Test_Evolve_HappyPath(t *testing.T) {
	// arrange
	requestedAt := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	approvedAt := requestedAt.Add(2 * time.Hour)
	returnedAt := approvedAt.Add(10 * 24 * time.Hour)

	// act
	loan := core.Evolve(core.LoanRequest{}, core.BuildLoanRequested(
		"loan-1", "user-1", "b1", core.BuildBookSnapshot("X", []string{"A"}, ""), requestedAt,
	))
	pending := loan
	loan = core.Evolve(loan, core.BuildLoanApproved("loan-1", "user-1", "admin-1", approvedAt))
	approved := loan
	loan = core.Evolve(loan, core.BuildLoanReturned("loan-1", "user-1", returnedAt))

	// assert
	assert.Equal(t, core.StatusPending, pending.Status)
	assert.Nil(t, pending.DueDate)
	assert.Equal(t, requestedAt, pending.RequestedAt)

	assert.Equal(t, core.StatusApproved, approved.Status)
	require.NotNil(t, approved.DueDate)
	assert.Equal(t, approvedAt.Add(14*24*time.Hour), *approved.DueDate)
	assert.Equal(t, approvedAt, *approved.RespondedAt)
	assert.Equal(t, "admin-1", *approved.RespondedBy)

	assert.Equal(t, core.StatusReturned, loan.Status)
	assert.Equal(t, returnedAt, *loan.ReturnedAt)
	assert.Equal(t, *approved.DueDate, *loan.DueDate, "due date stays as historical record")
	assert.Equal(t, "loan-1", loan.ID)
	assert.Equal(t, "user-1", loan.UserID)
	assert.Equal(t, "b1", loan.BookID)
}

func Test_Evolve_Rejected_DefaultsReason(t *testing.T) {
	// arrange
	loan := givenPendingLoan()

	// act
	rejected := core.Evolve(loan, core.BuildLoanRejected(loan.ID, loan.UserID, "admin-1", "   ", loan.RequestedAt))

	// assert
	assert.Equal(t, core.StatusRejected, rejected.Status)
	assert.Equal(t, core.DefaultRejectionReason, rejected.NotesText())
	assert.Nil(t, rejected.DueDate)
}

func Test_Evolve_Extended_CompoundsFromCurrentDueDate(t *testing.T) {
	// arrange
	approvedAt := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	loan := core.Evolve(givenPendingLoan(), core.BuildLoanApproved("loan-1", "user-1", "admin-1", approvedAt))
	firstDue := *loan.DueDate
	now := firstDue.Add(24 * time.Hour)

	// act
	loan = core.Evolve(loan, core.BuildLoanExtended(loan.ID, loan.UserID, *loan.DueDate, now))
	loan = core.Evolve(loan, core.BuildLoanExtended(loan.ID, loan.UserID, *loan.DueDate, now))

	// assert
	assert.Equal(t, core.StatusApproved, loan.Status)
	assert.Equal(t, firstDue.Add(60*24*time.Hour), *loan.DueDate)
	assert.Equal(t, 2, loan.ExtensionCount)
	assert.Equal(t,
		"Loan extended by 30 days on 2025-01-16 (new due date 2025-02-14)\n"+
			"Loan extended by 30 days on 2025-01-16 (new due date 2025-03-16)",
		loan.NotesText(),
	)
}

func Test_Evolve_DoesNotShareAuthorsWithEvent(t *testing.T) {
	// arrange
	event := core.BuildLoanRequested("loan-1", "user-1", "b1", core.BuildBookSnapshot("X", []string{"A"}, ""), time.Now())

	// act
	loan := core.Evolve(core.LoanRequest{}, event)
	event.Book.Authors[0] = "changed"

	// assert
	assert.Equal(t, []string{"A"}, loan.Book.Authors)
}

func givenPendingLoan() core.LoanRequest {
	return core.Evolve(core.LoanRequest{}, core.BuildLoanRequested(
		"loan-1",
		"user-1",
		"b1",
		core.PlaceholderBookSnapshot(),
		time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC),
	))
}
