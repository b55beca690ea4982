package rejectloan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/command/rejectloan"
	. "github.com/AntonStoeckl/loan-lifecycle-go/testutil/helper" //nolint:revive
)

func Test_Decide_Success_KeepsReason(t *testing.T) {
	// arrange
	loan := givenPendingLoan()

	// act
	result := rejectloan.Decide(loan, rejectloan.BuildCommand(loan.ID, "admin-1", "stock damaged", FakeClock().Add(time.Hour)))

	// assert
	event, ok := result.Event.(core.LoanRejected)
	assert.True(t, ok)
	assert.Equal(t, "stock damaged", event.Reason)
	assert.Equal(t, "admin-1", event.RejectedBy)
}

func Test_Decide_Success_DefaultReasonWhenBlank(t *testing.T) {
	// arrange
	loan := givenPendingLoan()

	// act
	result := rejectloan.Decide(loan, rejectloan.BuildCommand(loan.ID, "admin-1", "   ", FakeClock()))

	// assert
	event, ok := result.Event.(core.LoanRejected)
	assert.True(t, ok)
	assert.Equal(t, core.DefaultRejectionReason, event.Reason)
}

func Test_Decide_Error_WhenNotPending(t *testing.T) {
	// arrange
	loan := givenPendingLoan()
	loan.Status = core.StatusRejected

	// act
	result := rejectloan.Decide(loan, rejectloan.BuildCommand(loan.ID, "admin-1", "", FakeClock()))

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrInvalidTransition)
}

func givenPendingLoan() core.LoanRequest {
	return core.Evolve(core.LoanRequest{}, core.BuildLoanRequested(
		"loan-2",
		"user-b",
		"b2",
		core.PlaceholderBookSnapshot(),
		FakeClock(),
	))
}
