package approveloan

import (
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

// Decide determines whether the loan can be approved.
//
// Business Rules:
//
//	GIVEN: a pending loan
//	WHEN: ApproveLoan is received
//	THEN: LoanApproved is generated, due one loan period after the approval
//	ERROR: InvalidArgument if no administrator is given
//	ERROR: InvalidTransition if the loan is not pending
//
// The approval time never lies before the request time.
func Decide(loan core.LoanRequest, command Command) core.DecisionResult {
	if command.AdminID == "" {
		return core.ErrorDecision(core.InvalidArgumentError("admin id is required"))
	}

	if loan.Status != core.StatusPending {
		return core.ErrorDecision(core.InvalidTransitionError(loan.Status, "approve"))
	}

	return core.SuccessDecision(
		core.BuildLoanApproved(
			loan.ID,
			loan.UserID,
			command.AdminID,
			core.NotBefore(command.OccurredAt, loan.RequestedAt),
		),
	)
}
