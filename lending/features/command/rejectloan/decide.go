package rejectloan

import (
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

// Decide determines whether the loan can be rejected.
//
// Business Rules:
//
//	GIVEN: a pending loan
//	WHEN: RejectLoan is received
//	THEN: LoanRejected is generated with the reason, or the default reason if none was given
//	ERROR: InvalidArgument if no administrator is given
//	ERROR: InvalidTransition if the loan is not pending
func Decide(loan core.LoanRequest, command Command) core.DecisionResult {
	if command.AdminID == "" {
		return core.ErrorDecision(core.InvalidArgumentError("admin id is required"))
	}

	if loan.Status != core.StatusPending {
		return core.ErrorDecision(core.InvalidTransitionError(loan.Status, "reject"))
	}

	return core.SuccessDecision(
		core.BuildLoanRejected(
			loan.ID,
			loan.UserID,
			command.AdminID,
			command.Reason,
			core.NotBefore(command.OccurredAt, loan.RequestedAt),
		),
	)
}
