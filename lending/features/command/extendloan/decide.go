package extendloan

import (
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

// Decide determines whether the loan can be extended.
//
// Business Rules:
//
//	GIVEN: an approved loan of the requesting user whose due date has passed
//	WHEN: ExtendLoan is received
//	THEN: LoanExtended is generated, due one extension period after the current due date
//	ERROR: InvalidArgument if no user is given
//	ERROR: NotLoanOwner if the loan belongs to another user
//	ERROR: InvalidTransition if the loan is not approved
//	ERROR: NotOverdue if now is not after the due date
//	ERROR: ExtensionLimitReached if the policy allows no further extension
func Decide(loan core.LoanRequest, command Command, policy core.ExtensionPolicy) core.DecisionResult {
	if command.UserID == "" {
		return core.ErrorDecision(core.InvalidArgumentError("user id is required"))
	}

	if !loan.IsOwnedBy(command.UserID) {
		return core.ErrorDecision(core.ErrNotLoanOwner)
	}

	if loan.Status != core.StatusApproved || loan.DueDate == nil {
		return core.ErrorDecision(core.InvalidTransitionError(loan.Status, "extend"))
	}

	if !core.IsOverdue(loan.DueDate, command.OccurredAt) {
		return core.ErrorDecision(core.ErrNotOverdue)
	}

	if !policy.Allows(loan.ExtensionCount) {
		return core.ErrorDecision(core.ErrExtensionLimitReached)
	}

	return core.SuccessDecision(
		core.BuildLoanExtended(loan.ID, loan.UserID, *loan.DueDate, command.OccurredAt),
	)
}
