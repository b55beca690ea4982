package markreturned

import (
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

// Decide determines whether the loan can be marked as returned.
//
// Business Rules:
//
//	GIVEN: an approved loan
//	WHEN: MarkReturned is received
//	THEN: LoanReturned is generated
//	ERROR: InvalidTransition if the loan is not approved, including a second return of the same loan
func Decide(loan core.LoanRequest, command Command) core.DecisionResult {
	if loan.Status != core.StatusApproved {
		return core.ErrorDecision(core.InvalidTransitionError(loan.Status, "return"))
	}

	returnedAt := command.OccurredAt
	if loan.RespondedAt != nil {
		returnedAt = core.NotBefore(returnedAt, *loan.RespondedAt)
	}

	return core.SuccessDecision(core.BuildLoanReturned(loan.ID, loan.UserID, returnedAt))
}
