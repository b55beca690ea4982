package requestloan

import (
	"strings"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

// Decide turns a request into a LoanRequested event for the loan with the given id.
//
// Business Rules:
//
//	GIVEN: a user and a book
//	WHEN: RequestLoan is received
//	THEN: LoanRequested with a complete book snapshot is generated
//	ERROR: InvalidArgument if the user, the book, or the loan id is empty
//
// Uniqueness of active loans is not decided here. It depends on state that may change between a read
// and a write, so the store enforces it at insert time.
func Decide(loanID core.LoanIDString, command Command) core.DecisionResult {
	switch {
	case strings.TrimSpace(command.UserID) == "":
		return core.ErrorDecision(core.InvalidArgumentError("user id is required"))
	case strings.TrimSpace(command.BookID) == "":
		return core.ErrorDecision(core.InvalidArgumentError("book id is required"))
	case loanID == "":
		return core.ErrorDecision(core.InvalidArgumentError("loan id is required"))
	}

	book := core.BuildBookSnapshot(command.Book.Title, command.Book.Authors, command.Book.ImageURL)

	return core.SuccessDecision(
		core.BuildLoanRequested(loanID, command.UserID, command.BookID, book, command.OccurredAt),
	)
}
