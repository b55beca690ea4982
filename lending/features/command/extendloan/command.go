package extendloan

import (
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

const (
	commandType = "ExtendLoan"
)

// Command represents the intent of a borrower to extend an overdue loan.
// OccurredAt is the "now" the overdue check is evaluated against.
type Command struct {
	LoanID     core.LoanIDString
	UserID     core.UserIDString
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID core.LoanIDString, userID core.UserIDString, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		UserID:     userID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
