package markreturned

import (
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

const (
	commandType = "MarkReturned"
)

// Command represents the intent to close an approved loan because the book was returned.
type Command struct {
	LoanID     core.LoanIDString
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID core.LoanIDString, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
