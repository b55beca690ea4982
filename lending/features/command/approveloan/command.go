package approveloan

import (
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

const (
	commandType = "ApproveLoan"
)

// Command represents the intent of an administrator to approve a pending loan.
type Command struct {
	LoanID     core.LoanIDString
	AdminID    core.UserIDString
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID core.LoanIDString, adminID core.UserIDString, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		AdminID:    adminID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
