package rejectloan

import (
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

const (
	commandType = "RejectLoan"
)

// Command represents the intent of an administrator to deny a pending loan.
// An empty Reason is replaced by core.DefaultRejectionReason.
type Command struct {
	LoanID     core.LoanIDString
	AdminID    core.UserIDString
	Reason     string
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID core.LoanIDString, adminID core.UserIDString, reason string, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		AdminID:    adminID,
		Reason:     reason,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
