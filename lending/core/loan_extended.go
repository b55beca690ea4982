package core

import (
	"fmt"
	"time"
)

// LoanExtendedEventType is the event type identifier.
const LoanExtendedEventType = "LoanExtended"

const auditDateLayout = "2006-01-02"

// LoanExtended records that an overdue loan got a new due date.
type LoanExtended struct {
	EventType       string
	LoanID          LoanIDString
	UserID          UserIDString
	PreviousDueDate time.Time
	NewDueDate      time.Time
	AuditNote       string
	OccurredAt      OccurredAt
}

// BuildLoanExtended creates a new LoanExtended event.
// The new due date is one ExtensionPeriod after previousDueDate, not after occurredAt.
func BuildLoanExtended(
	loanID LoanIDString,
	userID UserIDString,
	previousDueDate time.Time,
	occurredAt time.Time,
) LoanExtended {
	at := ToOccurredAt(occurredAt)
	newDueDate := previousDueDate.Add(ExtensionPeriod)

	return LoanExtended{
		EventType:       LoanExtendedEventType,
		LoanID:          loanID,
		UserID:          userID,
		PreviousDueDate: previousDueDate,
		NewDueDate:      newDueDate,
		AuditNote: fmt.Sprintf(
			"Loan extended by %d days on %s (new due date %s)",
			int(ExtensionPeriod/day),
			at.Format(auditDateLayout),
			newDueDate.UTC().Format(auditDateLayout),
		),
		OccurredAt: at,
	}
}

func (e LoanExtended) IsEventType() string       { return LoanExtendedEventType }
func (e LoanExtended) HasOccurredAt() time.Time  { return e.OccurredAt }
func (e LoanExtended) AffectsLoan() LoanIDString { return e.LoanID }
func (e LoanExtended) AffectsUser() UserIDString { return e.UserID }
func (e LoanExtended) ResultingStatus() Status   { return StatusApproved }
