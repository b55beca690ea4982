package core

import (
	"time"
)

// LoanApprovedEventType is the event type identifier.
const LoanApprovedEventType = "LoanApproved"

// LoanApproved records that an administrator approved a pending request.
type LoanApproved struct {
	EventType  string
	LoanID     LoanIDString
	UserID     UserIDString
	ApprovedBy UserIDString
	DueDate    time.Time
	OccurredAt OccurredAt
}

// BuildLoanApproved creates a new LoanApproved event. The due date is one LoanPeriod after occurredAt.
func BuildLoanApproved(
	loanID LoanIDString,
	userID UserIDString,
	approvedBy UserIDString,
	occurredAt time.Time,
) LoanApproved {
	at := ToOccurredAt(occurredAt)

	return LoanApproved{
		EventType:  LoanApprovedEventType,
		LoanID:     loanID,
		UserID:     userID,
		ApprovedBy: approvedBy,
		DueDate:    at.Add(LoanPeriod),
		OccurredAt: at,
	}
}

// IsEventType returns the event type identifier.
func (e LoanApproved) IsEventType() string {
	return LoanApprovedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanApproved) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e LoanApproved) AffectsLoan() LoanIDString { return e.LoanID }
func (e LoanApproved) AffectsUser() UserIDString { return e.UserID }
func (e LoanApproved) ResultingStatus() Status   { return StatusApproved }
