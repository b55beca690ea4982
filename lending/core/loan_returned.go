package core

import (
	"time"
)

// LoanReturnedEventType is the event type identifier.
const LoanReturnedEventType = "LoanReturned"

// LoanReturned records that the borrowed copy came back.
type LoanReturned struct {
	EventType  string
	LoanID     LoanIDString
	UserID     UserIDString
	OccurredAt OccurredAt
}

// BuildLoanReturned creates a new LoanReturned event.
func BuildLoanReturned(loanID LoanIDString, userID UserIDString, occurredAt time.Time) LoanReturned {
	return LoanReturned{
		EventType:  LoanReturnedEventType,
		LoanID:     loanID,
		UserID:     userID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e LoanReturned) IsEventType() string       { return LoanReturnedEventType }
func (e LoanReturned) HasOccurredAt() time.Time  { return e.OccurredAt }
func (e LoanReturned) AffectsLoan() LoanIDString { return e.LoanID }
func (e LoanReturned) AffectsUser() UserIDString { return e.UserID }
func (e LoanReturned) ResultingStatus() Status   { return StatusReturned }
