package core

import (
	"time"
)

// LoanRequestedEventType is the event type identifier.
const LoanRequestedEventType = "LoanRequested"

// LoanRequested records that a user asked to borrow a book.
type LoanRequested struct {
	EventType  string
	LoanID     LoanIDString
	UserID     UserIDString
	BookID     BookIDString
	Book       BookSnapshot
	OccurredAt OccurredAt
}

// BuildLoanRequested creates a new LoanRequested event.
func BuildLoanRequested(
	loanID LoanIDString,
	userID UserIDString,
	bookID BookIDString,
	book BookSnapshot,
	occurredAt time.Time,
) LoanRequested {
	return LoanRequested{
		EventType:  LoanRequestedEventType,
		LoanID:     loanID,
		UserID:     userID,
		BookID:     bookID,
		Book:       book,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e LoanRequested) IsEventType() string       { return LoanRequestedEventType }
func (e LoanRequested) HasOccurredAt() time.Time  { return e.OccurredAt }
func (e LoanRequested) AffectsLoan() LoanIDString { return e.LoanID }
func (e LoanRequested) AffectsUser() UserIDString { return e.UserID }
func (e LoanRequested) ResultingStatus() Status   { return StatusPending }
