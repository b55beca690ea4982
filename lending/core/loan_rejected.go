package core

import (
	"strings"
	"time"
)

// LoanRejectedEventType is the event type identifier.
const LoanRejectedEventType = "LoanRejected"

// LoanRejected records that an administrator denied a pending request.
type LoanRejected struct {
	EventType  string
	LoanID     LoanIDString
	UserID     UserIDString
	RejectedBy UserIDString
	Reason     string
	OccurredAt OccurredAt
}

// BuildLoanRejected creates a new LoanRejected event.
// A blank reason is replaced with DefaultRejectionReason.
func BuildLoanRejected(
	loanID LoanIDString,
	userID UserIDString,
	rejectedBy UserIDString,
	reason string,
	occurredAt time.Time,
) LoanRejected {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultRejectionReason
	}

	return LoanRejected{
		EventType:  LoanRejectedEventType,
		LoanID:     loanID,
		UserID:     userID,
		RejectedBy: rejectedBy,
		Reason:     reason,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e LoanRejected) IsEventType() string       { return LoanRejectedEventType }
func (e LoanRejected) HasOccurredAt() time.Time  { return e.OccurredAt }
func (e LoanRejected) AffectsLoan() LoanIDString { return e.LoanID }
func (e LoanRejected) AffectsUser() UserIDString { return e.UserID }
func (e LoanRejected) ResultingStatus() Status   { return StatusRejected }
