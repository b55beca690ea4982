package core

import (
	"time"
)

// LoanRequest is one user's attempt to borrow one catalog item.
// ID, UserID, BookID and RequestedAt never change after creation.
type LoanRequest struct {
	ID             LoanIDString
	UserID         UserIDString
	BookID         BookIDString
	Book           BookSnapshot
	Status         Status
	RequestedAt    time.Time
	RespondedAt    *time.Time
	RespondedBy    *UserIDString
	DueDate        *time.Time
	ReturnedAt     *time.Time
	Notes          *string
	ExtensionCount int
}

// IsOverdue reports whether the loan is approved and its due date lies before now.
func (l LoanRequest) IsOverdue(now time.Time) bool {
	return l.Status == StatusApproved && IsOverdue(l.DueDate, now)
}

// DaysOverdue is the number of whole days the approved loan is past its due date.
func (l LoanRequest) DaysOverdue(now time.Time) int {
	if l.Status != StatusApproved {
		return 0
	}

	return DaysOverdue(l.DueDate, now)
}

// IsOwnedBy reports whether userID requested the loan.
func (l LoanRequest) IsOwnedBy(userID UserIDString) bool {
	return l.UserID == userID
}

// NotesText returns the notes or an empty string.
func (l LoanRequest) NotesText() string {
	if l.Notes == nil {
		return ""
	}

	return *l.Notes
}
