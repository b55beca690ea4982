package core

import (
	"time"
)

// LoanIDString represents a loan identifier.
type LoanIDString = string

// UserIDString represents the identifier of a user (borrower or administrator).
type UserIDString = string

// BookIDString represents an external catalog reference.
type BookIDString = string

// OccurredAt represents when an event occurred.
type OccurredAt = time.Time

const (
	// LoanPeriod is the fixed time between approval and the due date.
	LoanPeriod = 14 * 24 * time.Hour

	// ExtensionPeriod is added to the current due date by each extension.
	ExtensionPeriod = 30 * 24 * time.Hour

	// DefaultRejectionReason is stored when an administrator rejects without giving a reason.
	DefaultRejectionReason = "Loan request rejected by administrator"
)

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision.
// Microseconds are what PostgreSQL keeps, so values survive a round trip unchanged.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}

// NotBefore returns t, or floor if t lies before it.
func NotBefore(t time.Time, floor time.Time) time.Time {
	if t.Before(floor) {
		return floor
	}

	return t
}
