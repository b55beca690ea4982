package core

import (
	"time"
)

const day = 24 * time.Hour

// IsOverdue reports whether dueDate is set and now lies strictly after it.
// Evaluate every loan of one request against the same now.
func IsOverdue(dueDate *time.Time, now time.Time) bool {
	return dueDate != nil && now.After(*dueDate)
}

// DaysOverdue returns the whole days elapsed since dueDate, rounded down, never negative.
func DaysOverdue(dueDate *time.Time, now time.Time) int {
	if !IsOverdue(dueDate, now) {
		return 0
	}

	return int(now.Sub(*dueDate) / day)
}

// IsExtensionEligible reports whether the loan could be extended at now under policy.
func IsExtensionEligible(loan LoanRequest, now time.Time, policy ExtensionPolicy) bool {
	return loan.Status == StatusApproved &&
		IsOverdue(loan.DueDate, now) &&
		policy.Allows(loan.ExtensionCount)
}
