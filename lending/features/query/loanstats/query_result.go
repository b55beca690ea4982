package loanstats

import (
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

// LoanStats holds the counters.
// LoansApproved counts every loan that was ever handed out, i.e. approved plus returned.
type LoanStats struct {
	UserID        core.UserIDString
	Total         int
	Pending       int
	Approved      int
	Rejected      int
	Returned      int
	Overdue       int
	LoansApproved int
	EvaluatedAt   time.Time
}
