package core

import (
	"time"
)

// LoanView is a loan annotated for display at one point in time.
// Overdue state is derived on every read and never stored.
type LoanView struct {
	Loan        LoanRequest
	Overdue     bool
	DaysOverdue int
	CanExtend   bool
}

// ViewOf annotates loan as seen at now.
func ViewOf(loan LoanRequest, now time.Time, policy ExtensionPolicy) LoanView {
	return LoanView{
		Loan:        loan,
		Overdue:     loan.IsOverdue(now),
		DaysOverdue: loan.DaysOverdue(now),
		CanExtend:   IsExtensionEligible(loan, now, policy),
	}
}

// ViewsOf annotates loans against the same now, keeping their order.
func ViewsOf(loans []LoanRequest, now time.Time, policy ExtensionPolicy) []LoanView {
	views := make([]LoanView, 0, len(loans))
	for _, loan := range loans {
		views = append(views, ViewOf(loan, now, policy))
	}

	return views
}
