package loanstats

import (
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

// Project counts loans per status.
//
// Query Logic:
//
//	GIVEN: the loans in scope (one user or all users)
//	WHEN: LoanStats is executed
//	THEN: totals per status are returned
//	DETAILS: Overdue counts approved loans past their due date at query.Now
func Project(loans []core.LoanRequest, query Query) LoanStats {
	stats := LoanStats{
		UserID:      query.UserID,
		Total:       len(loans),
		EvaluatedAt: query.Now,
	}

	for _, loan := range loans {
		switch loan.Status {
		case core.StatusPending:
			stats.Pending++
		case core.StatusApproved:
			stats.Approved++
		case core.StatusRejected:
			stats.Rejected++
		case core.StatusReturned:
			stats.Returned++
		}

		if loan.IsOverdue(query.Now) {
			stats.Overdue++
		}
	}

	stats.LoansApproved = stats.Approved + stats.Returned

	return stats
}
