package loansbyuser

import (
	"slices"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

// Project builds the borrower's loan list. It keeps the order of loans.
//
// Query Logic:
//
//	GIVEN: all loans of the user
//	WHEN: LoansByUser is executed
//	THEN: the loans matching the status filter are returned
//	DETAILS: overdue, days overdue and extension eligibility are evaluated at query.Now
func Project(loans []core.LoanRequest, query Query, policy core.ExtensionPolicy) LoansByUser {
	matching := make([]core.LoanRequest, 0, len(loans))
	for _, loan := range loans {
		if len(query.Statuses) > 0 && !slices.Contains(query.Statuses, loan.Status) {
			continue
		}

		matching = append(matching, loan)
	}

	views := core.ViewsOf(matching, query.Now, policy)

	return LoansByUser{
		UserID:      query.UserID,
		Loans:       views,
		Count:       len(views),
		EvaluatedAt: query.Now,
	}
}
