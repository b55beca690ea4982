package allloans

import (
	"slices"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

// Project builds the administrator's loan list. It keeps the order of loans.
//
// Query Logic:
//
//	GIVEN: loans of all users
//	WHEN: AllLoans is executed
//	THEN: the loans matching the status filter are returned, up to the limit
//	EXCLUDES: loans that are not overdue at query.Now, if OverdueOnly is set
func Project(loans []core.LoanRequest, query Query, policy core.ExtensionPolicy) AllLoans {
	views := make([]core.LoanView, 0, len(loans))
	overdue := 0

	for _, loan := range loans {
		if len(query.Statuses) > 0 && !slices.Contains(query.Statuses, loan.Status) {
			continue
		}

		view := core.ViewOf(loan, query.Now, policy)
		if query.OverdueOnly && !view.Overdue {
			continue
		}

		if query.Limit > 0 && uint(len(views)) >= query.Limit {
			break
		}

		if view.Overdue {
			overdue++
		}

		views = append(views, view)
	}

	return AllLoans{
		Loans:        views,
		Count:        len(views),
		OverdueCount: overdue,
		EvaluatedAt:  query.Now,
	}
}

// BuildLoanFilter narrows the store read as far as possible without evaluating overdue state.
// Only approved loans can be overdue, and the limit can only be pushed down if no loan is dropped later.
func BuildLoanFilter(query Query) loanstore.Filter {
	builder := loanstore.BuildFilter().WithStatuses(shell.StatusesToStore(query.Statuses)...)

	if query.OverdueOnly {
		return builder.WithStatuses(loanstore.StatusApproved).Finalize()
	}

	return builder.Limit(query.Limit).Finalize()
}
