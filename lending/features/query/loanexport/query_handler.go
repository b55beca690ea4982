package loanexport

import (
	"context"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

// LoanStore defines the store operations the QueryHandler needs.
type LoanStore interface {
	QueryAll(ctx context.Context, filter loanstore.Filter) (loanstore.Records, error)
}

// QueryHandler runs QueryAll -> Project -> Render.
// External wrappers handle all observability concerns.
type QueryHandler struct {
	loanStore LoanStore
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(loanStore LoanStore) QueryHandler {
	return QueryHandler{loanStore: loanStore}
}

// Handle renders the export.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Export, error) {
	builder := loanstore.BuildFilter().WithStatuses(shell.StatusesToStore(query.Statuses)...)
	if query.OverdueOnly {
		builder = builder.WithStatuses(loanstore.StatusApproved)
	}

	records, err := h.loanStore.QueryAll(loanstore.WithEventualConsistency(ctx), builder.Finalize())
	if err != nil {
		return Export{}, shell.MapStoreError(err)
	}

	return Render(Project(shell.LoanRequestsFrom(records), query), query)
}
