package loanstats

import (
	"context"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

// LoanStore defines the store operations the QueryHandler needs.
type LoanStore interface {
	QueryAll(ctx context.Context, filter loanstore.Filter) (loanstore.Records, error)
}

// QueryHandler runs QueryAll -> Project.
// External wrappers handle all observability concerns.
type QueryHandler struct {
	loanStore LoanStore
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(loanStore LoanStore) QueryHandler {
	return QueryHandler{loanStore: loanStore}
}

// Handle counts the loans in scope.
func (h QueryHandler) Handle(ctx context.Context, query Query) (LoanStats, error) {
	filter := loanstore.BuildFilter().ForUser(query.UserID).Finalize()

	records, err := h.loanStore.QueryAll(loanstore.WithEventualConsistency(ctx), filter)
	if err != nil {
		return LoanStats{}, shell.MapStoreError(err)
	}

	return Project(shell.LoanRequestsFrom(records), query), nil
}
