package allloans

import (
	"context"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
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
	policy    core.ExtensionPolicy
}

// Option configures a QueryHandler.
type Option func(*QueryHandler)

// WithExtensionPolicy sets the policy used to flag loans that can be extended.
func WithExtensionPolicy(policy core.ExtensionPolicy) Option {
	return func(h *QueryHandler) {
		h.policy = policy
	}
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(loanStore LoanStore, opts ...Option) QueryHandler {
	handler := QueryHandler{
		loanStore: loanStore,
		policy:    core.UnlimitedExtensions(),
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle reads the loans from the eventually consistent side of the store.
func (h QueryHandler) Handle(ctx context.Context, query Query) (AllLoans, error) {
	records, err := h.loanStore.QueryAll(loanstore.WithEventualConsistency(ctx), BuildLoanFilter(query))
	if err != nil {
		return AllLoans{}, shell.MapStoreError(err)
	}

	return Project(shell.LoanRequestsFrom(records), query, h.policy), nil
}
