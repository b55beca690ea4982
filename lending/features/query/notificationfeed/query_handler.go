package notificationfeed

import (
	"context"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

// LoanStore defines the store operations the QueryHandler needs.
type LoanStore interface {
	QueryByUser(ctx context.Context, userID string) (loanstore.Records, error)
}

// OutboxReader reads stored notifications of one user, newest first.
type OutboxReader interface {
	QueryForUser(ctx context.Context, userID string, limit uint) ([]loanstore.StorableNotification, error)
}

// QueryHandler runs QueryByUser -> Project, or QueryForUser -> ProjectStored if an OutboxReader is configured.
// External wrappers handle all observability concerns.
type QueryHandler struct {
	loanStore    LoanStore
	outboxReader OutboxReader
}

// Option configures a QueryHandler.
type Option func(*QueryHandler)

// WithOutboxReader makes the handler read the stored notifications instead of deriving them from loans.
func WithOutboxReader(reader OutboxReader) Option {
	return func(h *QueryHandler) {
		h.outboxReader = reader
	}
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(loanStore LoanStore, opts ...Option) QueryHandler {
	handler := QueryHandler{loanStore: loanStore}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle returns the feed of the user.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Feed, error) {
	if query.UserID == "" {
		return Feed{}, core.InvalidArgumentError("user id is required")
	}

	if query.Limit == 0 {
		query.Limit = DefaultLimit
	}

	ctx = loanstore.WithEventualConsistency(ctx)

	if h.outboxReader != nil {
		notifications, err := h.outboxReader.QueryForUser(ctx, query.UserID, query.Limit)
		if err != nil {
			return Feed{}, shell.MapStoreError(err)
		}

		return ProjectStored(notifications, query)
	}

	records, err := h.loanStore.QueryByUser(ctx, query.UserID)
	if err != nil {
		return Feed{}, shell.MapStoreError(err)
	}

	return Project(shell.LoanRequestsFrom(records), query), nil
}
