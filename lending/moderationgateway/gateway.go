package moderationgateway

import (
	"context"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/allloans"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/loanexport"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/loanstats"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/notification"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell"
)

// LoanLifecycle is the part of the lifecycle service reserved for administrators.
type LoanLifecycle interface {
	Approve(ctx context.Context, loanID core.LoanIDString, adminID core.UserIDString) (shell.HandlerResult, error)
	Reject(
		ctx context.Context,
		loanID core.LoanIDString,
		adminID core.UserIDString,
		reason string,
	) (shell.HandlerResult, error)
	MarkReturned(ctx context.Context, loanID core.LoanIDString) (shell.HandlerResult, error)
}

// LoanViews is the read side across all users.
type LoanViews interface {
	AllLoans(ctx context.Context, overdueOnly bool, limit uint, statuses ...core.Status) (allloans.AllLoans, error)
	Stats(ctx context.Context, userID core.UserIDString) (loanstats.LoanStats, error)
	Export(ctx context.Context, overdueOnly bool, statuses ...core.Status) (loanexport.Export, error)
}

// ListFilter narrows ListAllLoans and ExportCSV.
type ListFilter struct {
	Statuses    []core.Status
	OverdueOnly bool
	Limit       uint
}

// Gateway serves administrators.
type Gateway struct {
	lifecycle LoanLifecycle
	views     LoanViews
	emitter   notification.Emitter
	logger    shell.ContextualLogger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithEmitter sets where notifications of committed transitions go.
func WithEmitter(emitter notification.Emitter) Option {
	return func(g *Gateway) {
		g.emitter = emitter
	}
}

// WithContextualLogger sets the logger for emission failures.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// NewGateway creates a Gateway.
func NewGateway(lifecycle LoanLifecycle, views LoanViews, opts ...Option) *Gateway {
	gateway := &Gateway{
		lifecycle: lifecycle,
		views:     views,
	}

	for _, opt := range opts {
		opt(gateway)
	}

	return gateway
}

// ListAllLoans lists the loans of all users.
func (g *Gateway) ListAllLoans(ctx context.Context, actor core.Actor, filter ListFilter) (allloans.AllLoans, error) {
	if err := actor.RequireAdmin(); err != nil {
		return allloans.AllLoans{}, err
	}

	return g.views.AllLoans(ctx, filter.OverdueOnly, filter.Limit, filter.Statuses...)
}

// ApproveRequest approves a pending loan on behalf of the actor.
func (g *Gateway) ApproveRequest(ctx context.Context, actor core.Actor, loanID core.LoanIDString) (core.LoanRequest, error) {
	if err := actor.RequireAdmin(); err != nil {
		return core.LoanRequest{}, err
	}

	return g.committed(ctx)(g.lifecycle.Approve(ctx, loanID, actor.UserID))
}

// RejectRequest rejects a pending loan on behalf of the actor.
func (g *Gateway) RejectRequest(
	ctx context.Context,
	actor core.Actor,
	loanID core.LoanIDString,
	reason string,
) (core.LoanRequest, error) {

	if err := actor.RequireAdmin(); err != nil {
		return core.LoanRequest{}, err
	}

	return g.committed(ctx)(g.lifecycle.Reject(ctx, loanID, actor.UserID, reason))
}

// MarkReturned closes an approved loan.
func (g *Gateway) MarkReturned(ctx context.Context, actor core.Actor, loanID core.LoanIDString) (core.LoanRequest, error) {
	if err := actor.RequireAdmin(); err != nil {
		return core.LoanRequest{}, err
	}

	return g.committed(ctx)(g.lifecycle.MarkReturned(ctx, loanID))
}

// Stats returns the counters of all loans.
func (g *Gateway) Stats(ctx context.Context, actor core.Actor) (loanstats.LoanStats, error) {
	if err := actor.RequireAdmin(); err != nil {
		return loanstats.LoanStats{}, err
	}

	return g.views.Stats(ctx, "")
}

// ExportCSV renders the filtered loans as CSV. The limit of the filter is ignored.
func (g *Gateway) ExportCSV(ctx context.Context, actor core.Actor, filter ListFilter) (loanexport.Export, error) {
	if err := actor.RequireAdmin(); err != nil {
		return loanexport.Export{}, err
	}

	return g.views.Export(ctx, filter.OverdueOnly, filter.Statuses...)
}

// committed emits the notification of a successful transition and unwraps the loan.
func (g *Gateway) committed(ctx context.Context) func(shell.HandlerResult, error) (core.LoanRequest, error) {
	return func(result shell.HandlerResult, err error) (core.LoanRequest, error) {
		if err != nil {
			return core.LoanRequest{}, err
		}

		notification.EmitTransition(ctx, g.emitter, g.logger, result)

		return result.Loan, nil
	}
}
