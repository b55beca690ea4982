package requestgateway

import (
	"context"
	"errors"
	"strings"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/catalog"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/loansbyuser"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/loanstats"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/notificationfeed"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/notification"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell"
)

// LoanLifecycle is the part of the lifecycle service a borrower can trigger.
type LoanLifecycle interface {
	RequestLoan(
		ctx context.Context,
		userID core.UserIDString,
		bookID core.BookIDString,
		book core.BookSnapshot,
	) (shell.HandlerResult, error)
	Extend(ctx context.Context, loanID core.LoanIDString, userID core.UserIDString) (shell.HandlerResult, error)
}

// LoanViews is the read side a borrower can see.
type LoanViews interface {
	LoansByUser(ctx context.Context, userID core.UserIDString, statuses ...core.Status) (loansbyuser.LoansByUser, error)
	Stats(ctx context.Context, userID core.UserIDString) (loanstats.LoanStats, error)
	NotificationFeed(ctx context.Context, userID core.UserIDString, limit uint) (notificationfeed.Feed, error)
}

// SubmitOutcome is the answer to a loan request.
// AlreadyRequested is set instead of an error when the user already holds an active loan for the book;
// Loan is then that active loan, if it could be read.
type SubmitOutcome struct {
	Loan             core.LoanRequest
	AlreadyRequested bool
}

// Gateway serves borrowers.
type Gateway struct {
	lifecycle LoanLifecycle
	views     LoanViews
	catalog   catalog.SnapshotProvider
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

// NewGateway creates a Gateway. The catalog lookup is wrapped so that it can never fail a request.
func NewGateway(lifecycle LoanLifecycle, views LoanViews, books catalog.SnapshotProvider, opts ...Option) *Gateway {
	gateway := &Gateway{
		lifecycle: lifecycle,
		views:     views,
	}

	for _, opt := range opts {
		opt(gateway)
	}

	if books == nil {
		books = catalog.StaticProvider{}
	}

	gateway.catalog = catalog.WithFallback(books, gateway.logger)

	return gateway
}

// SubmitLoanRequest creates a pending loan for the actor.
func (g *Gateway) SubmitLoanRequest(ctx context.Context, actor core.Actor, bookID core.BookIDString) (SubmitOutcome, error) {
	if err := actor.RequireIdentity(); err != nil {
		return SubmitOutcome{}, err
	}

	if strings.TrimSpace(bookID) == "" {
		return SubmitOutcome{}, core.InvalidArgumentError("book id is required")
	}

	snapshot, _ := g.catalog.GetBookSnapshot(ctx, bookID)

	result, err := g.lifecycle.RequestLoan(ctx, actor.UserID, bookID, snapshot)
	if errors.Is(err, core.ErrDuplicateActiveLoan) {
		return SubmitOutcome{Loan: g.activeLoanFor(ctx, actor.UserID, bookID), AlreadyRequested: true}, nil
	}

	if err != nil {
		return SubmitOutcome{}, err
	}

	notification.EmitTransition(ctx, g.emitter, g.logger, result)

	return SubmitOutcome{Loan: result.Loan}, nil
}

// activeLoanFor returns the active loan blocking a new request, or the zero value if it cannot be read.
func (g *Gateway) activeLoanFor(ctx context.Context, userID core.UserIDString, bookID core.BookIDString) core.LoanRequest {
	loans, err := g.views.LoansByUser(ctx, userID, core.StatusPending, core.StatusApproved)
	if err != nil {
		return core.LoanRequest{}
	}

	for _, view := range loans.Loans {
		if view.Loan.BookID == bookID {
			return view.Loan
		}
	}

	return core.LoanRequest{}
}

// ListMyLoans returns the actor's loans, annotated with their overdue state.
func (g *Gateway) ListMyLoans(
	ctx context.Context,
	actor core.Actor,
	statuses ...core.Status,
) (loansbyuser.LoansByUser, error) {

	if err := actor.RequireIdentity(); err != nil {
		return loansbyuser.LoansByUser{}, err
	}

	return g.views.LoansByUser(ctx, actor.UserID, statuses...)
}

// RequestExtension extends an overdue loan of the actor.
func (g *Gateway) RequestExtension(ctx context.Context, actor core.Actor, loanID core.LoanIDString) (core.LoanRequest, error) {
	if err := actor.RequireIdentity(); err != nil {
		return core.LoanRequest{}, err
	}

	result, err := g.lifecycle.Extend(ctx, loanID, actor.UserID)
	if err != nil {
		return core.LoanRequest{}, err
	}

	notification.EmitTransition(ctx, g.emitter, g.logger, result)

	return result.Loan, nil
}

// MyStats returns the reading statistics of the actor.
func (g *Gateway) MyStats(ctx context.Context, actor core.Actor) (loanstats.LoanStats, error) {
	if err := actor.RequireIdentity(); err != nil {
		return loanstats.LoanStats{}, err
	}

	return g.views.Stats(ctx, actor.UserID)
}

// NotificationFeed returns the latest notifications of the actor. A limit of zero uses the default.
func (g *Gateway) NotificationFeed(ctx context.Context, actor core.Actor, limit uint) (notificationfeed.Feed, error) {
	if err := actor.RequireIdentity(); err != nil {
		return notificationfeed.Feed{}, err
	}

	return g.views.NotificationFeed(ctx, actor.UserID, limit)
}
