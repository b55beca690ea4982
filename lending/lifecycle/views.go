package lifecycle

import (
	"context"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/allloans"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/loanexport"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/loansbyuser"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/loanstats"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/notificationfeed"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell/observable"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

// LoanReader is what the read-side handlers need.
type LoanReader interface {
	QueryByUser(ctx context.Context, userID string) (loanstore.Records, error)
	QueryAll(ctx context.Context, filter loanstore.Filter) (loanstore.Records, error)
}

// Views exposes the read side. Every query is evaluated against one now taken from the clock.
type Views struct {
	clock shell.Clock

	loansByUser      shell.QueryHandler[loansbyuser.Query, loansbyuser.LoansByUser]
	allLoans         shell.QueryHandler[allloans.Query, allloans.AllLoans]
	loanStats        shell.QueryHandler[loanstats.Query, loanstats.LoanStats]
	loanExport       shell.QueryHandler[loanexport.Query, loanexport.Export]
	notificationFeed shell.QueryHandler[notificationfeed.Query, notificationfeed.Feed]
}

// ViewsOption configures Views.
type ViewsOption func(*viewsConfig)

type viewsConfig struct {
	clock        shell.Clock
	policy       core.ExtensionPolicy
	outboxReader notificationfeed.OutboxReader
	obsConfig    ObservabilityConfig
}

// WithViewsClock replaces the system clock.
func WithViewsClock(clock shell.Clock) ViewsOption {
	return func(c *viewsConfig) {
		c.clock = clock
	}
}

// WithViewsExtensionPolicy sets the policy used to flag extendable loans.
func WithViewsExtensionPolicy(policy core.ExtensionPolicy) ViewsOption {
	return func(c *viewsConfig) {
		c.policy = policy
	}
}

// WithNotificationOutbox makes the notification feed read stored notifications.
func WithNotificationOutbox(reader notificationfeed.OutboxReader) ViewsOption {
	return func(c *viewsConfig) {
		c.outboxReader = reader
	}
}

// WithViewsObservability decorates all query handlers with the given collectors.
func WithViewsObservability(obsConfig ObservabilityConfig) ViewsOption {
	return func(c *viewsConfig) {
		c.obsConfig = obsConfig
	}
}

// NewViews builds and wraps the query handlers.
func NewViews(loanReader LoanReader, opts ...ViewsOption) (*Views, error) {
	cfg := viewsConfig{
		clock:  shell.SystemClock(),
		policy: core.UnlimitedExtensions(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	views := &Views{clock: cfg.clock}

	var err error

	views.loansByUser, err = observable.NewQueryWrapper[loansbyuser.Query, loansbyuser.LoansByUser](
		loansbyuser.NewQueryHandler(loanReader, loansbyuser.WithExtensionPolicy(cfg.policy)),
		buildQueryOptions[loansbyuser.Query, loansbyuser.LoansByUser](cfg.obsConfig)...,
	)
	if err != nil {
		return nil, err
	}

	views.allLoans, err = observable.NewQueryWrapper[allloans.Query, allloans.AllLoans](
		allloans.NewQueryHandler(loanReader, allloans.WithExtensionPolicy(cfg.policy)),
		buildQueryOptions[allloans.Query, allloans.AllLoans](cfg.obsConfig)...,
	)
	if err != nil {
		return nil, err
	}

	views.loanStats, err = observable.NewQueryWrapper[loanstats.Query, loanstats.LoanStats](
		loanstats.NewQueryHandler(loanReader),
		buildQueryOptions[loanstats.Query, loanstats.LoanStats](cfg.obsConfig)...,
	)
	if err != nil {
		return nil, err
	}

	views.loanExport, err = observable.NewQueryWrapper[loanexport.Query, loanexport.Export](
		loanexport.NewQueryHandler(loanReader),
		buildQueryOptions[loanexport.Query, loanexport.Export](cfg.obsConfig)...,
	)
	if err != nil {
		return nil, err
	}

	var feedOptions []notificationfeed.Option
	if cfg.outboxReader != nil {
		feedOptions = append(feedOptions, notificationfeed.WithOutboxReader(cfg.outboxReader))
	}

	views.notificationFeed, err = observable.NewQueryWrapper[notificationfeed.Query, notificationfeed.Feed](
		notificationfeed.NewQueryHandler(loanReader, feedOptions...),
		buildQueryOptions[notificationfeed.Query, notificationfeed.Feed](cfg.obsConfig)...,
	)
	if err != nil {
		return nil, err
	}

	return views, nil
}

// LoansByUser lists the loans of one user, optionally narrowed to some statuses.
func (v *Views) LoansByUser(
	ctx context.Context,
	userID core.UserIDString,
	statuses ...core.Status,
) (loansbyuser.LoansByUser, error) {

	return v.loansByUser.Handle(ctx, loansbyuser.BuildQuery(userID, v.clock(), statuses...))
}

// AllLoans lists the loans of all users.
func (v *Views) AllLoans(
	ctx context.Context,
	overdueOnly bool,
	limit uint,
	statuses ...core.Status,
) (allloans.AllLoans, error) {

	return v.allLoans.Handle(ctx, allloans.BuildQuery(v.clock(), overdueOnly, limit, statuses...))
}

// Stats counts the loans of userID, or of all users if userID is empty.
func (v *Views) Stats(ctx context.Context, userID core.UserIDString) (loanstats.LoanStats, error) {
	return v.loanStats.Handle(ctx, loanstats.BuildQuery(userID, v.clock()))
}

// Export renders the filtered loans as CSV.
func (v *Views) Export(ctx context.Context, overdueOnly bool, statuses ...core.Status) (loanexport.Export, error) {
	return v.loanExport.Handle(ctx, loanexport.BuildQuery(v.clock(), overdueOnly, statuses...))
}

// NotificationFeed returns the latest notifications of userID.
func (v *Views) NotificationFeed(
	ctx context.Context,
	userID core.UserIDString,
	limit uint,
) (notificationfeed.Feed, error) {

	return v.notificationFeed.Handle(ctx, notificationfeed.BuildQuery(userID, limit))
}
