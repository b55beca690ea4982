package lifecycle

import (
	"context"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/command/approveloan"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/command/extendloan"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/command/markreturned"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/command/rejectloan"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/command/requestloan"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell/observable"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

// LoanStore is the union of what the lifecycle command handlers need.
type LoanStore interface {
	InsertIfAbsent(ctx context.Context, record loanstore.Record) (loanstore.Record, error)
	UpdateIfStatus(
		ctx context.Context,
		id string,
		expected loanstore.Expectation,
		patch loanstore.Patch,
	) (loanstore.Record, error)
	Get(ctx context.Context, id string) (loanstore.Record, error)
}

// Service exposes the five lifecycle operations of a loan request.
type Service struct {
	loanStore    LoanStore
	clock        shell.Clock
	policy       core.ExtensionPolicy
	idGenerator  shell.IDGenerator
	retryOptions []shell.RetryOption
	obsConfig    ObservabilityConfig

	requestLoan  shell.CommandHandler[requestloan.Command]
	approveLoan  shell.CommandHandler[approveloan.Command]
	rejectLoan   shell.CommandHandler[rejectloan.Command]
	markReturned shell.CommandHandler[markreturned.Command]
	extendLoan   shell.CommandHandler[extendloan.Command]
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the system clock.
func WithClock(clock shell.Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithExtensionPolicy caps the number of extensions per loan.
func WithExtensionPolicy(policy core.ExtensionPolicy) Option {
	return func(s *Service) {
		s.policy = policy
	}
}

// WithIDGenerator replaces the ULID generator for new loans.
func WithIDGenerator(generator shell.IDGenerator) Option {
	return func(s *Service) {
		s.idGenerator = generator
	}
}

// WithRetryOptions configures the retry behavior of all command handlers.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(s *Service) {
		s.retryOptions = opts
	}
}

// WithObservability decorates all handlers with the given collectors.
func WithObservability(obsConfig ObservabilityConfig) Option {
	return func(s *Service) {
		s.obsConfig = obsConfig
	}
}

// NewService builds and wraps the command handlers.
func NewService(loanStore LoanStore, opts ...Option) (*Service, error) {
	service := &Service{
		loanStore:   loanStore,
		clock:       shell.SystemClock(),
		policy:      core.UnlimitedExtensions(),
		idGenerator: shell.NewULIDGenerator(),
	}

	for _, opt := range opts {
		opt(service)
	}

	var err error

	service.requestLoan, err = observable.NewCommandWrapper[requestloan.Command](
		requestloan.NewCommandHandler(
			loanStore,
			requestloan.WithIDGenerator(service.idGenerator),
			requestloan.WithRetryOptions(service.retryOptionsFor(requestloan.Command{})...),
		),
		buildCommandOptions[requestloan.Command](service.obsConfig)...,
	)
	if err != nil {
		return nil, err
	}

	service.approveLoan, err = observable.NewCommandWrapper[approveloan.Command](
		approveloan.NewCommandHandler(
			loanStore,
			approveloan.WithRetryOptions(service.retryOptionsFor(approveloan.Command{})...),
		),
		buildCommandOptions[approveloan.Command](service.obsConfig)...,
	)
	if err != nil {
		return nil, err
	}

	service.rejectLoan, err = observable.NewCommandWrapper[rejectloan.Command](
		rejectloan.NewCommandHandler(
			loanStore,
			rejectloan.WithRetryOptions(service.retryOptionsFor(rejectloan.Command{})...),
		),
		buildCommandOptions[rejectloan.Command](service.obsConfig)...,
	)
	if err != nil {
		return nil, err
	}

	service.markReturned, err = observable.NewCommandWrapper[markreturned.Command](
		markreturned.NewCommandHandler(
			loanStore,
			markreturned.WithRetryOptions(service.retryOptionsFor(markreturned.Command{})...),
		),
		buildCommandOptions[markreturned.Command](service.obsConfig)...,
	)
	if err != nil {
		return nil, err
	}

	service.extendLoan, err = observable.NewCommandWrapper[extendloan.Command](
		extendloan.NewCommandHandler(
			loanStore,
			extendloan.WithExtensionPolicy(service.policy),
			extendloan.WithRetryOptions(service.retryOptionsFor(extendloan.Command{})...),
		),
		buildCommandOptions[extendloan.Command](service.obsConfig)...,
	)
	if err != nil {
		return nil, err
	}

	return service, nil
}

func (s *Service) retryOptionsFor(command shell.Command) []shell.RetryOption {
	return retryOptionsFor(command.CommandType(), s.retryOptions, s.obsConfig)
}

// ExtensionPolicy returns the configured extension cap.
func (s *Service) ExtensionPolicy() core.ExtensionPolicy {
	return s.policy
}

// Now reads the configured clock.
func (s *Service) Now() core.OccurredAt {
	return core.ToOccurredAt(s.clock())
}

// RequestLoan creates a pending loan for userID and bookID.
func (s *Service) RequestLoan(
	ctx context.Context,
	userID core.UserIDString,
	bookID core.BookIDString,
	book core.BookSnapshot,
) (shell.HandlerResult, error) {

	return s.requestLoan.Handle(ctx, requestloan.BuildCommand(userID, bookID, book, s.clock()))
}

// Approve moves a pending loan to approved and sets its due date.
func (s *Service) Approve(ctx context.Context, loanID core.LoanIDString, adminID core.UserIDString) (shell.HandlerResult, error) {
	return s.approveLoan.Handle(ctx, approveloan.BuildCommand(loanID, adminID, s.clock()))
}

// Reject moves a pending loan to rejected. A blank reason is replaced by the default reason.
func (s *Service) Reject(
	ctx context.Context,
	loanID core.LoanIDString,
	adminID core.UserIDString,
	reason string,
) (shell.HandlerResult, error) {

	return s.rejectLoan.Handle(ctx, rejectloan.BuildCommand(loanID, adminID, reason, s.clock()))
}

// MarkReturned moves an approved loan to returned.
func (s *Service) MarkReturned(ctx context.Context, loanID core.LoanIDString) (shell.HandlerResult, error) {
	return s.markReturned.Handle(ctx, markreturned.BuildCommand(loanID, s.clock()))
}

// Extend pushes the due date of an overdue loan owned by userID.
func (s *Service) Extend(ctx context.Context, loanID core.LoanIDString, userID core.UserIDString) (shell.HandlerResult, error) {
	return s.extendLoan.Handle(ctx, extendloan.BuildCommand(loanID, userID, s.clock()))
}

// Get reads one loan with strong consistency.
func (s *Service) Get(ctx context.Context, loanID core.LoanIDString) (core.LoanRequest, error) {
	record, err := s.loanStore.Get(loanstore.WithStrongConsistency(ctx), loanID)
	if err != nil {
		return core.LoanRequest{}, shell.MapStoreError(err)
	}

	return shell.LoanRequestFrom(record), nil
}
