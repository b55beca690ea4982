package requestloan

import (
	"context"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

// LoanStore defines the store operations the CommandHandler needs.
type LoanStore interface {
	InsertIfAbsent(ctx context.Context, record loanstore.Record) (loanstore.Record, error)
}

// CommandHandler runs Decide -> Evolve -> InsertIfAbsent.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	loanStore    LoanStore
	idGenerator  shell.IDGenerator
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithIDGenerator replaces the default ULID generator.
func WithIDGenerator(generator shell.IDGenerator) Option {
	return func(h *CommandHandler) {
		h.idGenerator = generator
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(loanStore LoanStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		loanStore:   loanStore,
		idGenerator: shell.NewULIDGenerator(),
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle creates the pending loan.
//
// The loan id is generated once, so a retried insert can never create a second loan.
// A conflicting active loan surfaces as core.ErrDuplicateActiveLoan.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	loanID := h.idGenerator.NewID()

	var loan core.LoanRequest
	var event core.DomainEvent

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		created, applied, execErr := h.executeCommand(retryCtx, loanID, command)
		loan, event = created, applied

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), shell.MapStoreError(err)
	}

	return shell.NewSuccessResult(loan, event, retryMetrics), nil
}

func (h CommandHandler) executeCommand(
	ctx context.Context,
	loanID core.LoanIDString,
	command Command,
) (core.LoanRequest, core.DomainEvent, error) {

	ctx = loanstore.WithStrongConsistency(ctx)

	result := Decide(loanID, command)
	if err := result.HasError(); err != nil {
		return core.LoanRequest{}, nil, err
	}

	loan := core.Evolve(core.LoanRequest{}, result.Event)

	record, err := shell.NewRecordFrom(loan)
	if err != nil {
		return core.LoanRequest{}, nil, err
	}

	inserted, err := h.loanStore.InsertIfAbsent(ctx, record)
	if err != nil {
		return core.LoanRequest{}, nil, err
	}

	return shell.LoanRequestFrom(inserted), result.Event, nil
}
