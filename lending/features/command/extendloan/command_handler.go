package extendloan

import (
	"context"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

// LoanStore defines the store operations the CommandHandler needs.
type LoanStore interface {
	Get(ctx context.Context, id string) (loanstore.Record, error)
	UpdateIfStatus(
		ctx context.Context,
		id string,
		expectation loanstore.Expectation,
		patch loanstore.Patch,
	) (loanstore.Record, error)
}

// CommandHandler runs Get -> Decide -> Evolve -> UpdateIfStatus with retry.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	loanStore    LoanStore
	policy       core.ExtensionPolicy
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

// WithExtensionPolicy caps the number of extensions per loan. The default is unlimited.
func WithExtensionPolicy(policy core.ExtensionPolicy) Option {
	return func(h *CommandHandler) {
		h.policy = policy
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(loanStore LoanStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		loanStore: loanStore,
		policy:    core.UnlimitedExtensions(),
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle extends the loan. A lost compare-and-swap is retried against the fresh record.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var loan core.LoanRequest
	var event core.DomainEvent

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		extended, applied, execErr := h.executeCommand(retryCtx, command)
		loan, event = extended, applied

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), shell.MapStoreError(err)
	}

	return shell.NewSuccessResult(loan, event, retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.LoanRequest, core.DomainEvent, error) {
	ctx = loanstore.WithStrongConsistency(ctx)

	record, err := h.loanStore.Get(ctx, command.LoanID)
	if err != nil {
		return core.LoanRequest{}, nil, err
	}

	loan := shell.LoanRequestFrom(record)

	result := Decide(loan, command, h.policy)
	if decideErr := result.HasError(); decideErr != nil {
		return core.LoanRequest{}, nil, decideErr
	}

	updated, err := h.loanStore.UpdateIfStatus(
		ctx,
		record.ID,
		loanstore.ExpectationFrom(record),
		shell.PatchFrom(core.Evolve(loan, result.Event)),
	)
	if err != nil {
		return core.LoanRequest{}, nil, err
	}

	return shell.LoanRequestFrom(updated), result.Event, nil
}
