package shell

import (
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

// HandlerResult is what a command handler hands back besides the error:
// the loan after the transition, the event that caused it, and retry metadata.
type HandlerResult struct {
	// Loan is the state after the command. Zero when the command failed.
	Loan core.LoanRequest

	// Event is the applied domain event. Nil when the command failed.
	Event core.DomainEvent

	// RetryAttempts is the total number of attempts made (1 for no retries).
	RetryAttempts int

	// TotalRetryDelay is the time spent sleeping between attempts.
	TotalRetryDelay time.Duration

	// LastErrorType is the label of the last error seen, "none" on success.
	LastErrorType string

	// RetriesExhausted is true when every attempt ended in a concurrency conflict.
	RetriesExhausted bool
}

// NewSuccessResult creates a HandlerResult for a committed transition.
func NewSuccessResult(loan core.LoanRequest, event core.DomainEvent, retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		Loan:             loan,
		Event:            event,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

// NewErrorResult creates a HandlerResult for a failed command, keeping the retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

// HasEvent reports whether a transition was committed.
func (r HandlerResult) HasEvent() bool {
	return r.Event != nil
}
