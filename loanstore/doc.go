// Package loanstore provides the storage contract and core types for persisting loan requests.
//
// This package defines the types shared by the different LoanRecordStore implementations
// (PostgreSQL, in-memory): the persisted Record, its Status, the Patch applied on a transition,
// the Expectation a compare-and-swap is conditioned on, the Filter for list queries,
// StorableNotification for the notification outbox, and the common error definitions.
//
// Correctness under concurrent actors rests on two atomic primitives every engine provides:
//   - InsertIfAbsent: insert a record unless an active (pending or approved) record exists
//     for the same user and book
//   - UpdateIfStatus: apply a patch only if the record still has the expected status and revision
//
// Common usage pattern:
//
//	record, err := store.InsertIfAbsent(ctx, newRecord)
//	if errors.Is(err, loanstore.ErrActiveLoanExists) {
//		// the user already has a pending or approved request for this book
//	}
//
//	expectation := loanstore.ExpectationFrom(record)
//	updated, err := store.UpdateIfStatus(ctx, record.ID, expectation, patch)
//	if errors.Is(err, loanstore.ErrConcurrencyConflict) {
//		// somebody else changed the record in between, re-read and decide again
//	}
package loanstore
