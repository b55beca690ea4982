// Package shell is the imperative shell around the loan lifecycle core.
//
// It translates between core.LoanRequest and the loanstore.Record persisted by the store engines,
// maps store failures onto the typed core failures, retries compare-and-swap conflicts with
// exponential backoff, generates loan IDs, and provides the observability helpers used by the
// observable wrappers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
