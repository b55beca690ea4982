// Package loansbyuser implements the My Loans query use case.
//
// It returns every loan of one borrower, newest first, optionally narrowed to some statuses.
// Each loan is annotated with its overdue state and whether it can be extended, all evaluated against
// the single point in time carried by the query.
package loansbyuser
