// Package rejectloan implements the Reject Loan use case.
//
// An administrator denies a pending loan request, optionally giving a reason that is stored as the loan's
// notes. Rejected loans are terminal and no longer block a new request for the same book.
package rejectloan
