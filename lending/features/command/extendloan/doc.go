// Package extendloan implements the Extend Loan use case.
//
// A borrower whose approved loan is overdue may push the due date back by one extension period,
// counted from the current due date. Each extension appends an audit line to the loan's notes.
// How many extensions a single loan may receive is set by a core.ExtensionPolicy.
package extendloan
