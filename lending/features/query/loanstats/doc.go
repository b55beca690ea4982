// Package loanstats implements the Loan Statistics query use case.
//
// Without a user it returns the library wide counters of the administrator dashboard.
// With a user it returns the borrower's reading statistics. Overdue loans are counted at one point in time.
package loanstats
