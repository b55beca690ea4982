// Package loanexport implements the Export Loans query use case.
//
// It renders a filtered list of loans as CSV for administrators. Dates are written as YYYY-MM-DD
// and left empty when unset; the overdue column is evaluated at the point in time carried by the query.
package loanexport
