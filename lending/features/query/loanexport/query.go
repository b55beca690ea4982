package loanexport

import (
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

const (
	queryType = "LoanExport"
)

// Query asks for a CSV export. An empty Statuses matches every status.
type Query struct {
	Statuses    []core.Status
	OverdueOnly bool
	Now         time.Time
}

// QueryType returns the type identifier for this query, used for observability.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query.
func BuildQuery(now time.Time, overdueOnly bool, statuses ...core.Status) Query {
	return Query{
		Statuses:    statuses,
		OverdueOnly: overdueOnly,
		Now:         now.UTC(),
	}
}
