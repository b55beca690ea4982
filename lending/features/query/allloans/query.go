package allloans

import (
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

const (
	queryType = "AllLoans"
)

// Query asks for loans across all users.
// An empty Statuses matches every status; a Limit of zero means no limit.
type Query struct {
	Statuses    []core.Status
	OverdueOnly bool
	Limit       uint
	Now         time.Time
}

// QueryType returns the type identifier for this query, used for observability.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query.
func BuildQuery(now time.Time, overdueOnly bool, limit uint, statuses ...core.Status) Query {
	return Query{
		Statuses:    statuses,
		OverdueOnly: overdueOnly,
		Limit:       limit,
		Now:         now.UTC(),
	}
}
