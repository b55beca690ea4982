package loansbyuser

import (
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

const (
	queryType = "LoansByUser"
)

// Query asks for the loans of one user. An empty Statuses matches every status.
type Query struct {
	UserID   core.UserIDString
	Statuses []core.Status
	Now      time.Time
}

// QueryType returns the type identifier for this query, used for observability.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query.
func BuildQuery(userID core.UserIDString, now time.Time, statuses ...core.Status) Query {
	return Query{
		UserID:   userID,
		Statuses: statuses,
		Now:      now.UTC(),
	}
}
