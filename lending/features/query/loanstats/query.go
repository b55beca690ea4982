package loanstats

import (
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

const (
	queryType = "LoanStats"
)

// Query asks for loan counters. An empty UserID counts the loans of all users.
type Query struct {
	UserID core.UserIDString
	Now    time.Time
}

// QueryType returns the type identifier for this query, used for observability.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query.
func BuildQuery(userID core.UserIDString, now time.Time) Query {
	return Query{
		UserID: userID,
		Now:    now.UTC(),
	}
}
