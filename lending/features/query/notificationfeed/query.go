package notificationfeed

import (
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

const (
	queryType = "NotificationFeed"

	// DefaultLimit is the number of feed items returned when the query does not set one.
	DefaultLimit uint = 10
)

// Query asks for the notification feed of one user.
type Query struct {
	UserID core.UserIDString
	Limit  uint
}

// QueryType returns the type identifier for this query, used for observability.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query. A limit of zero falls back to DefaultLimit.
func BuildQuery(userID core.UserIDString, limit uint) Query {
	if limit == 0 {
		limit = DefaultLimit
	}

	return Query{
		UserID: userID,
		Limit:  limit,
	}
}
