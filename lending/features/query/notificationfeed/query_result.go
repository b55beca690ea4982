package notificationfeed

import (
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

// FeedItem is one rendered notification.
type FeedItem struct {
	Type      string
	LoanID    core.LoanIDString
	Status    core.Status
	Title     string
	Message   string
	Timestamp time.Time
}

// Feed is the projection returned by the query.
type Feed struct {
	UserID core.UserIDString
	Items  []FeedItem
}
