package notificationfeed

import (
	"errors"
	"slices"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/notification"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

// ErrDecodingNotificationFailed is returned when a stored notification has an unreadable payload.
var ErrDecodingNotificationFailed = errors.New("decoding stored notification failed")

// Project derives the feed from the loans of the user.
//
// Query Logic:
//
//	GIVEN: all loans of the user
//	WHEN: NotificationFeed is executed
//	THEN: one item per responded loan, latest response first, up to the limit
//	EXCLUDES: pending loans, which have no response yet
//	DETAILS: the item reflects the current status of the loan
func Project(loans []core.LoanRequest, query Query) Feed {
	responded := make([]core.LoanRequest, 0, len(loans))
	for _, loan := range loans {
		if loan.RespondedAt != nil {
			responded = append(responded, loan)
		}
	}

	slices.SortStableFunc(responded, func(a, b core.LoanRequest) int {
		return b.RespondedAt.Compare(*a.RespondedAt)
	})

	items := make([]FeedItem, 0, min(len(responded), int(query.Limit))) //nolint:gosec
	for _, loan := range responded {
		if uint(len(items)) >= query.Limit {
			break
		}

		event := notification.Event{
			LoanID:    loan.ID,
			UserID:    loan.UserID,
			BookTitle: loan.Book.Title,
			NewStatus: loan.Status,
			Timestamp: *loan.RespondedAt,
			Notes:     loan.Notes,
		}
		rendered := event.Render()

		items = append(items, FeedItem{
			Type:      event.NotificationType(),
			LoanID:    loan.ID,
			Status:    loan.Status,
			Title:     rendered.Title,
			Message:   rendered.Message,
			Timestamp: event.Timestamp,
		})
	}

	return Feed{UserID: query.UserID, Items: items}
}

// ProjectStored builds the feed from notifications that were already rendered when they were emitted.
// The input is expected newest first, as the outbox returns it.
func ProjectStored(notifications []loanstore.StorableNotification, query Query) (Feed, error) {
	items := make([]FeedItem, 0, len(notifications))

	for _, stored := range notifications {
		if uint(len(items)) >= query.Limit {
			break
		}

		var payload notification.Payload
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(stored.PayloadJSON, &payload); err != nil {
			return Feed{}, errors.Join(ErrDecodingNotificationFailed, err)
		}

		items = append(items, FeedItem{
			Type:      payload.Type,
			LoanID:    payload.LoanID,
			Status:    core.Status(payload.Status),
			Title:     payload.Title,
			Message:   payload.Message,
			Timestamp: payload.Timestamp.UTC(),
		})
	}

	return Feed{UserID: query.UserID, Items: items}, nil
}
