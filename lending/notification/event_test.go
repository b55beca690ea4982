package notification_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/notification"
)

func Test_Event_Render(t *testing.T) {
	stockDamaged := "stock damaged"
	empty := ""

	testCases := []struct {
		name     string
		event    notification.Event
		expected notification.Rendered
	}{
		{
			name:     "approved",
			event:    notification.Event{NewStatus: core.StatusApproved, EventType: core.LoanApprovedEventType},
			expected: notification.Rendered{Title: "Loan Approved", Message: "Your loan request has been approved! You can pick up the book."},
		},
		{
			name:     "rejected with reason",
			event:    notification.Event{NewStatus: core.StatusRejected, Notes: &stockDamaged},
			expected: notification.Rendered{Title: "Loan Rejected", Message: "stock damaged"},
		},
		{
			name:     "rejected with empty notes",
			event:    notification.Event{NewStatus: core.StatusRejected, Notes: &empty},
			expected: notification.Rendered{Title: "Loan Rejected", Message: "Your loan request was not approved."},
		},
		{
			name:     "returned",
			event:    notification.Event{NewStatus: core.StatusReturned},
			expected: notification.Rendered{Title: "Book Returned", Message: "Book has been marked as returned."},
		},
		{
			name:     "pending",
			event:    notification.Event{NewStatus: core.StatusPending},
			expected: notification.Rendered{Title: "Loan Update", Message: "Status updated."},
		},
		{
			name:     "extended keeps approved status but is a generic update",
			event:    notification.Event{NewStatus: core.StatusApproved, EventType: core.LoanExtendedEventType},
			expected: notification.Rendered{Title: "Loan Update", Message: "Status updated."},
		},
		{
			name:     "book title prefix",
			event:    notification.Event{NewStatus: core.StatusReturned, BookTitle: "Dune"},
			expected: notification.Rendered{Title: "Book Returned", Message: `"Dune" - Book has been marked as returned.`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.event.Render())
		})
	}
}

func Test_EventFrom_TakesStateFromLoanAndTimeFromEvent(t *testing.T) {
	// arrange
	requestedAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rejectedAt := requestedAt.Add(2 * time.Hour)
	loan := core.Evolve(core.LoanRequest{}, core.BuildLoanRequested(
		"loan-2", "user-b", "b2", core.BuildBookSnapshot("Solaris", nil, ""), requestedAt,
	))
	rejected := core.BuildLoanRejected(loan.ID, loan.UserID, "admin-1", "stock damaged", rejectedAt)
	loan = core.Evolve(loan, rejected)

	// act
	event := notification.EventFrom(loan, rejected)

	// assert
	assert.Equal(t, "loan-2", event.LoanID)
	assert.Equal(t, "user-b", event.UserID)
	assert.Equal(t, "Solaris", event.BookTitle)
	assert.Equal(t, core.StatusRejected, event.NewStatus)
	assert.Equal(t, rejectedAt, event.Timestamp)
	assert.Equal(t, "stock damaged", *event.Notes)
	assert.Equal(t, "loan_rejected", event.NotificationType())
}
