package notification

import (
	"fmt"
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

// Event is one committed transition of a loan, addressed to the borrower.
type Event struct {
	EventType string
	LoanID    core.LoanIDString
	UserID    core.UserIDString
	BookTitle string
	NewStatus core.Status
	Timestamp time.Time
	Notes     *string
}

// Rendered is the human readable form of an Event.
type Rendered struct {
	Title   string
	Message string
}

// EventFrom builds the notification for a transition that produced loan.
func EventFrom(loan core.LoanRequest, event core.DomainEvent) Event {
	var notes *string
	if loan.Notes != nil {
		n := *loan.Notes
		notes = &n
	}

	return Event{
		EventType: event.IsEventType(),
		LoanID:    loan.ID,
		UserID:    loan.UserID,
		BookTitle: loan.Book.Title,
		NewStatus: loan.Status,
		Timestamp: event.HasOccurredAt(),
		Notes:     notes,
	}
}

// Render returns the title and message for the event.
// Extensions keep the approved status, so they render as a generic update.
func (e Event) Render() Rendered {
	status := e.NewStatus
	if e.EventType == core.LoanExtendedEventType {
		status = ""
	}

	var rendered Rendered

	switch status {
	case core.StatusApproved:
		rendered = Rendered{Title: "Loan Approved", Message: "Your loan request has been approved! You can pick up the book."}
	case core.StatusRejected:
		message := "Your loan request was not approved."
		if e.Notes != nil && *e.Notes != "" {
			message = *e.Notes
		}

		rendered = Rendered{Title: "Loan Rejected", Message: message}
	case core.StatusReturned:
		rendered = Rendered{Title: "Book Returned", Message: "Book has been marked as returned."}
	default:
		rendered = Rendered{Title: "Loan Update", Message: "Status updated."}
	}

	if e.BookTitle != "" {
		rendered.Message = fmt.Sprintf("\"%s\" - %s", e.BookTitle, rendered.Message)
	}

	return rendered
}

// NotificationType is the type under which the event is stored and published, e.g. "loan_approved".
func (e Event) NotificationType() string {
	if e.EventType == core.LoanExtendedEventType {
		return "loan_extended"
	}

	return "loan_" + string(e.NewStatus)
}
