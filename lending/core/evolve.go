package core

import (
	"time"
)

// Evolve applies event to loan and returns the new state.
// LoanRequested starts a fresh loan; every other event leaves identity fields untouched.
// Unknown events return loan unchanged.
func Evolve(loan LoanRequest, event DomainEvent) LoanRequest {
	switch e := event.(type) {
	case LoanRequested:
		return LoanRequest{
			ID:     e.LoanID,
			UserID: e.UserID,
			BookID: e.BookID,
			Book: BookSnapshot{
				Title:    e.Book.Title,
				Authors:  append([]string(nil), e.Book.Authors...),
				ImageURL: e.Book.ImageURL,
			},
			Status:      StatusPending,
			RequestedAt: e.OccurredAt,
		}

	case LoanApproved:
		loan.Status = StatusApproved
		loan.RespondedAt = timePtr(e.OccurredAt)
		loan.RespondedBy = stringPtr(e.ApprovedBy)
		loan.DueDate = timePtr(e.DueDate)

	case LoanRejected:
		loan.Status = StatusRejected
		loan.RespondedAt = timePtr(e.OccurredAt)
		loan.RespondedBy = stringPtr(e.RejectedBy)
		loan.Notes = stringPtr(e.Reason)

	case LoanReturned:
		loan.Status = StatusReturned
		loan.ReturnedAt = timePtr(e.OccurredAt)

	case LoanExtended:
		loan.DueDate = timePtr(e.NewDueDate)
		loan.Notes = stringPtr(appendLine(loan.NotesText(), e.AuditNote))
		loan.ExtensionCount++
	}

	return loan
}

func appendLine(text, line string) string {
	if text == "" {
		return line
	}

	return text + "\n" + line
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func stringPtr(s string) *string {
	return &s
}
