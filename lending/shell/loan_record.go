package shell

import (
	"errors"
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

// ErrMappingToRecordFailed is returned when a LoanRequest cannot be turned into a store record.
var ErrMappingToRecordFailed = errors.New("mapping loan to store record failed")

// LoanRequestFrom converts a persisted record into the domain entity.
func LoanRequestFrom(record loanstore.Record) core.LoanRequest {
	return core.LoanRequest{
		ID:     record.ID,
		UserID: record.UserID,
		BookID: record.BookID,
		Book: core.BookSnapshot{
			Title:    record.BookTitle,
			Authors:  append([]string(nil), record.BookAuthors...),
			ImageURL: record.BookImage,
		},
		Status:         core.Status(record.Status),
		RequestedAt:    record.RequestedAt,
		RespondedAt:    copyTime(record.RespondedAt),
		RespondedBy:    copyString(record.RespondedBy),
		DueDate:        copyTime(record.DueDate),
		ReturnedAt:     copyTime(record.ReturnedAt),
		Notes:          copyString(record.Notes),
		ExtensionCount: record.ExtensionCount,
	}
}

// LoanRequestsFrom converts a slice of records, keeping the order.
func LoanRequestsFrom(records loanstore.Records) []core.LoanRequest {
	loans := make([]core.LoanRequest, 0, len(records))
	for _, record := range records {
		loans = append(loans, LoanRequestFrom(record))
	}

	return loans
}

// NewRecordFrom builds the record inserted for a freshly requested loan.
func NewRecordFrom(loan core.LoanRequest) (loanstore.Record, error) {
	record, err := loanstore.BuildRecord(
		loan.ID,
		loan.UserID,
		loan.BookID,
		loan.Book.Title,
		loan.Book.Authors,
		loan.Book.ImageURL,
		loan.RequestedAt,
	)
	if err != nil {
		return loanstore.Record{}, errors.Join(ErrMappingToRecordFailed, err)
	}

	return record, nil
}

// PatchFrom returns the store patch that moves a record to the mutable state of loan.
func PatchFrom(loan core.LoanRequest) loanstore.Patch {
	return loanstore.Patch{
		Status:         loanstore.Status(loan.Status),
		RespondedAt:    copyTime(loan.RespondedAt),
		RespondedBy:    copyString(loan.RespondedBy),
		DueDate:        copyTime(loan.DueDate),
		ReturnedAt:     copyTime(loan.ReturnedAt),
		Notes:          copyString(loan.Notes),
		ExtensionCount: loan.ExtensionCount,
	}
}

// StatusesToStore converts domain statuses for use in a loanstore.Filter.
func StatusesToStore(statuses []core.Status) []loanstore.Status {
	converted := make([]loanstore.Status, 0, len(statuses))
	for _, status := range statuses {
		converted = append(converted, loanstore.Status(status))
	}

	return converted
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	c := *t

	return &c
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}

	c := *s

	return &c
}
