package loanstore

import (
	"errors"
	"time"
)

// ErrInvalidRecord is returned when a Record is built from incomplete identity data or an unknown status.
var ErrInvalidRecord = errors.New("invalid loan record")

// Status is the persisted lifecycle state of a loan request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusReturned Status = "returned"
)

// ActiveStatuses returns the statuses that block another request for the same user and book.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusApproved}
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusReturned:
		return true
	default:
		return false
	}
}

// IsActive reports whether s is pending or approved.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusApproved
}

// Record is a DTO (data transfer object) used by the stores to persist loan requests and read them back.
//
// It is built on scalars to stay agnostic of the domain model in the client code.
// Nullable columns are represented as pointers.
//
// While its properties are exported, new records should only be constructed with BuildRecord.
type Record struct {
	ID             string
	UserID         string
	BookID         string
	BookTitle      string
	BookAuthors    []string
	BookImage      string
	Status         Status
	RequestedAt    time.Time
	RespondedAt    *time.Time
	RespondedBy    *string
	DueDate        *time.Time
	ReturnedAt     *time.Time
	Notes          *string
	ExtensionCount int
	Revision       RevisionUint
}

// Records is an alias type for a slice of Record.
type Records = []Record

// BuildRecord is a factory method for a new pending Record with revision 1.
//
// Returns ErrInvalidRecord if one of the identity fields is empty.
func BuildRecord(
	id string,
	userID string,
	bookID string,
	bookTitle string,
	bookAuthors []string,
	bookImage string,
	requestedAt time.Time,
) (Record, error) {
	if id == "" || userID == "" || bookID == "" {
		return Record{}, ErrInvalidRecord
	}

	authors := make([]string, len(bookAuthors))
	copy(authors, bookAuthors)

	return Record{
		ID:          id,
		UserID:      userID,
		BookID:      bookID,
		BookTitle:   bookTitle,
		BookAuthors: authors,
		BookImage:   bookImage,
		Status:      StatusPending,
		RequestedAt: requestedAt,
		Revision:    1,
	}, nil
}

// ConflictKey identifies the pair that may hold at most one active record.
type ConflictKey struct {
	UserID string
	BookID string
}

// ConflictKey returns the uniqueness key of the record.
func (r Record) ConflictKey() ConflictKey {
	return ConflictKey{UserID: r.UserID, BookID: r.BookID}
}

// Expectation is the pre-state an UpdateIfStatus call is conditioned on.
type Expectation struct {
	Status   Status
	Revision RevisionUint
}

// ExpectationFrom returns the Expectation matching the current state of the record.
func ExpectationFrom(r Record) Expectation {
	return Expectation{Status: r.Status, Revision: r.Revision}
}

// Patch carries the mutable fields of a Record. Identity fields and the book snapshot are never patched.
type Patch struct {
	Status         Status
	RespondedAt    *time.Time
	RespondedBy    *string
	DueDate        *time.Time
	ReturnedAt     *time.Time
	Notes          *string
	ExtensionCount int
}

// PatchFrom extracts the mutable fields of a record.
func PatchFrom(r Record) Patch {
	return Patch{
		Status:         r.Status,
		RespondedAt:    r.RespondedAt,
		RespondedBy:    r.RespondedBy,
		DueDate:        r.DueDate,
		ReturnedAt:     r.ReturnedAt,
		Notes:          r.Notes,
		ExtensionCount: r.ExtensionCount,
	}
}

// Applied returns a copy of the record with the patch applied and the revision incremented.
func (r Record) Applied(p Patch) Record {
	r.Status = p.Status
	r.RespondedAt = p.RespondedAt
	r.RespondedBy = p.RespondedBy
	r.DueDate = p.DueDate
	r.ReturnedAt = p.ReturnedAt
	r.Notes = p.Notes
	r.ExtensionCount = p.ExtensionCount
	r.Revision++

	return r
}
