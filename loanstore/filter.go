package loanstore

import (
	"slices"
	"time"
)

type FilterUserIDString = string
type FilterBookIDString = string

/***** Filter *****/

// Filter narrows QueryAll results. The zero value matches every loan record.
type Filter struct {
	statuses      []Status
	userID        FilterUserIDString
	bookID        FilterBookIDString
	requestedFrom time.Time
	requestedTo   time.Time
	limit         uint
}

func (f Filter) Statuses() []Status {
	return f.statuses
}

func (f Filter) UserID() FilterUserIDString {
	return f.userID
}

func (f Filter) BookID() FilterBookIDString {
	return f.bookID
}

func (f Filter) RequestedFrom() time.Time {
	return f.requestedFrom
}

func (f Filter) RequestedUntil() time.Time {
	return f.requestedTo
}

func (f Filter) Limit() uint {
	return f.limit
}

// Matches reports whether the record satisfies all criteria of the filter.
// Engines that cannot push the filter down to a query language use it directly.
func (f Filter) Matches(r Record) bool {
	if len(f.statuses) > 0 && !slices.Contains(f.statuses, r.Status) {
		return false
	}

	if f.userID != "" && r.UserID != f.userID {
		return false
	}

	if f.bookID != "" && r.BookID != f.bookID {
		return false
	}

	if !f.requestedFrom.IsZero() && r.RequestedAt.Before(f.requestedFrom) {
		return false
	}

	if !f.requestedTo.IsZero() && r.RequestedAt.After(f.requestedTo) {
		return false
	}

	return true
}

/***** FilterBuilder *****/

// FilterBuilder builds a generic loan record filter to be used in store-specific implementations to build queries
// for the specific query language.
//
// All criteria are combined with AND, multiple statuses with OR:
//
//   - empty filter
//   - (status OR status...)
//   - (status OR status...) AND user
//   - (status OR status...) AND user AND book AND requested range
type FilterBuilder interface {
	// WithStatuses restricts the filter to one or multiple statuses.
	//
	// It sanitizes the input:
	//	- removing unknown statuses
	//	- sorting the statuses
	//	- removing duplicate statuses
	WithStatuses(statuses ...Status) FilterBuilder

	// ForUser restricts the filter to the records of one user. An empty userID is ignored.
	ForUser(userID FilterUserIDString) FilterBuilder

	// ForBook restricts the filter to the records of one book. An empty bookID is ignored.
	ForBook(bookID FilterBookIDString) FilterBuilder

	// RequestedFrom sets the lower bound (inclusive) for RequestedAt.
	RequestedFrom(from time.Time) FilterBuilder

	// RequestedUntil sets the upper bound (inclusive) for RequestedAt.
	RequestedUntil(until time.Time) FilterBuilder

	// Limit caps the number of returned records. Zero means no limit.
	Limit(limit uint) FilterBuilder

	// Finalize returns the built Filter.
	Finalize() Filter

	// MatchingAnyLoan directly creates an empty Filter.
	MatchingAnyLoan() Filter
}

type filterBuilder struct {
	filter Filter
}

// BuildFilter creates a new FilterBuilder.
func BuildFilter() FilterBuilder {
	return filterBuilder{}
}

func (fb filterBuilder) WithStatuses(statuses ...Status) FilterBuilder {
	fb.filter.statuses = fb.sanitizeStatuses(append(slices.Clone(fb.filter.statuses), statuses...))

	return fb
}

func (fb filterBuilder) sanitizeStatuses(statuses []Status) []Status {
	sanitized := make([]Status, 0, len(statuses))

	for _, status := range statuses {
		if status.IsValid() {
			sanitized = append(sanitized, status)
		}
	}

	slices.Sort(sanitized)

	return slices.Compact(sanitized)
}

func (fb filterBuilder) ForUser(userID FilterUserIDString) FilterBuilder {
	fb.filter.userID = userID

	return fb
}

func (fb filterBuilder) ForBook(bookID FilterBookIDString) FilterBuilder {
	fb.filter.bookID = bookID

	return fb
}

func (fb filterBuilder) RequestedFrom(from time.Time) FilterBuilder {
	fb.filter.requestedFrom = from

	return fb
}

func (fb filterBuilder) RequestedUntil(until time.Time) FilterBuilder {
	fb.filter.requestedTo = until

	return fb
}

func (fb filterBuilder) Limit(limit uint) FilterBuilder {
	fb.filter.limit = limit

	return fb
}

func (fb filterBuilder) Finalize() Filter {
	return fb.filter
}

func (fb filterBuilder) MatchingAnyLoan() Filter {
	return Filter{}
}
