package loanstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

//nolint:funlen
func Test_FilterBuilder_ValidCombinations(t *testing.T) {
	timeFrom := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	timeUntil := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		build    func() loanstore.Filter
		validate func(t *testing.T, filter loanstore.Filter)
	}{
		{
			name: "matching_any_loan_creates_empty_filter",
			build: func() loanstore.Filter {
				return loanstore.BuildFilter().MatchingAnyLoan()
			},
			validate: func(t *testing.T, f loanstore.Filter) {
				assert.Empty(t, f.Statuses())
				assert.Empty(t, f.UserID())
				assert.Empty(t, f.BookID())
				assert.True(t, f.RequestedFrom().IsZero())
				assert.True(t, f.RequestedUntil().IsZero())
				assert.Equal(t, uint(0), f.Limit())
			},
		},
		{
			name: "statuses_are_sorted_and_deduplicated",
			build: func() loanstore.Filter {
				return loanstore.BuildFilter().
					WithStatuses(loanstore.StatusReturned, loanstore.StatusApproved, loanstore.StatusReturned).
					Finalize()
			},
			validate: func(t *testing.T, f loanstore.Filter) {
				assert.Equal(t, []loanstore.Status{loanstore.StatusApproved, loanstore.StatusReturned}, f.Statuses())
			},
		},
		{
			name: "unknown_statuses_are_removed",
			build: func() loanstore.Filter {
				return loanstore.BuildFilter().
					WithStatuses("lost", loanstore.StatusPending, "").
					Finalize()
			},
			validate: func(t *testing.T, f loanstore.Filter) {
				assert.Equal(t, []loanstore.Status{loanstore.StatusPending}, f.Statuses())
			},
		},
		{
			name: "all_criteria_combined",
			build: func() loanstore.Filter {
				return loanstore.BuildFilter().
					WithStatuses(loanstore.ActiveStatuses()...).
					ForUser("user-1").
					ForBook("book-1").
					RequestedFrom(timeFrom).
					RequestedUntil(timeUntil).
					Limit(25).
					Finalize()
			},
			validate: func(t *testing.T, f loanstore.Filter) {
				assert.Equal(t, []loanstore.Status{loanstore.StatusApproved, loanstore.StatusPending}, f.Statuses())
				assert.Equal(t, "user-1", f.UserID())
				assert.Equal(t, "book-1", f.BookID())
				assert.Equal(t, timeFrom, f.RequestedFrom())
				assert.Equal(t, timeUntil, f.RequestedUntil())
				assert.Equal(t, uint(25), f.Limit())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.validate(t, tc.build())
		})
	}
}

func Test_Filter_Matches(t *testing.T) {
	requestedAt := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	record := givenPendingRecord(t, "loan-1", "user-1", "book-1", requestedAt)

	tests := []struct {
		name     string
		filter   loanstore.Filter
		expected bool
	}{
		{name: "empty filter", filter: loanstore.BuildFilter().MatchingAnyLoan(), expected: true},
		{name: "matching status", filter: loanstore.BuildFilter().WithStatuses(loanstore.StatusPending).Finalize(), expected: true},
		{name: "other status", filter: loanstore.BuildFilter().WithStatuses(loanstore.StatusApproved).Finalize(), expected: false},
		{name: "matching user", filter: loanstore.BuildFilter().ForUser("user-1").Finalize(), expected: true},
		{name: "other user", filter: loanstore.BuildFilter().ForUser("user-2").Finalize(), expected: false},
		{name: "other book", filter: loanstore.BuildFilter().ForBook("book-2").Finalize(), expected: false},
		{name: "requested before range", filter: loanstore.BuildFilter().RequestedFrom(requestedAt.Add(time.Second)).Finalize(), expected: false},
		{name: "requested after range", filter: loanstore.BuildFilter().RequestedUntil(requestedAt.Add(-time.Second)).Finalize(), expected: false},
		{name: "range bounds are inclusive", filter: loanstore.BuildFilter().RequestedFrom(requestedAt).RequestedUntil(requestedAt).Finalize(), expected: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.filter.Matches(record))
		})
	}
}
