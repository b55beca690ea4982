// Package memoryengine provides an in-process implementation of the loan record store.
//
// It honours the same contract as the PostgreSQL engine: InsertIfAbsent and UpdateIfStatus are atomic
// with respect to each other, records are returned as copies, and lists are ordered newest first.
// It serves tests and the demo mode of the server.
package memoryengine

import (
	"context"
	"slices"
	"sync"

	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

// LoanStore keeps loan records in memory guarded by a single lock.
type LoanStore struct {
	mu      sync.RWMutex
	records map[string]loanstore.Record
	active  map[loanstore.ConflictKey]string
}

// NewLoanStore creates an empty LoanStore.
func NewLoanStore() *LoanStore {
	return &LoanStore{
		records: make(map[string]loanstore.Record),
		active:  make(map[loanstore.ConflictKey]string),
	}
}

// InsertIfAbsent stores the record unless an active record exists for the same user and book.
func (s *LoanStore) InsertIfAbsent(ctx context.Context, record loanstore.Record) (loanstore.Record, error) {
	if err := ctx.Err(); err != nil {
		return loanstore.Record{}, err
	}

	if !record.Status.IsValid() || record.ID == "" {
		return loanstore.Record{}, loanstore.ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if record.Status.IsActive() {
		if _, exists := s.active[record.ConflictKey()]; exists {
			return loanstore.Record{}, loanstore.ErrActiveLoanExists
		}
	}

	if _, exists := s.records[record.ID]; exists {
		return loanstore.Record{}, loanstore.ErrWritingLoanFailed
	}

	stored := cloneRecord(record)
	s.records[stored.ID] = stored
	s.index(stored)

	return cloneRecord(stored), nil
}

// UpdateIfStatus applies the patch if the record's status and revision match the expectation.
func (s *LoanStore) UpdateIfStatus(
	ctx context.Context,
	id string,
	expectation loanstore.Expectation,
	patch loanstore.Patch,
) (loanstore.Record, error) {

	if err := ctx.Err(); err != nil {
		return loanstore.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.records[id]
	if !exists || current.Status != expectation.Status || current.Revision != expectation.Revision {
		return loanstore.Record{}, loanstore.ErrConcurrencyConflict
	}

	updated := current.Applied(clonePatch(patch))

	if updated.Status.IsActive() && !current.Status.IsActive() {
		if _, taken := s.active[updated.ConflictKey()]; taken {
			return loanstore.Record{}, loanstore.ErrActiveLoanExists
		}
	}

	s.unindex(current)
	s.records[id] = updated
	s.index(updated)

	return cloneRecord(updated), nil
}

// Get returns a copy of the record with the given id.
func (s *LoanStore) Get(ctx context.Context, id string) (loanstore.Record, error) {
	if err := ctx.Err(); err != nil {
		return loanstore.Record{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.records[id]
	if !exists {
		return loanstore.Record{}, loanstore.ErrLoanNotFound
	}

	return cloneRecord(record), nil
}

// QueryByUser returns all records of one user, newest first.
func (s *LoanStore) QueryByUser(ctx context.Context, userID string) (loanstore.Records, error) {
	return s.QueryAll(ctx, loanstore.BuildFilter().ForUser(userID).Finalize())
}

// QueryAll returns the records matching the filter, newest first.
func (s *LoanStore) QueryAll(ctx context.Context, filter loanstore.Filter) (loanstore.Records, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	records := make(loanstore.Records, 0, len(s.records))
	for _, record := range s.records {
		if filter.Matches(record) {
			records = append(records, cloneRecord(record))
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(records, newestFirst)

	if limit := int(filter.Limit()); limit > 0 && len(records) > limit { //nolint:gosec
		records = records[:limit]
	}

	return records, nil
}

func (s *LoanStore) index(record loanstore.Record) {
	if record.Status.IsActive() {
		s.active[record.ConflictKey()] = record.ID
	}
}

func (s *LoanStore) unindex(record loanstore.Record) {
	if id, exists := s.active[record.ConflictKey()]; exists && id == record.ID {
		delete(s.active, record.ConflictKey())
	}
}

func newestFirst(a, b loanstore.Record) int {
	if c := b.RequestedAt.Compare(a.RequestedAt); c != 0 {
		return c
	}

	if a.ID > b.ID {
		return -1
	}

	if a.ID < b.ID {
		return 1
	}

	return 0
}

func cloneRecord(r loanstore.Record) loanstore.Record {
	r.BookAuthors = slices.Clone(r.BookAuthors)
	r.RespondedAt = clonePtr(r.RespondedAt)
	r.RespondedBy = clonePtr(r.RespondedBy)
	r.DueDate = clonePtr(r.DueDate)
	r.ReturnedAt = clonePtr(r.ReturnedAt)
	r.Notes = clonePtr(r.Notes)

	return r
}

func clonePatch(p loanstore.Patch) loanstore.Patch {
	p.RespondedAt = clonePtr(p.RespondedAt)
	p.RespondedBy = clonePtr(p.RespondedBy)
	p.DueDate = clonePtr(p.DueDate)
	p.ReturnedAt = clonePtr(p.ReturnedAt)
	p.Notes = clonePtr(p.Notes)

	return p
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}
