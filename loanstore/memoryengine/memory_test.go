package memoryengine_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore/memoryengine"
)

var fakeClock = time.Unix(0, 0).UTC()

func Test_LoanStore_InsertIfAbsent_Error_ActiveLoanExists(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewLoanStore()
	givenInsertedRecord(t, store, "loan-1", "user-1", "book-1", fakeClock)

	// act
	_, err := store.InsertIfAbsent(ctx, givenRecord(t, "loan-2", "user-1", "book-1", fakeClock.Add(time.Minute)))

	// assert
	assert.ErrorIs(t, err, loanstore.ErrActiveLoanExists)
}

func Test_LoanStore_InsertIfAbsent_Success_AfterPreviousLoanWasRejected(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewLoanStore()
	first := givenInsertedRecord(t, store, "loan-1", "user-1", "book-1", fakeClock)

	patch := loanstore.PatchFrom(first)
	patch.Status = loanstore.StatusRejected
	_, err := store.UpdateIfStatus(ctx, first.ID, loanstore.ExpectationFrom(first), patch)
	require.NoError(t, err, "error in arranging test data")

	// act
	second, err := store.InsertIfAbsent(ctx, givenRecord(t, "loan-2", "user-1", "book-1", fakeClock.Add(time.Minute)))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, "loan-2", second.ID)
}

func Test_LoanStore_InsertIfAbsent_ExactlyOneWinner_WhenRacing(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewLoanStore()
	contenders := 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	var successes, conflicts atomic.Int32

	// act
	for i := 0; i < contenders; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			<-start

			_, err := store.InsertIfAbsent(ctx, givenRecord(t, fmt.Sprintf("loan-%d", i), "user-1", "book-1", fakeClock))

			switch {
			case err == nil:
				successes.Add(1)
			case assert.ErrorIs(t, err, loanstore.ErrActiveLoanExists):
				conflicts.Add(1)
			}
		}(i)
	}

	close(start)
	wg.Wait()

	// assert
	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(contenders-1), conflicts.Load())

	records, err := store.QueryByUser(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, records, 1)
}

func Test_LoanStore_UpdateIfStatus_ExactlyOneWinner_WhenRacing(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewLoanStore()
	record := givenInsertedRecord(t, store, "loan-1", "user-1", "book-1", fakeClock)
	expectation := loanstore.ExpectationFrom(record)
	contenders := 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	var successes atomic.Int32

	// act
	for i := 0; i < contenders; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			<-start

			patch := loanstore.PatchFrom(record)
			patch.Status = loanstore.StatusApproved
			if i%2 == 0 {
				patch.Status = loanstore.StatusRejected
			}

			if _, err := store.UpdateIfStatus(ctx, record.ID, expectation, patch); err == nil {
				successes.Add(1)
			} else {
				assert.ErrorIs(t, err, loanstore.ErrConcurrencyConflict)
			}
		}(i)
	}

	close(start)
	wg.Wait()

	// assert
	assert.Equal(t, int32(1), successes.Load())

	stored, err := store.Get(ctx, record.ID)
	assert.NoError(t, err)
	assert.Equal(t, loanstore.RevisionUint(2), stored.Revision)
}

func Test_LoanStore_UpdateIfStatus_Error_ConcurrencyConflict(t *testing.T) {
	ctx := context.Background()
	store := memoryengine.NewLoanStore()
	record := givenInsertedRecord(t, store, "loan-1", "user-1", "book-1", fakeClock)
	patch := loanstore.PatchFrom(record)
	patch.Status = loanstore.StatusApproved

	tests := []struct {
		name        string
		id          string
		expectation loanstore.Expectation
	}{
		{name: "unknown id", id: "loan-x", expectation: loanstore.ExpectationFrom(record)},
		{name: "wrong status", id: record.ID, expectation: loanstore.Expectation{Status: loanstore.StatusApproved, Revision: record.Revision}},
		{name: "stale revision", id: record.ID, expectation: loanstore.Expectation{Status: record.Status, Revision: record.Revision + 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.UpdateIfStatus(ctx, tc.id, tc.expectation, patch)

			assert.ErrorIs(t, err, loanstore.ErrConcurrencyConflict)
		})
	}

	stored, err := store.Get(ctx, record.ID)
	assert.NoError(t, err)
	assert.Equal(t, loanstore.StatusPending, stored.Status, "failed updates must not change the record")
}

func Test_LoanStore_Get_Error_NotFound(t *testing.T) {
	_, err := memoryengine.NewLoanStore().Get(context.Background(), "loan-x")

	assert.ErrorIs(t, err, loanstore.ErrLoanNotFound)
}

func Test_LoanStore_Get_ReturnsCopies(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewLoanStore()
	givenInsertedRecord(t, store, "loan-1", "user-1", "book-1", fakeClock)

	// act
	first, err := store.Get(ctx, "loan-1")
	require.NoError(t, err)
	first.BookAuthors[0] = "changed"

	second, err := store.Get(ctx, "loan-1")

	// assert
	assert.NoError(t, err)
	assert.Equal(t, "Some Author", second.BookAuthors[0])
}

func Test_LoanStore_QueryAll_NewestFirst_WithFilterAndLimit(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewLoanStore()
	givenInsertedRecord(t, store, "loan-1", "user-1", "book-1", fakeClock)
	givenInsertedRecord(t, store, "loan-2", "user-1", "book-2", fakeClock.Add(time.Hour))
	givenInsertedRecord(t, store, "loan-3", "user-2", "book-1", fakeClock.Add(2*time.Hour))
	givenInsertedRecord(t, store, "loan-4", "user-2", "book-2", fakeClock.Add(3*time.Hour))

	// act
	all, allErr := store.QueryAll(ctx, loanstore.BuildFilter().MatchingAnyLoan())
	limited, limitedErr := store.QueryAll(ctx, loanstore.BuildFilter().ForBook("book-1").Limit(1).Finalize())
	mine, mineErr := store.QueryByUser(ctx, "user-1")

	// assert
	assert.NoError(t, allErr)
	assert.NoError(t, limitedErr)
	assert.NoError(t, mineErr)
	assert.Equal(t, []string{"loan-4", "loan-3", "loan-2", "loan-1"}, idsOf(all))
	assert.Equal(t, []string{"loan-3"}, idsOf(limited))
	assert.Equal(t, []string{"loan-2", "loan-1"}, idsOf(mine))
}

func givenRecord(t *testing.T, id, userID, bookID string, requestedAt time.Time) loanstore.Record {
	t.Helper()

	record, err := loanstore.BuildRecord(id, userID, bookID, "Some Title", []string{"Some Author"}, "", requestedAt)
	assert.NoError(t, err, "error in arranging test data")

	return record
}

func givenInsertedRecord(
	t *testing.T,
	store *memoryengine.LoanStore,
	id, userID, bookID string,
	requestedAt time.Time,
) loanstore.Record {

	t.Helper()

	record, err := store.InsertIfAbsent(context.Background(), givenRecord(t, id, userID, bookID, requestedAt))
	require.NoError(t, err, "error in arranging test data")

	return record
}

func idsOf(records loanstore.Records) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}

	return ids
}
