package postgresengine_test

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
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore/postgresengine"
	"github.com/AntonStoeckl/loan-lifecycle-go/testutil/helper"
	"github.com/AntonStoeckl/loan-lifecycle-go/testutil/helper/postgreswrapper"
)

func Test_LoanStore_InsertIfAbsent_And_Get(t *testing.T) {
	// setup
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	postgreswrapper.CleanUp(t, wrapper)
	store := wrapper.GetLoanStore()
	ctx := context.Background()

	// arrange
	record := givenRecord(t, helper.GivenUniqueLoanID(t), "user-1", "book-1", helper.FakeClock())

	// act
	inserted, insertErr := store.InsertIfAbsent(ctx, record)
	stored, getErr := store.Get(ctx, record.ID)

	// assert
	assert.NoError(t, insertErr)
	assert.NoError(t, getErr)
	assert.Equal(t, record, inserted)
	assert.Equal(t, record, stored)
}

func Test_LoanStore_InsertIfAbsent_Error_ActiveLoanExists(t *testing.T) {
	// setup
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	postgreswrapper.CleanUp(t, wrapper)
	store := wrapper.GetLoanStore()
	ctx := context.Background()

	// arrange
	givenInsertedRecord(t, store, "user-1", "book-1", helper.FakeClock())

	// act
	_, err := store.InsertIfAbsent(ctx, givenRecord(t, helper.GivenUniqueLoanID(t), "user-1", "book-1", helper.FakeClock()))

	// assert
	assert.ErrorIs(t, err, loanstore.ErrActiveLoanExists)
}

func Test_LoanStore_InsertIfAbsent_ExactlyOneWinner_WhenRacing(t *testing.T) {
	// setup
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	postgreswrapper.CleanUp(t, wrapper)
	store := wrapper.GetLoanStore()
	ctx := context.Background()

	// arrange
	contenders := 8
	start := make(chan struct{})
	var wg sync.WaitGroup
	var successes atomic.Int32

	// act
	for i := 0; i < contenders; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			<-start

			record := givenRecord(t, fmt.Sprintf("loan-race-%d", i), "user-1", "book-1", helper.FakeClock())
			if _, err := store.InsertIfAbsent(ctx, record); err == nil {
				successes.Add(1)
			} else {
				assert.ErrorIs(t, err, loanstore.ErrActiveLoanExists)
			}
		}(i)
	}

	close(start)
	wg.Wait()

	// assert
	assert.Equal(t, int32(1), successes.Load())
}

func Test_LoanStore_UpdateIfStatus(t *testing.T) {
	// setup
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	postgreswrapper.CleanUp(t, wrapper)
	store := wrapper.GetLoanStore()
	ctx := context.Background()

	// arrange
	record := givenInsertedRecord(t, store, "user-1", "book-1", helper.FakeClock())
	respondedAt := helper.FakeClock().Add(time.Hour)
	dueDate := respondedAt.Add(14 * 24 * time.Hour)
	admin := "admin-1"

	patch := loanstore.PatchFrom(record)
	patch.Status = loanstore.StatusApproved
	patch.RespondedAt = &respondedAt
	patch.RespondedBy = &admin
	patch.DueDate = &dueDate

	// act
	updated, updateErr := store.UpdateIfStatus(ctx, record.ID, loanstore.ExpectationFrom(record), patch)
	_, staleErr := store.UpdateIfStatus(ctx, record.ID, loanstore.ExpectationFrom(record), patch)
	_, unknownErr := store.UpdateIfStatus(ctx, "unknown", loanstore.ExpectationFrom(record), patch)

	// assert
	assert.NoError(t, updateErr)
	assert.Equal(t, record.Applied(patch), updated)
	assert.ErrorIs(t, staleErr, loanstore.ErrConcurrencyConflict)
	assert.ErrorIs(t, unknownErr, loanstore.ErrConcurrencyConflict)
}

func Test_LoanStore_Get_Error_NotFound(t *testing.T) {
	// setup
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	postgreswrapper.CleanUp(t, wrapper)

	// act
	_, err := wrapper.GetLoanStore().Get(context.Background(), "unknown")

	// assert
	assert.ErrorIs(t, err, loanstore.ErrLoanNotFound)
}

func Test_LoanStore_QueryAll_NewestFirst(t *testing.T) {
	// setup
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	postgreswrapper.CleanUp(t, wrapper)
	store := wrapper.GetLoanStore()
	ctx := loanstore.WithEventualConsistency(context.Background())

	// arrange
	older := givenInsertedRecord(t, store, "user-1", "book-1", helper.FakeClock())
	newer := givenInsertedRecord(t, store, "user-1", "book-2", helper.FakeClock().Add(time.Minute))
	other := givenInsertedRecord(t, store, "user-2", "book-1", helper.FakeClock().Add(2*time.Minute))

	// act
	mine, mineErr := store.QueryByUser(ctx, "user-1")
	all, allErr := store.QueryAll(ctx, loanstore.BuildFilter().WithStatuses(loanstore.StatusPending).Finalize())

	// assert
	assert.NoError(t, mineErr)
	assert.NoError(t, allErr)
	assert.Equal(t, loanstore.Records{newer, older}, mine)
	assert.Equal(t, loanstore.Records{other, newer, older}, all)
}

func Test_LoanStore_Observability(t *testing.T) {
	// setup
	metricsSpy := helper.NewMetricsCollectorSpy(true)
	tracingSpy := helper.NewTracingCollectorSpy(true)
	loggerSpy := helper.NewContextualLoggerSpy(true)
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(
		t,
		postgresengine.WithMetrics(metricsSpy),
		postgresengine.WithTracing(tracingSpy),
		postgresengine.WithContextualLogger(loggerSpy),
	)
	defer wrapper.Close()
	postgreswrapper.CleanUp(t, wrapper)
	store := wrapper.GetLoanStore()

	// arrange
	record := givenInsertedRecord(t, store, "user-1", "book-1", helper.FakeClock())

	// act
	_, err := store.InsertIfAbsent(context.Background(), givenRecord(t, helper.GivenUniqueLoanID(t), "user-1", "book-1", helper.FakeClock()))

	// assert
	assert.ErrorIs(t, err, loanstore.ErrActiveLoanExists)
	assert.True(t, metricsSpy.HasDurationRecordForMetric("loanstore_insert_duration_seconds").WithStatus("success").Assert())
	assert.True(t, metricsSpy.HasCounterRecordForMetric("loanstore_active_loan_conflicts_total").WithConflictType("active_loan").Assert())
	assert.True(t, tracingSpy.HasSpanRecordForName("loanstore.insert").WithStartAttribute("loan_id", record.ID).WithStatus("success").Assert())
	assert.True(t, tracingSpy.HasSpanRecordForName("loanstore.insert").WithStatus("error").WithEndAttribute("error_type", "active_loan_conflict").Assert())
	assert.True(t, loggerSpy.HasInfoLog("loanstore operation: active loan conflict detected"))
	assert.True(t, loggerSpy.HasDebugLog("executed sql for: insert"))
}

func Test_NotificationOutbox_Append_And_QueryForUser(t *testing.T) {
	// setup
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	postgreswrapper.CleanUp(t, wrapper)
	outbox := wrapper.GetLoanStore().NotificationOutbox()
	ctx := context.Background()

	// arrange
	first, err := loanstore.BuildStorableNotification("approved", "loan-1", "user-1", helper.FakeClock(), []byte(`{"loanId":"loan-1"}`), []byte(`{}`))
	require.NoError(t, err)
	second, err := loanstore.BuildStorableNotification("returned", "loan-1", "user-1", helper.FakeClock().Add(time.Hour), []byte(`{"loanId":"loan-1"}`), []byte(`{}`))
	require.NoError(t, err)

	// act
	require.NoError(t, outbox.Append(ctx, first))
	require.NoError(t, outbox.Append(ctx, second))
	notifications, queryErr := outbox.QueryForUser(ctx, "user-1", 1)

	// assert
	assert.NoError(t, queryErr)
	require.Len(t, notifications, 1)
	assert.Equal(t, "returned", notifications[0].NotificationType)
	assert.Equal(t, helper.FakeClock().Add(time.Hour), notifications[0].OccurredAt)
}

func givenRecord(t *testing.T, id, userID, bookID string, requestedAt time.Time) loanstore.Record {
	t.Helper()

	record, err := loanstore.BuildRecord(id, userID, bookID, "Learning Domain-Driven Design", []string{"Vlad Khononov"}, "", requestedAt)
	assert.NoError(t, err, "error in arranging test data")

	return record
}

func givenInsertedRecord(t *testing.T, store *postgresengine.LoanStore, userID, bookID string, requestedAt time.Time) loanstore.Record {
	t.Helper()

	record, err := store.InsertIfAbsent(context.Background(), givenRecord(t, helper.GivenUniqueLoanID(t), userID, bookID, requestedAt))
	require.NoError(t, err, "error in arranging test data")

	return record
}
