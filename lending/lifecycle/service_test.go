package lifecycle_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/lifecycle"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore/memoryengine"
	. "github.com/AntonStoeckl/loan-lifecycle-go/testutil/helper" //nolint:revive
)

const day = 24 * time.Hour

func Test_Service_FullLifecycle_OverdueExtendedAndReturned(t *testing.T) {
	// arrange
	clock := newTestClock(FakeClock())
	service := givenService(t, memoryengine.NewLoanStore(), clock)
	ctx := context.Background()

	// act
	requested, err := service.RequestLoan(ctx, "user-a", "b1", core.BuildBookSnapshot("Dune", nil, ""))
	require.NoError(t, err)

	clock.advance(time.Hour)
	approved, err := service.Approve(ctx, requested.Loan.ID, "admin-1")
	require.NoError(t, err)

	clock.advance(15 * day)
	extended, err := service.Extend(ctx, requested.Loan.ID, "user-a")
	require.NoError(t, err)

	clock.advance(day)
	returned, err := service.MarkReturned(ctx, requested.Loan.ID)
	require.NoError(t, err)

	loan, err := service.Get(ctx, requested.Loan.ID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.StatusPending, requested.Loan.Status)
	assert.Equal(t, approved.Loan.DueDate.Add(core.ExtensionPeriod), *extended.Loan.DueDate)
	assert.Equal(t, core.StatusReturned, returned.Loan.Status)
	assert.Equal(t, core.StatusReturned, loan.Status)
	assert.Equal(t, *extended.Loan.DueDate, *loan.DueDate)
	assert.Equal(t, 1, loan.ExtensionCount)
	assert.Equal(t, clock.now(), *loan.ReturnedAt)
}

func Test_Service_Get_Error_NotFound(t *testing.T) {
	// arrange
	service := givenService(t, memoryengine.NewLoanStore(), newTestClock(FakeClock()))

	// act
	_, err := service.Get(context.Background(), "missing")

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func Test_Service_Extend_Error_LimitReached(t *testing.T) {
	// arrange
	clock := newTestClock(FakeClock())
	service, err := lifecycle.NewService(
		memoryengine.NewLoanStore(),
		lifecycle.WithClock(clock.now),
		lifecycle.WithExtensionPolicy(core.SingleExtension()),
	)
	require.NoError(t, err)

	ctx := context.Background()
	loanID := givenApprovedLoan(t, service, "user-a", "b1")

	clock.advance(15 * day)
	_, err = service.Extend(ctx, loanID, "user-a")
	require.NoError(t, err)

	clock.advance(31 * day)

	// act
	_, err = service.Extend(ctx, loanID, "user-a")

	// assert
	assert.ErrorIs(t, err, core.ErrExtensionLimitReached)
}

func Test_Service_RecordsCommandMetricsAndLogs(t *testing.T) {
	// arrange
	metrics := NewMetricsCollectorSpy(true)
	tracing := NewTracingCollectorSpy(true)
	logger := NewContextualLoggerSpy(true)

	service, err := lifecycle.NewService(
		memoryengine.NewLoanStore(),
		lifecycle.WithClock(shell.FixedClock(FakeClock())),
		lifecycle.WithObservability(lifecycle.ObservabilityConfig{
			MetricsCollector: metrics,
			TracingCollector: tracing,
			ContextualLogger: logger,
		}),
	)
	require.NoError(t, err)

	ctx := context.Background()
	requested, err := service.RequestLoan(ctx, "user-a", "b1", core.PlaceholderBookSnapshot())
	require.NoError(t, err)

	// act
	_, err = service.MarkReturned(ctx, requested.Loan.ID)

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidTransition)
	assert.True(t, metrics.HasDurationRecordForMetric(shell.CommandHandlerDurationMetric).
		WithLabel("command_type", "RequestLoan").
		WithStatus(shell.StatusSuccess).
		Assert())
	assert.True(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerBusinessFailureMetric).
		WithLabel("command_type", "MarkReturned").
		Assert())
	assert.True(t, tracing.HasSpanRecordForName(shell.SpanNameCommandHandle).
		WithEndAttribute(shell.LogAttrLoanID, requested.Loan.ID).
		Assert())
	assert.True(t, logger.HasInfoLog(shell.LogMsgCommandRefused))
	assert.Zero(t, logger.CountErrorLogs())
}

func Test_Service_ConcurrentRejectAndApprove_ExactlyOneWins(t *testing.T) {
	// arrange
	clock := newTestClock(FakeClock())
	store := memoryengine.NewLoanStore()
	service := givenService(t, store, clock)
	ctx := context.Background()

	requested, err := service.RequestLoan(ctx, "user-a", "b1", core.PlaceholderBookSnapshot())
	require.NoError(t, err, "error in arranging test data")

	start := make(chan struct{})
	errs := make(chan error, 2)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		<-start
		_, approveErr := service.Approve(ctx, requested.Loan.ID, "admin-1")
		errs <- approveErr
	}()

	go func() {
		defer wg.Done()
		<-start
		_, rejectErr := service.Reject(ctx, requested.Loan.ID, "admin-2", "")
		errs <- rejectErr
	}()

	// act
	close(start)
	wg.Wait()
	close(errs)

	// assert
	successes := 0
	for err := range errs {
		if err == nil {
			successes++
			continue
		}

		assert.ErrorIs(t, err, core.ErrInvalidTransition)
	}

	assert.Equal(t, 1, successes)

	loan, err := service.Get(ctx, requested.Loan.ID)
	require.NoError(t, err)

	if loan.Status == core.StatusApproved {
		assert.NotNil(t, loan.DueDate)
	} else {
		assert.Equal(t, core.StatusRejected, loan.Status)
		assert.Nil(t, loan.DueDate)
	}
}

func givenService(t *testing.T, store *memoryengine.LoanStore, clock *testClock) *lifecycle.Service {
	t.Helper()

	service, err := lifecycle.NewService(store, lifecycle.WithClock(clock.now))
	require.NoError(t, err, "error in arranging test data")

	return service
}

func givenApprovedLoan(t *testing.T, service *lifecycle.Service, userID, bookID string) string {
	t.Helper()

	requested, err := service.RequestLoan(context.Background(), userID, bookID, core.PlaceholderBookSnapshot())
	require.NoError(t, err, "error in arranging test data")

	_, err = service.Approve(context.Background(), requested.Loan.ID, "admin-1")
	require.NoError(t, err, "error in arranging test data")

	return requested.Loan.ID
}

type testClock struct {
	mu      sync.Mutex
	current time.Time
}

func newTestClock(start time.Time) *testClock {
	return &testClock{current: start}
}

func (c *testClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current
}

func (c *testClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = c.current.Add(d)
}
