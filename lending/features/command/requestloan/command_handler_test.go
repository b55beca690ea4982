package requestloan_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/command/rejectloan"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/command/requestloan"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore/memoryengine"
	. "github.com/AntonStoeckl/loan-lifecycle-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	store := memoryengine.NewLoanStore()
	handler := requestloan.NewCommandHandler(store, requestloan.WithIDGenerator(fixedIDGenerator("loan-1")))
	command := requestloan.BuildCommand("user-a", "b1", givenDuneSnapshot(), FakeClock())

	// act
	result, err := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	assert.True(t, result.HasEvent())
	assert.Equal(t, 1, result.RetryAttempts)
	assert.Equal(t, "loan-1", result.Loan.ID)
	assert.Equal(t, core.StatusPending, result.Loan.Status)
	assert.Equal(t, FakeClock(), result.Loan.RequestedAt)
	assert.Nil(t, result.Loan.DueDate)
	assert.Nil(t, result.Loan.RespondedAt)
	assert.Equal(t, "Dune", result.Loan.Book.Title)

	stored, err := store.Get(context.Background(), "loan-1")
	require.NoError(t, err)
	assert.Equal(t, result.Loan, shell.LoanRequestFrom(stored))
}

func Test_CommandHandler_Handle_Error_DuplicateActiveLoan(t *testing.T) {
	// arrange
	store := memoryengine.NewLoanStore()
	handler := requestloan.NewCommandHandler(store)
	command := requestloan.BuildCommand("user-a", "b1", givenDuneSnapshot(), FakeClock())

	_, err := handler.Handle(context.Background(), command)
	require.NoError(t, err)

	// act
	result, err := handler.Handle(context.Background(), command)

	// assert
	assert.ErrorIs(t, err, core.ErrDuplicateActiveLoan)
	assert.False(t, result.HasEvent())
	assert.Equal(t, 1, result.RetryAttempts, "duplicates are not retried")
}

func Test_CommandHandler_Handle_Success_OtherUserSameBook(t *testing.T) {
	// arrange
	store := memoryengine.NewLoanStore()
	handler := requestloan.NewCommandHandler(store)

	_, err := handler.Handle(context.Background(), requestloan.BuildCommand("user-a", "b1", givenDuneSnapshot(), FakeClock()))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(context.Background(), requestloan.BuildCommand("user-b", "b1", givenDuneSnapshot(), FakeClock()))

	// assert
	assert.NoError(t, err)
}

func Test_CommandHandler_Handle_Success_AfterPriorRequestWasRejected(t *testing.T) {
	// arrange
	store := memoryengine.NewLoanStore()
	handler := requestloan.NewCommandHandler(store)
	rejectHandler := rejectloan.NewCommandHandler(store)

	first, err := handler.Handle(context.Background(), requestloan.BuildCommand("user-b", "b2", givenDuneSnapshot(), FakeClock()))
	require.NoError(t, err)

	_, err = rejectHandler.Handle(
		context.Background(),
		rejectloan.BuildCommand(first.Loan.ID, "admin-1", "stock damaged", FakeClock().Add(time.Hour)),
	)
	require.NoError(t, err)

	// act
	second, err := handler.Handle(
		context.Background(),
		requestloan.BuildCommand("user-b", "b2", givenDuneSnapshot(), FakeClock().Add(2*time.Hour)),
	)

	// assert
	assert.NoError(t, err)
	assert.NotEqual(t, first.Loan.ID, second.Loan.ID)
	assert.Equal(t, core.StatusPending, second.Loan.Status)
}

func Test_CommandHandler_Handle_Error_InvalidArgument(t *testing.T) {
	// arrange
	handler := requestloan.NewCommandHandler(memoryengine.NewLoanStore())

	// act
	_, err := handler.Handle(context.Background(), requestloan.BuildCommand("user-a", "", givenDuneSnapshot(), FakeClock()))

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func Test_CommandHandler_Handle_ConcurrentRequests_ExactlyOneSucceeds(t *testing.T) {
	// arrange
	const contenders = 20

	store := memoryengine.NewLoanStore()
	handler := requestloan.NewCommandHandler(store)
	command := requestloan.BuildCommand("user-a", "b1", givenDuneSnapshot(), FakeClock())

	start := make(chan struct{})
	errs := make(chan error, contenders)

	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := handler.Handle(context.Background(), command)
			errs <- err
		}()
	}

	// act
	close(start)
	wg.Wait()
	close(errs)

	// assert
	succeeded, duplicates := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, core.ErrDuplicateActiveLoan):
			duplicates++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, contenders-1, duplicates)

	records, err := store.QueryByUser(context.Background(), "user-a")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func givenDuneSnapshot() core.BookSnapshot {
	return core.BuildBookSnapshot("Dune", []string{"Frank Herbert"}, "https://img/dune.jpg")
}

type fixedIDGenerator string

func (g fixedIDGenerator) NewID() string {
	return string(g)
}
