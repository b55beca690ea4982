package main

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/lifecycle"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore/memoryengine"
)

func Test_Seed_KeepsTheLifecycleConsistent(t *testing.T) {
	// arrange
	store := memoryengine.NewLoanStore()
	service, err := lifecycle.NewService(store)
	require.NoError(t, err, "error in arranging test data")

	views, err := lifecycle.NewViews(store)
	require.NoError(t, err, "error in arranging test data")

	rng := rand.New(rand.NewPCG(7, 7))

	// act
	s, err := seed(context.Background(), service, plan{Users: 3, Books: 4, Loans: 60}, rng)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 60, s.Requested+s.Duplicates)
	assert.LessOrEqual(t, s.Returned, s.Approved)

	all, err := views.AllLoans(context.Background(), false, 0)
	require.NoError(t, err)
	assert.Equal(t, s.Requested, all.Count)

	active := make(map[string]int)
	for _, view := range all.Loans {
		if view.Loan.Status.IsActive() {
			active[view.Loan.UserID+"/"+view.Loan.BookID]++
		}
	}
	for pair, n := range active {
		assert.Equal(t, 1, n, "more than one active loan for %s", pair)
	}

	stats, err := views.Stats(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, s.Rejected, stats.Rejected)
	assert.Equal(t, s.Returned, stats.Returned)
	assert.Equal(t, s.Approved-s.Returned, stats.Approved)
}

func Test_Seed_Error_InvalidPlan(t *testing.T) {
	service, err := lifecycle.NewService(memoryengine.NewLoanStore())
	require.NoError(t, err, "error in arranging test data")

	_, err = seed(context.Background(), service, plan{Users: 0, Books: 1, Loans: 1}, rand.New(rand.NewPCG(1, 1)))

	assert.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrDuplicateActiveLoan)
}
