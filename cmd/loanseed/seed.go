package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/lifecycle"
)

const seedAdminID = "seed-admin"

type plan struct {
	Users int
	Books int
	Loans int
}

type summary struct {
	Requested  int
	Duplicates int
	Approved   int
	Rejected   int
	Returned   int
}

func (p plan) validate() error {
	if p.Users <= 0 || p.Books <= 0 || p.Loans < 0 {
		return fmt.Errorf("users and books must be positive, loans must not be negative: %+v", p)
	}

	return nil
}

// seed drives the lifecycle service with random requests and decisions.
// Roughly 20% stay pending, 30% get approved, 20% rejected, 30% approved and returned.
func seed(ctx context.Context, service *lifecycle.Service, p plan, rng *rand.Rand) (summary, error) {
	if err := p.validate(); err != nil {
		return summary{}, err
	}

	var s summary

	for range p.Loans {
		userID := fmt.Sprintf("user-%04d", rng.IntN(p.Users))
		bookID := fmt.Sprintf("book-%04d", rng.IntN(p.Books))

		result, err := service.RequestLoan(ctx, userID, bookID, core.BuildBookSnapshot("Book "+bookID, nil, ""))
		if errors.Is(err, core.ErrDuplicateActiveLoan) {
			s.Duplicates++
			continue
		}
		if err != nil {
			return s, err
		}
		s.Requested++

		loanID := result.Loan.ID

		switch roll := rng.IntN(10); {
		case roll < 2:
			// stays pending
		case roll < 4:
			if _, err := service.Reject(ctx, loanID, seedAdminID, ""); err != nil {
				return s, err
			}
			s.Rejected++
		default:
			if _, err := service.Approve(ctx, loanID, seedAdminID); err != nil {
				return s, err
			}
			s.Approved++

			if roll >= 7 {
				if _, err := service.MarkReturned(ctx, loanID); err != nil {
					return s, err
				}
				s.Returned++
			}
		}
	}

	return s, nil
}
