package loansbyuser

import (
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

// LoansByUser is the projection returned by the query.
type LoansByUser struct {
	UserID      core.UserIDString
	Loans       []core.LoanView
	Count       int
	EvaluatedAt time.Time
}
