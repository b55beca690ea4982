package allloans

import (
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

// AllLoans is the projection returned by the query.
type AllLoans struct {
	Loans        []core.LoanView
	Count        int
	OverdueCount int
	EvaluatedAt  time.Time
}
