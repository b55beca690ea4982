// Package requestgateway is the borrower facing surface of the loan lifecycle.
//
// Every call is scoped to the calling user. Ownership of a loan is still verified by the core,
// so a gateway bug can never let one user extend another user's loan.
package requestgateway
