// Package approveloan implements the Approve Loan use case.
//
// An administrator approves a pending loan request. The loan becomes approved and is due
// one loan period after the approval. The write is conditioned on the loan still being pending at the
// revision that was read, so of two administrators racing on the same request exactly one wins;
// the other re-reads the approved loan and is refused with an invalid transition.
package approveloan
