// Package requestloan implements the Request Loan use case.
//
// A user asks to borrow a book. The request is stored as a pending loan carrying a snapshot of the book's
// display data. At most one pending or approved loan may exist per user and book; the store enforces this
// atomically, so two concurrent submissions resolve to one loan and one duplicate failure.
package requestloan
