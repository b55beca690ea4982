// Package markreturned implements the Mark Returned use case.
//
// An administrator records that the book of an approved loan came back. The due date stays as it was,
// so the history of the loan remains visible.
package markreturned
