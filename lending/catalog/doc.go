// Package catalog resolves the display data of a book at request time.
//
// The catalog is an external collaborator. Its answer is copied into the loan as a BookSnapshot,
// and a failing catalog never blocks a loan request: WithFallback turns every error into the placeholder snapshot.
package catalog
