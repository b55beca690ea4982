// Package core contains the loan lifecycle domain: the LoanRequest entity, its status machine,
// the domain events that move a loan between states, and the pure overdue evaluation.
//
// Nothing in here performs I/O. Every rule that decides whether a transition is allowed lives
// in the Decide functions of the feature slices, which are built on the types of this package,
// and every state change is expressed as an event applied with Evolve.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
