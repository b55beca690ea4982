package core

import (
	"time"
)

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// DomainEvent is a state change of exactly one loan.
type DomainEvent interface {
	// IsEventType returns the string identifier for this event type.
	IsEventType() string

	// HasOccurredAt returns when this event occurred.
	HasOccurredAt() time.Time

	// AffectsLoan returns the ID of the loan that changed.
	AffectsLoan() LoanIDString

	// AffectsUser returns the owner of the loan that changed.
	AffectsUser() UserIDString

	// ResultingStatus is the loan status after the event was applied.
	ResultingStatus() Status
}
