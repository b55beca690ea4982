package loanstore

import "context"

// ConsistencyLevel defines the consistency requirements for LoanRecordStore reads.
type ConsistencyLevel int

const (
	// StrongConsistency requires reads from the primary database to ensure
	// read-after-write consistency. This is the default: command handlers read a record,
	// decide, and write it back conditioned on what they have read.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from replica databases.
	// Suitable for list views that can tolerate slightly stale data.
	EventualConsistency
)

// contextKey is a private type to prevent context key collisions.
type contextKey string

// ConsistencyLevelKey is the context key used to store consistency level preferences.
const ConsistencyLevelKey contextKey = "loanstore.consistency_level"

// WithStrongConsistency returns a context that signals store reads must use the primary database.
//
// Example usage:
//
//	ctx = loanstore.WithStrongConsistency(ctx)
//	record, err := store.Get(ctx, loanID)
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency returns a context that signals store reads may use a replica database.
//
// Example usage:
//
//	ctx = loanstore.WithEventualConsistency(ctx)
//	records, err := store.QueryAll(ctx, filter)
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the consistency level from the context.
// If no consistency level is set, it returns StrongConsistency.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

// String provides a string representation of ConsistencyLevel for logging.
func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
