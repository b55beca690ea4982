package shell

import (
	"context"
)

// Command is implemented by every lifecycle command. CommandType labels metrics, spans and logs.
type Command interface {
	CommandType() string
}

// CommandHandler processes one command type and reports the transition it committed.
type CommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// Query is implemented by every read-side query. QueryType labels metrics, spans and logs.
type Query interface {
	QueryType() string
}

// QueryHandler answers one query type with its projection.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
