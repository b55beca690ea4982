package notification

import (
	"context"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

// OutboxAppender is implemented by postgresengine.NotificationOutbox.
type OutboxAppender interface {
	Append(ctx context.Context, notification loanstore.StorableNotification) error
}

// OutboxEmitter appends events to the notification outbox table.
// Every stored notification gets fresh message metadata.
type OutboxEmitter struct {
	outbox OutboxAppender
}

// NewOutboxEmitter creates an OutboxEmitter.
func NewOutboxEmitter(outbox OutboxAppender) *OutboxEmitter {
	return &OutboxEmitter{outbox: outbox}
}

// Emit encodes the event and appends it to the outbox.
func (e *OutboxEmitter) Emit(ctx context.Context, event Event) error {
	payloadJSON, err := MarshalPayload(event)
	if err != nil {
		return err
	}

	metadataJSON, err := shell.MarshalEventMetadata(shell.NewEventMetadata())
	if err != nil {
		return err
	}

	storable, err := loanstore.BuildStorableNotification(
		event.NotificationType(),
		event.LoanID,
		event.UserID,
		event.Timestamp,
		payloadJSON,
		metadataJSON,
	)
	if err != nil {
		return err
	}

	return e.outbox.Append(ctx, storable)
}

var _ Emitter = (*OutboxEmitter)(nil)
