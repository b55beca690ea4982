package shell

import (
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

// ErrMappingToEventMetadataFailed is returned when metadata conversion fails.
var ErrMappingToEventMetadataFailed = errors.New("mapping to event metadata failed")

// MessageID represents a unique message identifier.
type MessageID = string

// CausationID represents the ID of the message that caused this one.
type CausationID = string

// CorrelationID represents the ID correlating related messages.
type CorrelationID = string

// EventMetadata travels with every notification written to the outbox.
type EventMetadata struct {
	MessageID     MessageID
	CausationID   CausationID
	CorrelationID CorrelationID
}

// BuildEventMetadata creates EventMetadata from UUID values.
func BuildEventMetadata(messageID uuid.UUID, causationID uuid.UUID, correlationID uuid.UUID) EventMetadata {
	return EventMetadata{
		MessageID:     messageID.String(),
		CausationID:   causationID.String(),
		CorrelationID: correlationID.String(),
	}
}

// NewEventMetadata creates metadata for a message that starts its own causation chain.
func NewEventMetadata() EventMetadata {
	id := uuid.New()
	return BuildEventMetadata(id, id, id)
}

// MarshalEventMetadata encodes metadata for storage.
func MarshalEventMetadata(metadata EventMetadata) ([]byte, error) {
	metadataJSON, err := jsoniter.ConfigFastest.Marshal(metadata)
	if err != nil {
		return nil, errors.Join(ErrMappingToEventMetadataFailed, err)
	}

	return metadataJSON, nil
}

// EventMetadataFrom extracts EventMetadata from a stored notification.
func EventMetadataFrom(notification loanstore.StorableNotification) (EventMetadata, error) {
	metadata := new(EventMetadata)
	if err := jsoniter.ConfigFastest.Unmarshal(notification.MetadataJSON, metadata); err != nil {
		return EventMetadata{}, errors.Join(ErrMappingToEventMetadataFailed, err)
	}

	return *metadata, nil
}
