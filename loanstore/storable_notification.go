package loanstore

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrInvalidPayloadJSON = errors.New("payload json is not valid")
var ErrInvalidMetadataJSON = errors.New("metadata json is not valid")

// StorableNotification is a DTO used by the notification outbox to persist lifecycle notifications.
//
// While its properties are exported, it should only be constructed with BuildStorableNotification.
type StorableNotification struct {
	NotificationType string
	LoanID           string
	UserID           string
	OccurredAt       time.Time
	PayloadJSON      []byte
	MetadataJSON     []byte
}

// BuildStorableNotification is a factory method for StorableNotification.
//
// Returns an error if payloadJSON or metadataJSON are not valid JSON.
func BuildStorableNotification(
	notificationType string,
	loanID string,
	userID string,
	occurredAt time.Time,
	payloadJSON []byte,
	metadataJSON []byte,
) (StorableNotification, error) {
	if !json.Valid(payloadJSON) {
		return StorableNotification{}, ErrInvalidPayloadJSON
	}

	if !json.Valid(metadataJSON) {
		return StorableNotification{}, ErrInvalidMetadataJSON
	}

	return StorableNotification{
		NotificationType: notificationType,
		LoanID:           loanID,
		UserID:           userID,
		OccurredAt:       occurredAt,
		PayloadJSON:      payloadJSON,
		MetadataJSON:     metadataJSON,
	}, nil
}
