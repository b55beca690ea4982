package notification

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// ErrMarshalingPayloadFailed is returned when an event cannot be encoded.
var ErrMarshalingPayloadFailed = errors.New("marshaling notification payload failed")

// Payload is the JSON document stored in the outbox and published on Redis.
type Payload struct {
	Type      string    `json:"type"`
	LoanID    string    `json:"loanId"`
	UserID    string    `json:"userId"`
	Status    string    `json:"newStatus"`
	Timestamp time.Time `json:"timestamp"`
	Notes     *string   `json:"notes,omitempty"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
}

// PayloadFrom converts an event into its wire form.
func PayloadFrom(event Event) Payload {
	rendered := event.Render()

	return Payload{
		Type:      event.NotificationType(),
		LoanID:    event.LoanID,
		UserID:    event.UserID,
		Status:    string(event.NewStatus),
		Timestamp: event.Timestamp.UTC(),
		Notes:     event.Notes,
		Title:     rendered.Title,
		Message:   rendered.Message,
	}
}

// MarshalPayload encodes the wire form of event.
func MarshalPayload(event Event) ([]byte, error) {
	payloadJSON, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(PayloadFrom(event))
	if err != nil {
		return nil, errors.Join(ErrMarshalingPayloadFailed, err)
	}

	return payloadJSON, nil
}
