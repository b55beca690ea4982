package notification

import (
	"context"
	"errors"
	"sync"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell"
)

const (
	logMsgNotificationEmitted = "loan notification emitted"

	logAttrLoanID           = "loan_id"
	logAttrUserID           = "user_id"
	logAttrNotificationType = "notification_type"
	logAttrTitle            = "title"
)

// Emitter delivers notification events.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// LogEmitter writes each event as one structured log line.
type LogEmitter struct {
	logger shell.ContextualLogger
}

// NewLogEmitter creates a LogEmitter.
func NewLogEmitter(logger shell.ContextualLogger) *LogEmitter {
	return &LogEmitter{logger: logger}
}

// Emit logs the event at info level.
func (e *LogEmitter) Emit(ctx context.Context, event Event) error {
	if e.logger == nil {
		return nil
	}

	e.logger.InfoContext(
		ctx,
		logMsgNotificationEmitted,
		logAttrLoanID, event.LoanID,
		logAttrUserID, event.UserID,
		logAttrNotificationType, event.NotificationType(),
		logAttrTitle, event.Render().Title,
	)

	return nil
}

// FanOut emits every event to all of its emitters, even if some fail.
type FanOut []Emitter

// Emit calls every emitter and returns their errors joined.
func (f FanOut) Emit(ctx context.Context, event Event) error {
	var errs []error

	for _, emitter := range f {
		if err := emitter.Emit(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Recorder keeps emitted events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit records the event.
func (r *Recorder) Emit(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)

	return nil
}

// Events returns a copy of the recorded events in emission order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Event(nil), r.events...)
}

// ForUser returns the recorded events of one user in emission order.
func (r *Recorder) ForUser(userID string) []Event {
	events := make([]Event, 0)
	for _, event := range r.Events() {
		if event.UserID == userID {
			events = append(events, event)
		}
	}

	return events
}

var (
	_ Emitter = (*LogEmitter)(nil)
	_ Emitter = FanOut(nil)
	_ Emitter = (*Recorder)(nil)
)
