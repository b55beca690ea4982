package requestloan

import (
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

const (
	commandType = "RequestLoan"
)

// Command represents the intent of a user to borrow a book.
type Command struct {
	UserID     core.UserIDString
	BookID     core.BookIDString
	Book       core.BookSnapshot
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID core.UserIDString, bookID core.BookIDString, book core.BookSnapshot, occurredAt time.Time) Command {
	return Command{
		UserID:     userID,
		BookID:     bookID,
		Book:       book,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
