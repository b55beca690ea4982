package core

// Status is the lifecycle state of a LoanRequest.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusReturned Status = "returned"
)

// AllStatuses lists every status in lifecycle order.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusRejected, StatusReturned}
}

// ParseStatus returns the Status named by s, or ErrInvalidArgument.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", InvalidArgumentError("unknown status %q", s)
	}

	return status, nil
}

// IsValid reports whether s is one of the four known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusReturned:
		return true
	default:
		return false
	}
}

// IsActive reports whether a loan in this status blocks another request for the same book.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusApproved
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusReturned
}

func (s Status) String() string {
	return string(s)
}
