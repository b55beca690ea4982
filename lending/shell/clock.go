package shell

import (
	"time"
)

// Clock returns the current time. Handlers read it once per command so that all
// decisions of one operation share the same now.
type Clock func() time.Time

// SystemClock returns time.Now in UTC.
func SystemClock() Clock {
	return func() time.Time {
		return time.Now().UTC()
	}
}

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}
