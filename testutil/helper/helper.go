package helper

import (
	"crypto/rand"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
)

// FakeClock returns the fixed point in time the tests are anchored on.
func FakeClock() time.Time {
	return time.Unix(0, 0).UTC()
}

// GivenUniqueLoanID returns a fresh ULID string.
func GivenUniqueLoanID(t testing.TB) string {
	id, err := ulid.New(ulid.Now(), rand.Reader)
	assert.NoError(t, err, "error in arranging test data")

	return id.String()
}
