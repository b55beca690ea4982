package shell

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDGenerator produces new loan IDs.
type IDGenerator interface {
	NewID() string
}

// ULIDGenerator creates lexicographically sortable ULIDs.
// IDs generated within the same millisecond are strictly increasing.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy io.Reader
}

// NewULIDGenerator creates a generator with monotonic entropy seeded from crypto/rand.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// NewID returns the next ULID as a 26 character string.
func (g *ULIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}

// IsValidLoanID reports whether id parses as a ULID.
func IsValidLoanID(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}
