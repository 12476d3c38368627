// Package idx generates identifiers for new entities. Identifiers are ULIDs:
// fixed-length (26 characters), lexicographically sortable by creation time,
// and collision-free in practice without any storage coordination.
package idx

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewID returns a new ULID string for the current UTC time.
// Identifiers generated later sort after identifiers generated earlier.
func NewID() (string, error) {
	return NewIDAt(time.Now().UTC())
}

// NewIDAt returns a ULID string for the given timestamp. A zero timestamp is
// replaced by the current UTC time.
func NewIDAt(now time.Time) (string, error) {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
