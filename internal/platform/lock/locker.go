package lock

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotAcquired reports that the lock could not be acquired within the
// bounded wait. Callers surface this as a retryable condition, not a crash.
var ErrNotAcquired = errors.New("scoring lock not acquired")

// Key builds the canonical lock key for a team+challenge pair. All scoring
// operations for the same pair serialize on this key.
func Key(teamID, challengeID uuid.UUID) string {
	return teamID.String() + ":" + challengeID.String()
}

// Locker provides mutual exclusion scoped to an opaque key. WithLock acquires
// the key exclusively, runs fn, and releases the key regardless of outcome.
// Acquisition failures return an error wrapping ErrNotAcquired; fn's error is
// returned unchanged. Acquisition is not reentrant: calling WithLock for a key
// already held by the same call chain blocks until the wait budget runs out.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func() error) error
}
