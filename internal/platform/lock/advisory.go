package lock

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/openjam/jam-backend/internal/platform/envutil"
	"github.com/openjam/jam-backend/internal/platform/logger"
)

// AdvisoryLocker implements Locker with postgres session advisory locks,
// hashing the key server-side. Acquire and release run on one pinned
// connection; the lock dies with the session if the process does.
type AdvisoryLocker struct {
	db         *gorm.DB
	log        *logger.Logger
	wait       time.Duration
	retryDelay time.Duration
}

func NewAdvisoryLocker(db *gorm.DB, logg *logger.Logger) *AdvisoryLocker {
	return &AdvisoryLocker{
		db:         db,
		log:        logg.With("service", "AdvisoryLocker"),
		wait:       envutil.Duration("SCORING_LOCK_WAIT", 3*time.Second),
		retryDelay: envutil.Duration("SCORING_LOCK_RETRY_DELAY", 50*time.Millisecond),
	}
}

func (l *AdvisoryLocker) WithLock(ctx context.Context, key string, fn func() error) error {
	return l.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		deadline := time.Now().Add(l.wait)
		for {
			var ok bool
			if err := conn.Raw(
				"SELECT pg_try_advisory_lock(hashtextextended(?, 0))", key,
			).Scan(&ok).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrNotAcquired, err)
			}
			if ok {
				break
			}
			if time.Now().After(deadline) {
				return fmt.Errorf("%w: key %q busy", ErrNotAcquired, key)
			}
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrNotAcquired, ctx.Err())
			case <-time.After(l.retryDelay):
			}
		}

		defer func() {
			if err := conn.Exec(
				"SELECT pg_advisory_unlock(hashtextextended(?, 0))", key,
			).Error; err != nil {
				l.log.Warn("failed to release advisory lock", "key", key, "error", err)
			}
		}()

		return fn()
	})
}
