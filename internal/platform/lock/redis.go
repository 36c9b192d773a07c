package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/openjam/jam-backend/internal/platform/envutil"
	"github.com/openjam/jam-backend/internal/platform/logger"
)

const redisKeyPrefix = "jam:lock:"

// releaseScript deletes the lock key only when it still holds our token, so a
// lease that expired and was re-acquired by another process is never released
// by us.
var releaseScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

// RedisLocker implements Locker with a redis SET NX lease. The lease TTL must
// exceed the longest scoring operation; there is no renewal.
type RedisLocker struct {
	log        *logger.Logger
	rdb        *goredis.Client
	ttl        time.Duration
	wait       time.Duration
	retryDelay time.Duration
}

func NewRedisLocker(logg *logger.Logger) (*RedisLocker, error) {
	addr := envutil.String("REDIS_ADDR", "")
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisLocker{
		log:        logg.With("service", "RedisLocker"),
		rdb:        rdb,
		ttl:        envutil.Duration("SCORING_LOCK_TTL", 30*time.Second),
		wait:       envutil.Duration("SCORING_LOCK_WAIT", 3*time.Second),
		retryDelay: envutil.Duration("SCORING_LOCK_RETRY_DELAY", 50*time.Millisecond),
	}, nil
}

func (l *RedisLocker) WithLock(ctx context.Context, key string, fn func() error) error {
	fullKey := redisKeyPrefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.rdb.SetNX(ctx, fullKey, token, l.ttl).Result()
		if err != nil {
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
		// release on a fresh context so caller cancellation cannot leak the lease
		relCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(relCtx, l.rdb, []string{fullKey}, token).Err(); err != nil && err != goredis.Nil {
			l.log.Warn("failed to release scoring lock", "key", key, "error", err)
		}
	}()

	return fn()
}

func (l *RedisLocker) Close() error { return l.rdb.Close() }
