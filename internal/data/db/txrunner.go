package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/openjam/jam-backend/internal/observability"
	"github.com/openjam/jam-backend/internal/platform/logger"
)

// UnitOfWork is one scoring decision's reads and writes against a
// transactional handle. The runner owns commit and rollback; a UnitOfWork
// never manages transaction boundaries itself.
type UnitOfWork func(tx *gorm.DB) error

const (
	defaultMaxAttempts = 5
	defaultRetryDelay  = 75 * time.Millisecond
)

// TxRunner executes units of work under serializable isolation and retries
// serialization-conflict aborts a bounded number of times. Business failures
// are not errors and are never retried here.
type TxRunner struct {
	db          *gorm.DB
	log         *logger.Logger
	metrics     *observability.Metrics
	maxAttempts int
	retryDelay  time.Duration
}

type TxRunnerOption func(*TxRunner)

func WithMaxAttempts(n int) TxRunnerOption {
	return func(r *TxRunner) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

func WithRetryDelay(d time.Duration) TxRunnerOption {
	return func(r *TxRunner) {
		if d > 0 {
			r.retryDelay = d
		}
	}
}

func WithMetrics(m *observability.Metrics) TxRunnerOption {
	return func(r *TxRunner) { r.metrics = m }
}

func NewTxRunner(db *gorm.DB, baseLog *logger.Logger, opts ...TxRunnerOption) *TxRunner {
	r := &TxRunner{
		db:          db,
		log:         baseLog.With("component", "TxRunner"),
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Serializable runs op inside one serializable transaction, committing on nil
// and rolling back on error. Conflict aborts are retried transparently up to
// the attempt budget; any other error is returned as-is.
func (r *TxRunner) Serializable(ctx context.Context, op UnitOfWork) error {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return op(tx)
		}, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err == nil {
			return nil
		}
		if !retryableTxError(err) {
			return err
		}
		lastErr = err
		if attempt == r.maxAttempts {
			break
		}
		r.metrics.IncTxRetry()
		r.log.Debug("serialization conflict, retrying transaction",
			"attempt", attempt, "max_attempts", r.maxAttempts, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.retryDelay):
		}
	}
	return fmt.Errorf("serializable transaction retry budget exhausted: %w", lastErr)
}

func retryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// serialization_failure, deadlock_detected
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	// sqlite surfaces write contention as busy/locked text
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}
