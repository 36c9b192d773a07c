package db

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/openjam/jam-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	logg, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return logg
}

func TestRetryableTxError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"wrapped pg error", errors.Join(errors.New("tx"), &pgconn.PgError{Code: "40001"}), true},
		{"sqlite busy", errors.New("database is locked"), true},
		{"sqlite table lock", errors.New("database table is locked"), true},
		{"plain error", errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := retryableTxError(tc.err); got != tc.want {
				t.Fatalf("retryableTxError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestTxRunnerOptions(t *testing.T) {
	runner := NewTxRunner(nil, testLogger(t), WithMaxAttempts(3), WithRetryDelay(time.Millisecond))
	if runner.maxAttempts != 3 {
		t.Fatalf("maxAttempts = %d, want 3", runner.maxAttempts)
	}
	if runner.retryDelay != time.Millisecond {
		t.Fatalf("retryDelay = %v, want 1ms", runner.retryDelay)
	}

	// non-positive values keep the defaults
	runner = NewTxRunner(nil, testLogger(t), WithMaxAttempts(0), WithRetryDelay(0))
	if runner.maxAttempts != defaultMaxAttempts {
		t.Fatalf("maxAttempts = %d, want default %d", runner.maxAttempts, defaultMaxAttempts)
	}
	if runner.retryDelay != defaultRetryDelay {
		t.Fatalf("retryDelay = %v, want default %v", runner.retryDelay, defaultRetryDelay)
	}
}
