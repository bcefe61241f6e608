package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryBackoff_ExponentialWithJitter(t *testing.T) {
	for attempt := 0; attempt < 3; attempt++ {
		base := defaultRetryBaseWait << attempt
		minExpected := time.Duration(float64(base) * (1 - retryJitterFraction))
		maxExpected := time.Duration(float64(base) * (1 + retryJitterFraction))

		for i := 0; i < 20; i++ {
			d := retryBackoff(attempt)
			assert.GreaterOrEqual(t, d, minExpected, "attempt %d: %v < %v", attempt, d, minExpected)
			assert.LessOrEqual(t, d, maxExpected, "attempt %d: %v > %v", attempt, d, maxExpected)
		}
	}
}

func TestRetryBackoff_NegativeAttempt(t *testing.T) {
	d := retryBackoff(-3)
	assert.LessOrEqual(t, d, time.Duration(float64(defaultRetryBaseWait)*(1+retryJitterFraction)))
}

func TestSleepCtx_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sleepCtx(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"dial tcp 127.0.0.1:5432: connection refused", true},
		{"connection reset by peer", true},
		{"broken pipe", true},
		{"i/o timeout", true},
		{"unexpected EOF", true},
		{"could not connect to server", true},
		{"syntax error at or near", false},
		{"duplicate key value violates unique constraint", false},
		{"relation does not exist", false},
	}

	assert.False(t, isConnectionError(nil))
	for _, tc := range tests {
		t.Run(tc.msg, func(t *testing.T) {
			assert.Equal(t, tc.want, isConnectionError(errStr(tc.msg)))
		})
	}
}

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := DefaultPostgresConfig()
	cfg.Password = "p@ss word"

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://luxe:")
	assert.Contains(t, dsn, "localhost:5432/luxe_vogue")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.NotContains(t, dsn, "p@ss word")
}

func TestRedisConfig_Options(t *testing.T) {
	cfg := DefaultRedisConfig()
	cfg.Host = "cache"
	cfg.DB = 2

	opts := cfg.Options()
	require.NotNil(t, opts)
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 10, opts.PoolSize)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	cfg := DefaultRedisConfig()
	cfg.Port = 1
	cfg.DialTimeout = 100 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	client, err := NewRedisClient(ctx, cfg)
	assert.Error(t, err)
	assert.Nil(t, client)
}

type errStr string

func (e errStr) Error() string { return string(e) }
