package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariffmcp/logger"
)

func TestNew(t *testing.T) {
	t.Run("empty DSN rejected", func(t *testing.T) {
		_, err := New(Config{DSN: "   "}, logger.NewNoop())
		assert.Error(t, err)
	})

	t.Run("opening does not dial the database", func(t *testing.T) {
		// Construction must succeed even when nothing is listening;
		// reachability is a per-acquire concern.
		pool, err := New(Config{DSN: "host=127.0.0.1 port=1 user=none dbname=none sslmode=disable"}, logger.NewNoop())
		require.NoError(t, err)
		assert.NoError(t, pool.Close())
	})
}

func TestAcquireUnreachable(t *testing.T) {
	pool, err := New(Config{
		DSN:            "host=127.0.0.1 port=1 user=none dbname=none sslmode=disable",
		AcquireTimeout: 500 * time.Millisecond,
	}, logger.NewNoop())
	require.NoError(t, err)
	defer pool.Close()

	start := time.Now()
	conn, err := pool.Acquire(context.Background())
	require.Error(t, err)
	assert.Nil(t, conn)
	// One retry is attempted, so two bounded waits is the ceiling.
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestAcquireHonorsCallerCancellation(t *testing.T) {
	pool, err := New(Config{
		DSN:            "host=127.0.0.1 port=1 user=none dbname=none sslmode=disable",
		AcquireTimeout: 5 * time.Second,
	}, logger.NewNoop())
	require.NoError(t, err)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = pool.Acquire(ctx)
	assert.Error(t, err)
}

func TestReleaseNilIsSafe(t *testing.T) {
	pool, err := New(Config{DSN: "host=127.0.0.1 port=1 user=none dbname=none sslmode=disable"}, logger.NewNoop())
	require.NoError(t, err)
	defer pool.Close()

	pool.Release(nil)
}
