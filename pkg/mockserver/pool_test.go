package mockserver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolBlocksAtCapacityUntilReleased(t *testing.T) {
	pool := NewPool(WithPoolSize(1))

	first, err := pool.Acquire(context.Background())
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		second, err := pool.Acquire(context.Background())
		require.NoError(t, err)
		defer second.Close()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second Acquire returned before the first slot was released")
	case <-time.After(50 * time.Millisecond):
	}

	first.Close()

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("second Acquire did not unblock after release")
	}
}

func TestPoolAcquireRespectsContextCancellation(t *testing.T) {
	pool := NewPool(WithPoolSize(1))
	guard, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	defer guard.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = pool.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestServersInOnePoolListenOnDistinctPorts(t *testing.T) {
	pool := NewPool(WithPoolSize(2))
	a, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	defer a.Close()
	b, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	defer b.Close()

	assert.NotEqual(t, a.Server().HostWithPort(), b.Server().HostWithPort())
}

func TestGuardCloseIsIdempotent(t *testing.T) {
	pool := NewPool(WithPoolSize(1))
	guard, err := pool.Acquire(context.Background())
	require.NoError(t, err)

	guard.Close()
	assert.NotPanics(t, guard.Close)
}
