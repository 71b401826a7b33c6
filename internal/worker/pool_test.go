package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolDo_RunsTask(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	var ran atomic.Bool
	err := pool.Do(context.Background(), func() error {
		ran.Store(true)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran.Load())
}

func TestPoolDo_ReturnsTaskError(t *testing.T) {
	pool := NewPool(1)
	defer pool.Close()

	boom := errors.New("store unavailable")
	err := pool.Do(context.Background(), func() error { return boom })

	assert.ErrorIs(t, err, boom)
}

func TestPoolDo_CompletesAfterCallerCancel(t *testing.T) {
	pool := NewPool(1)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	var finished atomic.Bool

	var wg sync.WaitGroup
	wg.Add(1)
	var doErr error
	go func() {
		defer wg.Done()
		doErr = pool.Do(ctx, func() error {
			close(started)
			time.Sleep(50 * time.Millisecond)
			finished.Store(true)
			return nil
		})
	}()

	<-started
	cancel() // caller abandons mid-flight
	wg.Wait()

	// A task that already started runs to completion and its result is
	// still returned to the caller.
	assert.NoError(t, doErr)
	assert.True(t, finished.Load())
}

func TestPoolDo_CancelBeforeHandoff(t *testing.T) {
	pool := NewPool(1)
	defer pool.Close()

	block := make(chan struct{})
	go pool.Do(context.Background(), func() error {
		<-block
		return nil
	})

	// Give the blocking task time to occupy the only worker.
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pool.Do(ctx, func() error { return nil })

	assert.ErrorIs(t, err, context.Canceled)
	close(block)
}

func TestPoolDo_AfterClose(t *testing.T) {
	pool := NewPool(1)
	pool.Close()

	err := pool.Do(context.Background(), func() error { return nil })

	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestPool_ConcurrentSubmissions(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	var count atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pool.Do(context.Background(), func() error {
				count.Add(1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), count.Load())
}
