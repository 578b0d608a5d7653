/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package pool_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Snesnopic/chisel/internal/pool"
)

func TestPool_RunsEnqueuedTaskToCompletion(t *testing.T) {
	p := pool.New(context.Background(), 2, nil)

	result := p.Enqueue(func(ctx context.Context) error { return nil })
	require.NoError(t, <-result)
}

func TestPool_PropagatesTaskError(t *testing.T) {
	p := pool.New(context.Background(), 2, nil)

	boom := errors.New("boom")
	result := p.Enqueue(func(ctx context.Context) error { return boom })
	require.ErrorIs(t, <-result, boom)
}

func TestPool_LimitsConcurrencyToWorkerCount(t *testing.T) {
	p := pool.New(context.Background(), 2, nil)

	var inFlight, maxObserved int32
	results := make([]<-chan error, 0, 8)
	for i := 0; i < 8; i++ {
		results = append(results, p.Enqueue(func(ctx context.Context) error {
			cur := atomic.AddInt32(&inFlight, 1)
			for {
				prev := atomic.LoadInt32(&maxObserved)
				if cur <= prev || atomic.CompareAndSwapInt32(&maxObserved, prev, cur) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return nil
		}))
	}
	for _, r := range results {
		<-r
	}

	require.LessOrEqual(t, int(atomic.LoadInt32(&maxObserved)), 2)
}

func TestPool_WaitIdleBlocksUntilAllTasksReturn(t *testing.T) {
	p := pool.New(context.Background(), 4, nil)

	var done int32
	for i := 0; i < 16; i++ {
		p.Enqueue(func(ctx context.Context) error {
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&done, 1)
			return nil
		})
	}
	p.WaitIdle()

	require.Equal(t, int32(16), atomic.LoadInt32(&done))
}

func TestPool_RequestStopCancelsRunningTaskContext(t *testing.T) {
	p := pool.New(context.Background(), 1, nil)

	started := make(chan struct{})
	result := p.Enqueue(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	<-started
	p.RequestStop()

	require.ErrorIs(t, <-result, context.Canceled)
	require.True(t, p.Stopped())
}

func TestPool_EnqueueAfterStopFailsFast(t *testing.T) {
	p := pool.New(context.Background(), 1, nil)
	p.RequestStop()

	result := p.Enqueue(func(ctx context.Context) error { return nil })
	require.ErrorIs(t, <-result, pool.ErrStopped)
}

func TestPool_RecoversFromPanickingTask(t *testing.T) {
	p := pool.New(context.Background(), 1, nil)

	result := p.Enqueue(func(ctx context.Context) error { panic("nope") })
	err := <-result
	require.Error(t, err)

	// the pool itself must still be usable afterwards
	second := p.Enqueue(func(ctx context.Context) error { return nil })
	require.NoError(t, <-second)
}
