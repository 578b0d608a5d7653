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

package pool

import (
	"context"
	"fmt"
	"sync"

	"github.com/vbauerster/mpb/v8"
	"golang.org/x/sync/semaphore"
)

type pool struct {
	ctx    context.Context
	cancel context.CancelFunc
	sem    *semaphore.Weighted
	bar    *mpb.Bar

	mu      sync.Mutex
	idle    *sync.Cond
	pending int
	stopped bool
}

func newPool(parent context.Context, workers int, bar *mpb.Bar) *pool {
	ctx, cancel := context.WithCancel(parent)
	p := &pool{
		ctx:    ctx,
		cancel: cancel,
		sem:    semaphore.NewWeighted(int64(workers)),
		bar:    bar,
	}
	p.idle = sync.NewCond(&p.mu)
	return p
}

func (p *pool) Enqueue(fn Task) <-chan error {
	result := make(chan error, 1)

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		result <- ErrStopped
		close(result)
		return result
	}
	p.pending++
	p.mu.Unlock()

	go p.run(fn, result)
	return result
}

func (p *pool) run(fn Task, result chan<- error) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pool: task panicked: %v", r)
		}
		result <- err
		close(result)

		p.mu.Lock()
		p.pending--
		if p.pending == 0 {
			p.idle.Broadcast()
		}
		p.mu.Unlock()

		if p.bar != nil {
			p.bar.Increment()
		}
	}()

	if acqErr := p.sem.Acquire(p.ctx, 1); acqErr != nil {
		err = ErrStopped
		return
	}
	defer p.sem.Release(1)

	if p.ctx.Err() != nil {
		err = ErrStopped
		return
	}
	err = fn(p.ctx)
}

func (p *pool) WaitIdle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.pending > 0 {
		p.idle.Wait()
	}
}

func (p *pool) RequestStop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	p.mu.Unlock()
	p.cancel()
}

func (p *pool) Stopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}
