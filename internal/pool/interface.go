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
	"errors"

	"github.com/vbauerster/mpb/v8"
)

// ErrStopped is returned to a task's result channel when the pool was
// stopped before the task could acquire a slot, or before it was ever
// dispatched.
var ErrStopped = errors.New("pool: stop requested")

// Task is a unit of work submitted to a Pool. It must observe ctx.Done
// and return promptly once it fires.
type Task func(ctx context.Context) error

// Pool runs Tasks on a fixed number of concurrent goroutines.
type Pool interface {
	// Enqueue schedules fn for execution and returns a channel that
	// receives exactly one value: fn's error (nil on success), or
	// ErrStopped if the pool was stopped before fn ran.
	Enqueue(fn Task) <-chan error

	// WaitIdle blocks until every task enqueued so far has returned.
	WaitIdle()

	// RequestStop cancels the context handed to every running and
	// future task, and causes Enqueue to fail fast for anything
	// submitted afterwards. Idempotent.
	RequestStop()

	// Stopped reports whether RequestStop has been called.
	Stopped() bool
}

// New returns a Pool that runs at most workers Tasks concurrently. bar,
// if non-nil, is incremented once per completed task regardless of
// outcome; pass nil to run without progress reporting.
func New(parent context.Context, workers int, bar *mpb.Bar) Pool {
	if workers < 1 {
		workers = 1
	}
	return newPool(parent, workers, bar)
}
