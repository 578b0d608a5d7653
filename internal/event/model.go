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

package event

import (
	"fmt"
	"os"
	"reflect"
	"sync"
)

type bus struct {
	mu       sync.Mutex
	handlers map[reflect.Type][]func(any)
}

func (b *bus) subscribe(t reflect.Type, fn func(any)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], fn)
}

// publish invokes every handler registered for t, in subscription order, on
// the calling goroutine, while holding b.mu. A handler that panics is
// recovered and reported to stderr rather than allowed to unwind into the
// pipeline; one misbehaving observer must not abort an in-flight
// Analyze/Process/Finalize phase.
func (b *bus) publish(t reflect.Type, ev any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, fn := range b.handlers[t] {
		dispatch(fn, ev)
	}
}

func dispatch(fn func(any), ev any) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "event: handler for %T panicked: %v\n", ev, r)
		}
	}()
	fn(ev)
}
