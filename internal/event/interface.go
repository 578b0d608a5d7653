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

import "reflect"

// Bus is the type-erased publish/subscribe primitive. Callers should
// prefer the generic Subscribe and Publish functions below, which give
// compile-time type safety on top of this interface.
type Bus interface {
	// subscribe registers fn under the given event type. Handlers run
	// under the bus's internal lock, in subscription order, and must not
	// block or panic; a panicking handler is recovered and dropped.
	subscribe(t reflect.Type, fn func(any))

	// publish invokes every handler registered for the dynamic type of
	// ev, synchronously, on the calling goroutine.
	publish(t reflect.Type, ev any)
}

// New returns an empty Bus.
func New() Bus {
	return &bus{handlers: make(map[reflect.Type][]func(any))}
}

// Subscribe registers handler for event type E. Subscription is intended
// to happen during single-threaded startup, before Publish is called from
// worker goroutines.
func Subscribe[E any](b Bus, handler func(E)) {
	var zero E
	b.subscribe(reflect.TypeOf(zero), func(v any) {
		handler(v.(E))
	})
}

// Publish delivers ev to every handler subscribed to type E, synchronously,
// in subscription order, on the calling goroutine.
func Publish[E any](b Bus, ev E) {
	b.publish(reflect.TypeOf(ev), ev)
}
