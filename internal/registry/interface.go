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

package registry

import "github.com/Snesnopic/chisel/internal/processor"

// Registry owns every processor instance for the lifetime of one
// execution and exposes lookups that preserve registration order. All
// lookups are safe for concurrent readers; the registry is read-only
// after construction.
type Registry interface {
	// Register appends a processor. It is only safe to call before the
	// registry is shared across goroutines (construction time).
	Register(p processor.Processor)

	// FindByMIME returns every registered processor whose supported MIME
	// set contains mime, in registration order.
	FindByMIME(mime string) []processor.Processor

	// FindByExtension returns every registered processor whose supported
	// extension set contains ext (case-insensitive), in registration
	// order.
	FindByExtension(ext string) []processor.Processor

	// Resolve is the MIME-first, extension-fallback lookup every Analyze/
	// Process/Finalize step performs: try FindByMIME, and if that yields
	// nothing, fall back to FindByExtension.
	Resolve(mime, ext string) []processor.Processor

	// All returns every registered processor in registration order.
	All() []processor.Processor
}

// New returns a Registry holding procs in the given order (skipping nil
// entries), ready for further Register calls followed by concurrent-safe
// lookups.
func New(procs ...processor.Processor) Registry {
	r := &registry{}
	for _, p := range procs {
		r.Register(p)
	}
	return r
}
