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

import (
	"strings"
	"sync"

	"github.com/Snesnopic/chisel/internal/processor"
)

type registry struct {
	mu    sync.RWMutex
	procs []processor.Processor
}

func (r *registry) Register(p processor.Processor) {
	if p == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.procs = append(r.procs, p)
}

func (r *registry) FindByMIME(mime string) []processor.Processor {
	if mime == "" {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []processor.Processor
	for _, p := range r.procs {
		for _, m := range p.SupportedMIMETypes() {
			if strings.EqualFold(m, mime) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func (r *registry) FindByExtension(ext string) []processor.Processor {
	if ext == "" {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []processor.Processor
	for _, p := range r.procs {
		for _, e := range p.SupportedExtensions() {
			if strings.EqualFold(e, ext) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func (r *registry) Resolve(mime, ext string) []processor.Processor {
	if procs := r.FindByMIME(mime); len(procs) > 0 {
		return procs
	}
	return r.FindByExtension(ext)
}

func (r *registry) All() []processor.Processor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]processor.Processor, len(r.procs))
	copy(out, r.procs)
	return out
}
