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

package executor

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/vbauerster/mpb/v8"

	"github.com/Snesnopic/chisel/internal/config"
	"github.com/Snesnopic/chisel/internal/event"
	"github.com/Snesnopic/chisel/internal/logging"
	"github.com/Snesnopic/chisel/internal/mimesniff"
	"github.com/Snesnopic/chisel/internal/pool"
	"github.com/Snesnopic/chisel/internal/processor"
	"github.com/Snesnopic/chisel/internal/registry"
)

type executor struct {
	registry registry.Registry
	bus      event.Bus
	detector mimesniff.Detector
	settings config.Settings
	logger   logging.Logger
	bar      *mpb.Bar

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	pool    pool.Pool
	stopped atomic.Bool

	workList      []string
	finalizeStack []*processor.ExtractionRecord
}

func newExecutor(deps Deps) *executor {
	return &executor{
		registry: deps.Registry,
		bus:      deps.Bus,
		detector: deps.Detector,
		settings: deps.Settings,
		logger:   deps.Logger,
		bar:      deps.Bar,
		ctx:      context.Background(),
		cancel:   func() {},
	}
}

func (e *executor) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Infof(format, args...)
	}
}

// runCtx returns the context live for the current Recompress call. Only
// meaningful while Recompress is executing.
func (e *executor) runCtx() context.Context {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctx
}

func (e *executor) RequestStop() {
	e.stopped.Store(true)
	e.mu.Lock()
	cancel := e.cancel
	p := e.pool
	e.mu.Unlock()
	cancel()
	if p != nil {
		p.RequestStop()
	}
}

func (e *executor) Stopped() bool {
	return e.stopped.Load()
}

var junkNames = []string{".ds_store", "desktop.ini"}

func isJunk(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	if strings.HasPrefix(base, "._") {
		return true
	}
	for _, j := range junkNames {
		if base == j {
			return true
		}
	}
	return false
}

// resolveCandidates mirrors every phase's "MIME first, extension
// fallback" lookup (spec.md §4.5.1 step 3, §4.5.2 step 3, §4.5.3 step 2).
func (e *executor) resolveCandidates(path string) []processor.Processor {
	mime := e.detector.Detect(path)
	ext := strings.ToLower(filepath.Ext(path))
	return e.registry.Resolve(mime, ext)
}

