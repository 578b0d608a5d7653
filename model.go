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

package chisel

import (
	"context"
	"sync"

	"github.com/Snesnopic/chisel/internal/config"
	"github.com/Snesnopic/chisel/internal/event"
	"github.com/Snesnopic/chisel/internal/executor"
	"github.com/Snesnopic/chisel/internal/logging"
	"github.com/Snesnopic/chisel/internal/mimesniff"
	"github.com/Snesnopic/chisel/internal/processor"
	"github.com/Snesnopic/chisel/internal/registry"
)

// EncodeMode re-exports internal/config's encode mode so callers embedding
// this package never need to import internal/config themselves.
type EncodeMode = config.EncodeMode

const (
	ModePipe     = config.ModePipe
	ModeParallel = config.ModeParallel
)

// Facade is the PIMPL-style wrapper described by
// original_source/libchisel/include/chisel.hpp, reworked as a Go builder:
// every configuration setter returns the receiver so calls chain the way
// the C++ API's `Chisel&`-returning setters did.
type Facade struct {
	mu       sync.Mutex
	settings config.Settings
	registry registry.Registry
	detector mimesniff.Detector
	logger   logging.Logger
	observer *Observer

	running executor.Executor
}

// New returns a Facade with every documented default and reg as its
// processor registry. reg is typically built once at process startup via
// registry.New(procs...) with every format plug-in the caller wants
// available.
func New(reg registry.Registry) *Facade {
	return &Facade{
		settings: config.Defaults(),
		registry: reg,
		detector: mimesniff.New(),
	}
}

// PreserveMetadata enables or disables metadata preservation. Default: true.
func (f *Facade) PreserveMetadata(v bool) *Facade {
	f.settings.PreserveMetadata = v
	return f
}

// VerifyChecksums enables or disables the raw-checksum acceptance test.
// Default: false.
func (f *Facade) VerifyChecksums(v bool) *Facade {
	f.settings.VerifyChecksums = v
	return f
}

// DryRun enables or disables dry-run mode. Default: false.
func (f *Facade) DryRun(v bool) *Facade {
	f.settings.DryRun = v
	return f
}

// Threads sets the worker pool size. Default: hardware concurrency / 2.
func (f *Facade) Threads(n int) *Facade {
	if n > 0 {
		f.settings.Threads = n
	}
	return f
}

// Mode sets the encode strategy. Default: ModePipe.
func (f *Facade) Mode(m EncodeMode) *Facade {
	f.settings.Mode = m
	return f
}

// OutputDirectory sets a separate output directory. Default: empty (in-place).
func (f *Facade) OutputDirectory(dir string) *Facade {
	f.settings.OutputDir = dir
	return f
}

// FallbackFormat sets the container format Finalize targets when a
// container's own format can be read but not rewritten. Default: Unknown
// (no rewrite attempted; the extracted children are still processed
// in place).
func (f *Facade) FallbackFormat(format processor.ContainerFormat) *Facade {
	f.settings.Fallback = format
	return f
}

// WithDetector overrides the default gabriel-vasile/mimetype-backed
// detector; mainly useful for tests.
func (f *Facade) WithDetector(d mimesniff.Detector) *Facade {
	f.detector = d
	return f
}

// WithLogger attaches l so Recompress forwards its log lines through
// l.AddObserver for the duration of the run, per SetObserver's on_log
// slot.
func (f *Facade) WithLogger(l logging.Logger) *Facade {
	f.logger = l
	return f
}

// SetObserver installs o's callback slots. The caller retains ownership;
// a nil Observer clears any previously installed one.
func (f *Facade) SetObserver(o *Observer) *Facade {
	f.observer = o
	return f
}

// Recompress blocks until every phase of the pipeline has run over
// paths. It is safe to call Stop concurrently from another goroutine
// (e.g. a signal handler) while Recompress is in flight.
func (f *Facade) Recompress(paths []string) error {
	bus := event.New()

	if f.logger != nil && f.observer != nil && f.observer.OnLog != nil {
		removeLogObserver := f.logger.AddObserver(logging.ObserverFunc(f.observer.OnLog))
		defer removeLogObserver()
	}

	if f.observer != nil {
		subscribeObserver(bus, f.observer)
	}

	exec := executor.New(executor.Deps{
		Registry: f.registry,
		Bus:      bus,
		Detector: f.detector,
		Settings: f.settings,
		Logger:   f.logger,
	})

	f.mu.Lock()
	f.running = exec
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.running = nil
		f.mu.Unlock()
	}()

	return exec.Recompress(context.Background(), paths)
}

// Stop requests cancellation of the currently running Recompress call, if
// any. It is a no-op if no run is in flight.
func (f *Facade) Stop() {
	f.mu.Lock()
	exec := f.running
	f.mu.Unlock()
	if exec != nil {
		exec.RequestStop()
	}
}
