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

	"github.com/vbauerster/mpb/v8"

	"github.com/Snesnopic/chisel/internal/config"
	"github.com/Snesnopic/chisel/internal/event"
	"github.com/Snesnopic/chisel/internal/logging"
	"github.com/Snesnopic/chisel/internal/mimesniff"
	"github.com/Snesnopic/chisel/internal/registry"
)

// Executor owns one run's work list and finalize stack. It is not safe
// to call Recompress concurrently on the same Executor, and an Executor
// must not be reused after Recompress returns.
type Executor interface {
	// Recompress runs all three phases over paths and blocks until they
	// complete or the stop flag is observed everywhere it is checked.
	Recompress(ctx context.Context, paths []string) error

	// RequestStop sets the stop flag and forwards it to the pool. Safe
	// to call concurrently with Recompress, from a signal handler.
	RequestStop()

	Stopped() bool
}

// Deps bundles the collaborators an Executor needs; every field is
// required except Bar, which may be nil to run without progress
// reporting.
type Deps struct {
	Registry registry.Registry
	Bus      event.Bus
	Detector mimesniff.Detector
	Settings config.Settings
	Bar      *mpb.Bar

	// Logger receives the Replacement Policy's dry-run intent lines and
	// retry warnings. May be nil, in which case those lines are dropped.
	Logger logging.Logger
}

// New returns an Executor ready for exactly one Recompress call.
func New(deps Deps) Executor {
	return newExecutor(deps)
}
