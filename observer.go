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
	"github.com/sirupsen/logrus"

	"github.com/Snesnopic/chisel/internal/event"
)

// Observer mirrors original_source/libchisel/include/chisel.hpp's
// ChiselObserver struct: four independent callback slots instead of a
// virtual interface, any of which may be left nil. None of the callbacks
// is invoked concurrently with another, since the bus dispatches
// synchronously on whichever goroutine published the event.
type Observer struct {
	// OnFileStart fires once per file as Phase 2 begins working it.
	OnFileStart func(path string)

	// OnFileFinish fires once per file after the Replacement Policy has
	// run, whether or not the replacement actually took place.
	OnFileFinish func(path string, sizeBefore, sizeAfter uint64, replaced bool)

	// OnFileError fires on a codec or replacement failure.
	OnFileError func(path string, message string)

	// OnLog fires for every log line emitted during the run, in addition
	// to whatever sinks the attached Logger already writes to.
	OnLog func(level logrus.Level, message string)
}

// subscribeObserver wires o's non-nil slots to bus. FileProcessComplete
// with Replaced == false still reaches OnFileFinish: the original API
// makes no distinction between "shrank but wasn't written" and "written",
// leaving that judgment to the replaced flag.
func subscribeObserver(bus event.Bus, o *Observer) {
	if o.OnFileStart != nil {
		event.Subscribe(bus, func(e event.FileProcessStart) {
			o.OnFileStart(e.Path)
		})
	}
	if o.OnFileFinish != nil {
		event.Subscribe(bus, func(e event.FileProcessComplete) {
			o.OnFileFinish(e.Path, e.OriginalSize, e.NewSize, e.Replaced)
		})
	}
	if o.OnFileError != nil {
		event.Subscribe(bus, func(e event.FileProcessError) {
			o.OnFileError(e.Path, e.Message)
		})
		event.Subscribe(bus, func(e event.ContainerFinalizeError) {
			o.OnFileError(e.Path, e.Message)
		})
	}
}
