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
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/Snesnopic/chisel/internal/event"
	"github.com/Snesnopic/chisel/internal/processor"
)

// finalizeAll pops the finalize stack LIFO so inner containers become
// coherent before the outer containers that hold them attempt to repack.
// Once the stop flag is observed, remaining records are popped without
// repacking and their temp directories are simply removed, honoring the
// promise that no temp residue survives a cancelled run. Cleanup failures
// during that drain are non-fatal to the run but are aggregated and
// returned so Recompress can surface them.
func (e *executor) finalizeAll() error {
	var result *multierror.Error
	for len(e.finalizeStack) > 0 {
		record := e.finalizeStack[len(e.finalizeStack)-1]
		e.finalizeStack = e.finalizeStack[:len(e.finalizeStack)-1]

		if e.Stopped() {
			if err := os.RemoveAll(record.TempDir); err != nil {
				result = multierror.Append(result, fmt.Errorf("cleanup %s: %w", record.TempDir, err))
			}
			continue
		}
		e.finalizeOne(record)
	}
	return result.ErrorOrNil()
}

func (e *executor) finalizeOne(record *processor.ExtractionRecord) {
	event.Publish(e.bus, event.ContainerFinalizeStart{Path: record.OriginalPath})

	candidates := e.resolveCandidates(record.OriginalPath)
	if len(candidates) == 0 {
		_ = os.RemoveAll(record.TempDir)
		event.Publish(e.bus, event.ContainerFinalizeError{
			Path: record.OriginalPath, Message: "Unsupported format",
		})
		return
	}
	primary := candidates[0]

	out, err := primary.FinalizeExtraction(e.runCtx(), record, e.settings.Fallback)
	if err != nil {
		event.Publish(e.bus, event.ContainerFinalizeError{Path: record.OriginalPath, Message: err.Error()})
		return
	}

	if out == "" {
		info, statErr := os.Stat(record.OriginalPath)
		var size uint64
		if statErr == nil {
			size = uint64(info.Size())
		}
		event.Publish(e.bus, event.ContainerFinalizeComplete{Path: record.OriginalPath, FinalSize: size})
		return
	}

	info, err := os.Stat(record.OriginalPath)
	if err != nil {
		_ = os.Remove(out)
		event.Publish(e.bus, event.ContainerFinalizeError{Path: record.OriginalPath, Message: err.Error()})
		return
	}
	originalSize := uint64(info.Size())

	e.applyReplacement(record.OriginalPath, out, originalSize, 0*time.Second)

	finalInfo, statErr := os.Stat(record.OriginalPath)
	var finalSize uint64
	if statErr == nil {
		finalSize = uint64(finalInfo.Size())
	} else {
		finalSize = originalSize
	}
	event.Publish(e.bus, event.ContainerFinalizeComplete{Path: record.OriginalPath, FinalSize: finalSize})
}
