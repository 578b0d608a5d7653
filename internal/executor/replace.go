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
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"

	"github.com/Snesnopic/chisel/internal/event"
)

const (
	outputDirRetries = 10
	outputDirBackoff = 250 * time.Millisecond

	inPlaceRetries = 10
	inPlaceBackoff = 500 * time.Millisecond
)

// applyReplacement is the Replacement Policy (spec.md §4.5.4), the only
// code path that mutates a user-visible path. candidate is deleted on
// every exit path except a successful output-dir or in-place rename.
func (e *executor) applyReplacement(originalPath, candidate string, originalSize uint64, elapsed time.Duration) {
	info, err := os.Stat(candidate)
	if err != nil || info.Size() == 0 {
		_ = os.Remove(candidate)
		event.Publish(e.bus, event.FileProcessError{Path: originalPath, Message: "Failed to create optimized file"})
		return
	}
	newSize := uint64(info.Size())

	if e.settings.DryRun {
		e.logf("replace: dry-run would replace %s (%d -> %d bytes)", originalPath, originalSize, newSize)
		_ = os.Remove(candidate)
		event.Publish(e.bus, event.FileProcessComplete{
			Path: originalPath, OriginalSize: originalSize, NewSize: newSize,
			Replaced: false, Duration: elapsed,
		})
		return
	}

	var dest string
	var retries int
	var backoff time.Duration
	if e.settings.OutputDir != "" {
		dest = filepath.Join(e.settings.OutputDir, filepath.Base(originalPath))
		retries, backoff = outputDirRetries, outputDirBackoff
	} else {
		dest = originalPath
		retries, backoff = inPlaceRetries, inPlaceBackoff
	}

	if err := renameWithRetry(candidate, dest, retries, backoff, e.logf); err != nil {
		_ = os.Remove(candidate)
		event.Publish(e.bus, event.FileProcessError{Path: originalPath, Message: fmt.Sprintf("Rename failed: %v", err)})
		return
	}

	event.Publish(e.bus, event.FileProcessComplete{
		Path: originalPath, OriginalSize: originalSize, NewSize: newSize,
		Replaced: true, Duration: elapsed,
	})
}

// renameWithRetry replaces dest with src, retrying up to retries times on
// failure (renames can race transient sharing/access errors on some
// platforms). It uses natefinch/atomic so the destination is never left
// half-written if the process dies mid-rename.
func renameWithRetry(src, dest string, retries int, backoff time.Duration, logf func(string, ...any)) error {
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if err := atomic.ReplaceFile(src, dest); err == nil {
			return nil
		} else {
			lastErr = err
			if attempt < retries {
				logf("replace: rename attempt %d/%d for %s failed: %v", attempt+1, retries, dest, err)
				time.Sleep(backoff)
			}
		}
	}
	return lastErr
}
