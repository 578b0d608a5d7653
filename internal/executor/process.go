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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Snesnopic/chisel/internal/config"
	"github.com/Snesnopic/chisel/internal/event"
	"github.com/Snesnopic/chisel/internal/pool"
	"github.com/Snesnopic/chisel/internal/processor"
)

// processAll enqueues every work-list item on the pool and blocks until
// they have all run. The `!e.Stopped()` guard in Recompress only narrows
// the race window before this call; a stop requested after that check but
// before (or during) enqueue still makes Enqueue fail loudly with
// pool.ErrStopped instead of running processOne, so results are collected
// and any such path is still accounted for with its own skip event rather
// than silently dropped.
func (e *executor) processAll() {
	results := make([]<-chan error, len(e.workList))
	for i, path := range e.workList {
		p := path
		results[i] = e.pool.Enqueue(func(ctx context.Context) error {
			e.processOne(ctx, p)
			return nil
		})
	}
	e.pool.WaitIdle()

	for i, result := range results {
		if err := <-result; err != nil {
			if errors.Is(err, pool.ErrStopped) {
				event.Publish(e.bus, event.FileProcessSkipped{Path: e.workList[i], Reason: "Interrupted"})
				continue
			}
			event.Publish(e.bus, event.FileProcessError{Path: e.workList[i], Message: err.Error()})
		}
	}
}

func (e *executor) processOne(ctx context.Context, path string) {
	if ctx.Err() != nil || e.Stopped() {
		event.Publish(e.bus, event.FileProcessSkipped{Path: path, Reason: "Interrupted"})
		return
	}

	event.Publish(e.bus, event.FileProcessStart{Path: path})

	candidates := e.resolveCandidates(path)
	if len(candidates) == 0 {
		event.Publish(e.bus, event.FileProcessSkipped{Path: path, Reason: "Unsupported format"})
		return
	}
	primary := candidates[0]

	info, err := os.Stat(path)
	if err != nil {
		event.Publish(e.bus, event.FileProcessError{Path: path, Message: err.Error()})
		return
	}
	originalSize := uint64(info.Size())
	start := time.Now()

	var winner string
	switch e.settings.Mode {
	case config.ModeParallel:
		winner, err = e.runParallel(ctx, path, candidates)
	default:
		winner, err = e.runPipe(ctx, path, candidates)
	}
	if err != nil {
		event.Publish(e.bus, event.FileProcessError{Path: path, Message: err.Error()})
		return
	}
	if winner == "" {
		event.Publish(e.bus, event.FileProcessSkipped{Path: path, Reason: "No size improvement"})
		return
	}

	winnerInfo, err := os.Stat(winner)
	if err != nil {
		_ = os.Remove(winner)
		event.Publish(e.bus, event.FileProcessError{Path: path, Message: err.Error()})
		return
	}
	newSize := uint64(winnerInfo.Size())

	if newSize == 0 || newSize >= originalSize {
		_ = os.Remove(winner)
		event.Publish(e.bus, event.FileProcessSkipped{Path: path, Reason: "No size improvement"})
		return
	}

	if e.settings.VerifyChecksums {
		equal, err := primary.RawEqual(path, winner)
		if err != nil {
			_ = os.Remove(winner)
			event.Publish(e.bus, event.FileProcessError{Path: path, Message: err.Error()})
			return
		}
		if !equal {
			_ = os.Remove(winner)
			event.Publish(e.bus, event.FileProcessChecksumMismatch{Path: path})
			return
		}
	}

	e.applyReplacement(path, winner, originalSize, time.Since(start))
}

// runPipe chains candidates left-to-right, feeding candidate i+1 the
// output of candidate i. It returns the path of the last successful
// intermediate, or "" if nothing ran.
func (e *executor) runPipe(ctx context.Context, original string, candidates []processor.Processor) (string, error) {
	current := original
	var produced string
	tag := uuid.NewString()

	for i, p := range candidates {
		if ctx.Err() != nil || e.Stopped() {
			if produced != "" {
				_ = os.Remove(produced)
			}
			return "", nil
		}
		if !p.CanRecompress() {
			continue
		}

		out := fmt.Sprintf("%s.%s.pipe.%d.tmp", original, tag, i)
		if err := p.Recompress(ctx, current, out, e.settings.PreserveMetadata); err != nil {
			_ = os.Remove(out)
			if produced != "" {
				_ = os.Remove(produced)
			}
			return "", fmt.Errorf("%s: %w", p.Name(), err)
		}

		info, err := os.Stat(out)
		if err != nil || info.Size() == 0 {
			_ = os.Remove(out)
			if produced != "" {
				_ = os.Remove(produced)
			}
			return "", fmt.Errorf("%s: produced a zero-byte output", p.Name())
		}

		if produced != "" {
			_ = os.Remove(produced)
		}
		produced = out
		current = out
	}

	return produced, nil
}

// runParallel runs every recompress-capable candidate against the
// original file independently, keeping only the smallest successful
// output.
func (e *executor) runParallel(ctx context.Context, original string, candidates []processor.Processor) (string, error) {
	var winner string
	var winnerSize int64 = -1
	tag := uuid.NewString()

	for i, p := range candidates {
		if ctx.Err() != nil || e.Stopped() {
			break
		}
		if !p.CanRecompress() {
			continue
		}

		out := fmt.Sprintf("%s.%s.cand.%d.tmp", original, tag, i)
		if err := p.Recompress(ctx, original, out, e.settings.PreserveMetadata); err != nil {
			e.logf("process: candidate %s failed for %s: %v", p.Name(), filepath.Base(original), err)
			_ = os.Remove(out)
			continue
		}

		info, err := os.Stat(out)
		if err != nil || info.Size() == 0 {
			_ = os.Remove(out)
			continue
		}

		if winnerSize < 0 || info.Size() < winnerSize {
			if winner != "" {
				_ = os.Remove(winner)
			}
			winner = out
			winnerSize = info.Size()
		} else {
			_ = os.Remove(out)
		}
	}

	return winner, nil
}
