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

package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

type collector struct {
	mu         sync.Mutex
	results    []Result
	containers []ContainerResult
}

func (c *collector) AddResult(r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, r)
}

func (c *collector) AddContainerResult(cr ContainerResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.containers = append(c.containers, cr)
}

func (c *collector) PatchSizeAfter(path string, sizeAfter uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.results {
		if c.results[i].Path == path {
			c.results[i].SizeAfter = sizeAfter
			return
		}
	}
}

func (c *collector) Results() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Result, len(c.results))
	copy(out, c.results)
	return out
}

func (c *collector) ContainerResults() []ContainerResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ContainerResult, len(c.containers))
	copy(out, c.containers)
	return out
}

func (c *collector) WriteCSV(path string, totalElapsed time.Duration, mode string) (string, error) {
	c.mu.Lock()
	results := make([]Result, len(c.results))
	copy(results, c.results)
	containers := make([]ContainerResult, len(c.containers))
	copy(containers, c.containers)
	c.mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{"path", "mime", "size_before", "size_after", "success", "replaced", "seconds", "error_msg"}); err != nil {
		return "", err
	}

	var before, after uint64
	var shrunk int
	for _, r := range results {
		before += r.SizeBefore
		after += r.SizeAfter
		if r.Replaced {
			shrunk++
		}
		if err := w.Write([]string{
			r.Path,
			r.MIME,
			strconv.FormatUint(r.SizeBefore, 10),
			strconv.FormatUint(r.SizeAfter, 10),
			strconv.FormatBool(r.Success),
			strconv.FormatBool(r.Replaced),
			strconv.FormatFloat(r.Duration.Seconds(), 'f', 3, 64),
			r.ErrorMsg,
		}); err != nil {
			return "", err
		}
	}

	if len(containers) > 0 {
		if err := w.Write([]string{}); err != nil {
			return "", err
		}
		if err := w.Write([]string{"filename", "success", "size_after", "error_msg"}); err != nil {
			return "", err
		}
		for _, cr := range containers {
			if err := w.Write([]string{
				cr.Filename,
				strconv.FormatBool(cr.Success),
				strconv.FormatUint(cr.SizeAfter, 10),
				cr.ErrorMsg,
			}); err != nil {
				return "", err
			}
		}
	}

	summary := fmt.Sprintf(
		"%d files processed, %d replaced, %s -> %s (mode=%s, %s elapsed)",
		len(results), shrunk, humanize.Bytes(before), humanize.Bytes(after), mode, totalElapsed.Round(10*time.Millisecond),
	)
	if err := w.Write([]string{summary}); err != nil {
		return "", err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return summary, nil
}
