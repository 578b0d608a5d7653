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

import "time"

// Result is one row of the file-level report, populated from
// FileProcessComplete/FileProcessError/FileProcessChecksumMismatch events
// and later patched by a ContainerFinalizeComplete if the same path was
// also a container. Files that are skipped (in Analyze or in Process) get
// no Result row.
type Result struct {
	Path       string
	MIME       string
	SizeBefore uint64
	SizeAfter  uint64
	Success    bool
	Replaced   bool
	Duration   time.Duration
	ErrorMsg   string
}

// ContainerResult is one row of the container member report, populated
// from ContainerFinalizeComplete/ContainerFinalizeError events.
type ContainerResult struct {
	Filename  string
	Success   bool
	SizeAfter uint64
	ErrorMsg  string
}

// Collector accumulates Results and ContainerResults during a run and
// writes them to a CSV file on request.
type Collector interface {
	AddResult(r Result)
	AddContainerResult(c ContainerResult)

	// PatchSizeAfter updates the SizeAfter field of the Result for path,
	// if one exists — used when a file that was also a container gets a
	// final, post-finalize size distinct from its Phase 2 size.
	PatchSizeAfter(path string, sizeAfter uint64)

	Results() []Result
	ContainerResults() []ContainerResult

	// WriteCSV writes every collected row to path, followed by a
	// human-readable summary line, and returns the summary line so
	// callers can also print or log it.
	WriteCSV(path string, totalElapsed time.Duration, mode string) (summary string, err error)
}

// New returns an empty Collector.
func New() Collector {
	return &collector{}
}
