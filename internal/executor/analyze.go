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

import "github.com/Snesnopic/chisel/internal/event"

// analyzeAll walks paths depth-first on the calling goroutine, building
// e.workList and e.finalizeStack. It returns as soon as the stop flag is
// observed.
func (e *executor) analyzeAll(paths []string) {
	for _, p := range paths {
		if e.Stopped() {
			return
		}
		e.analyzeOne(p)
	}
}

func (e *executor) analyzeOne(path string) {
	if isJunk(path) {
		event.Publish(e.bus, event.FileAnalyzeSkipped{Path: path, Reason: "Junk file"})
		return
	}

	event.Publish(e.bus, event.FileAnalyzeStart{Path: path})

	candidates := e.resolveCandidates(path)
	if len(candidates) == 0 {
		event.Publish(e.bus, event.FileAnalyzeSkipped{Path: path, Reason: "Unsupported format"})
		return
	}
	primary := candidates[0]

	var extracted bool
	var numChildren int

	if primary.CanExtractContents() {
		record, err := primary.PrepareExtraction(e.runCtx(), path)
		if err != nil {
			event.Publish(e.bus, event.FileAnalyzeError{Path: path, Message: err.Error()})
		} else if record != nil {
			e.finalizeStack = append(e.finalizeStack, record)
			extracted = true
			numChildren = len(record.ExtractedFiles)
			for _, child := range record.ExtractedFiles {
				if e.Stopped() {
					return
				}
				e.analyzeOne(child)
			}
		}
	}

	var scheduled bool
	if primary.CanRecompress() {
		e.workList = append(e.workList, path)
		scheduled = true
	}

	if extracted || scheduled {
		event.Publish(e.bus, event.FileAnalyzeComplete{
			Path:        path,
			Extracted:   extracted,
			Scheduled:   scheduled,
			NumChildren: numChildren,
		})
	} else {
		event.Publish(e.bus, event.FileAnalyzeSkipped{Path: path, Reason: "No operations available"})
	}
}
