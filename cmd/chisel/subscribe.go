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

package main

import (
	"fmt"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/vbauerster/mpb/v8"

	"github.com/Snesnopic/chisel/internal/config"
	"github.com/Snesnopic/chisel/internal/event"
	"github.com/Snesnopic/chisel/internal/logging"
	"github.com/Snesnopic/chisel/internal/mimesniff"
	"github.com/Snesnopic/chisel/internal/report"
)

// wireReporting subscribes every handler main.cpp installs before
// constructing its ProcessorExecutor: a progress-bar driver whose total
// grows as containers are discovered, a result collector for the CSV
// report, and colorized [DONE] console lines (unless quiet or stdin mode,
// matching "!settings.is_pipe && !settings.quiet"). Errors and checksum
// mismatches are reported through logger rather than as [DONE] lines.
func wireReporting(bus event.Bus, coll report.Collector, detector mimesniff.Detector, settings config.Settings, bar *mpb.Bar, logger logging.Logger, isPipe bool, initialTotal int) {
	var done atomic.Int64
	var total atomic.Int64
	total.Store(int64(initialTotal))

	onFinish := func() {
		done.Add(1)
		if bar != nil {
			bar.Increment()
		}
	}

	event.Subscribe(bus, func(e event.FileAnalyzeComplete) {
		if e.Extracted && e.NumChildren > 0 && bar != nil {
			grown := total.Add(int64(e.NumChildren))
			growTotal(bar, grown)
		}
	})

	event.Subscribe(bus, func(e event.FileProcessComplete) {
		if !isPipe && !settings.Quiet {
			status := statusLabel(e.Replaced, settings.DryRun, settings.OutputDir != "")
			line := fmt.Sprintf("[DONE] %s (%d -> %d bytes)%s", e.Path, e.OriginalSize, e.NewSize, status)
			if e.Replaced {
				color.Green(line)
			} else {
				color.Yellow(line)
			}
		}
		coll.AddResult(report.Result{
			Path:       e.Path,
			MIME:       detector.Detect(e.Path),
			SizeBefore: e.OriginalSize,
			SizeAfter:  e.NewSize,
			Success:    true,
			Replaced:   e.Replaced,
			Duration:   e.Duration,
		})
		onFinish()
	})

	event.Subscribe(bus, func(e event.FileProcessError) {
		if logger != nil {
			logger.Errorf("%s: %s", e.Path, e.Message)
		}
		coll.AddResult(report.Result{
			Path:     e.Path,
			MIME:     detector.Detect(e.Path),
			Success:  false,
			ErrorMsg: e.Message,
		})
		onFinish()
	})

	event.Subscribe(bus, func(event.FileProcessSkipped) {
		onFinish()
	})

	event.Subscribe(bus, func(e event.FileProcessChecksumMismatch) {
		if logger != nil {
			logger.Warnf("%s: checksum mismatch, keeping original", e.Path)
		}
		coll.AddResult(report.Result{
			Path:     e.Path,
			MIME:     detector.Detect(e.Path),
			Success:  false,
			ErrorMsg: "checksum mismatch",
		})
		onFinish()
	})

	event.Subscribe(bus, func(e event.ContainerFinalizeComplete) {
		coll.PatchSizeAfter(e.Path, e.FinalSize)
		coll.AddContainerResult(report.ContainerResult{
			Filename:  e.Path,
			Success:   true,
			SizeAfter: e.FinalSize,
		})
	})

	event.Subscribe(bus, func(e event.ContainerFinalizeError) {
		if logger != nil {
			logger.Errorf("%s: %s", e.Path, e.Message)
		}
		coll.AddContainerResult(report.ContainerResult{
			Filename: e.Path,
			Success:  false,
			ErrorMsg: e.Message,
		})
		onFinish()
	})
}

func statusLabel(replaced, dryRun, hasOutputDir bool) string {
	switch {
	case !replaced && dryRun:
		return " [DRY-RUN]"
	case !replaced:
		return " [kept]"
	case dryRun:
		return " [DRY-RUN]"
	case hasOutputDir:
		return " [OK]"
	default:
		return " [replaced]"
	}
}
