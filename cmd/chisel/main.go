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

// Command chisel is the CLI front end for the recompression engine,
// grounded on chisel_cli/src/main.cpp: it parses flags, builds a
// registry and event bus, drives internal/executor directly (the CLI
// talks to the orchestrator the same way the original does, beneath the
// embeddable Facade), and reports results as a progress bar, colorized
// console lines, and an optional CSV export.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vbauerster/mpb/v8"

	"github.com/Snesnopic/chisel/internal/config"
	"github.com/Snesnopic/chisel/internal/demoproc/flate"
	"github.com/Snesnopic/chisel/internal/demoproc/ziparchive"
	"github.com/Snesnopic/chisel/internal/event"
	"github.com/Snesnopic/chisel/internal/executor"
	"github.com/Snesnopic/chisel/internal/logging"
	"github.com/Snesnopic/chisel/internal/mimesniff"
	"github.com/Snesnopic/chisel/internal/registry"
	"github.com/Snesnopic/chisel/internal/report"
)

func main() {
	os.Exit(run())
}

func run() int {
	v := viper.New()
	var exitCode int

	root := &cobra.Command{
		Use:   "chisel [flags] PATH...",
		Short: "Lossless file-size optimization engine",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := execute(v, args)
			exitCode = code
			return err
		},
		SilenceUsage: true,
	}
	config.BindFlags(root, v)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if exitCode == 0 {
			exitCode = 1
		}
	}
	return exitCode
}

func execute(v *viper.Viper, args []string) (int, error) {
	settings := config.FromViper(v, args)

	detector := mimesniff.New()
	if settings.RegenerateMagic {
		if err := detector.RegenerateDatabase(); err != nil {
			return 1, fmt.Errorf("regenerate magic database: %w", err)
		}
	}

	logger, err := logging.New("chisel.log", parseLevel(settings.LogLevel))
	if err != nil {
		return 1, fmt.Errorf("open log file: %w", err)
	}
	defer logger.Close()
	logger.SetConsole(!settings.Quiet)
	logger.SetLevel(parseLevel(settings.LogLevel))

	inputs, isPipe, err := collectInputFiles(settings.Inputs, settings.Recursive)
	if err != nil {
		return 1, err
	}
	if len(inputs) == 0 {
		logger.Errorf("no valid input files")
		return 1, nil
	}
	settings.IsPipe = isPipe

	reg := registry.New(flate.New(), ziparchive.New())
	bus := event.New()
	coll := report.New()

	var progress *mpb.Progress
	var bar *mpb.Bar
	if !isPipe && !settings.Quiet {
		progress, bar = newProgress(len(inputs))
	}

	wireReporting(bus, coll, detector, settings, bar, logger, isPipe, len(inputs))

	exec := executor.New(executor.Deps{
		Registry: reg,
		Bus:      bus,
		Detector: detector,
		Settings: settings,
		Bar:      bar,
		Logger:   logger,
	})

	interrupted := installSignalHandler(exec)

	start := time.Now()
	runErr := exec.Recompress(context.Background(), inputs)
	elapsed := time.Since(start)

	if progress != nil {
		progress.Wait()
	}

	if runErr != nil {
		logger.Errorf("run: %v", runErr)
	}

	if isPipe && len(inputs) > 0 && !settings.DryRun {
		if err := streamPipeResult(inputs[0], settings.OutputDir); err != nil {
			logger.Errorf("pipe output: %v", err)
		}
	}

	if settings.OutputCSV != "" {
		summary, err := coll.WriteCSV(settings.OutputCSV, elapsed, string(settings.Mode))
		if err != nil {
			logger.Errorf("write csv: %v", err)
		} else {
			logger.Infof("%s", summary)
		}
	}

	if interrupted() {
		return 130, nil
	}
	return 0, nil
}

func installSignalHandler(exec executor.Executor) func() bool {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Stop detected. Waiting for threads to finish...")
			exec.RequestStop()
		case <-done:
		}
	}()

	return func() bool {
		close(done)
		signal.Stop(sigCh)
		return exec.Stopped()
	}
}

func parseLevel(s string) logrus.Level {
	lvl, err := logrus.ParseLevel(s)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// streamPipeResult copies the (possibly replaced) stdin temp file to
// stdout and removes both the original temp input and, if an output
// directory was configured, the separate output file it produced — the
// two fs::remove calls at the end of main.cpp's is_pipe branch.
func streamPipeResult(tempInput, outputDir string) error {
	toRead := tempInput
	if outputDir != "" {
		toRead = joinOutputDir(outputDir, tempInput)
	}

	f, err := os.Open(toRead)
	if err == nil {
		defer f.Close()
		if _, copyErr := io.Copy(os.Stdout, f); copyErr != nil {
			return copyErr
		}
	}

	_ = os.Remove(tempInput)
	if outputDir != "" {
		_ = os.Remove(toRead)
	}
	return nil
}

// joinOutputDir resolves the separate-output-directory counterpart of
// tempInput, mirroring main.cpp's output_dir / filename join for the
// is_pipe branch.
func joinOutputDir(outputDir, tempInput string) string {
	return filepath.Join(outputDir, filepath.Base(tempInput))
}
