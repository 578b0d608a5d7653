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

package config

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Snesnopic/chisel/internal/processor"
)

// EncodeMode selects how Phase 2 dispatches multiple candidate
// processors against one file.
type EncodeMode string

const (
	ModePipe     EncodeMode = "pipe"
	ModeParallel EncodeMode = "parallel"
)

// Settings is the executor configuration record, populated from CLI
// flags, CHISEL_-prefixed environment variables, and an optional config
// file, in that order of precedence.
type Settings struct {
	Inputs []string

	Recursive        bool
	OutputDir        string
	Threads          int
	Mode             EncodeMode
	DryRun           bool
	VerifyChecksums  bool
	PreserveMetadata bool
	Fallback         processor.ContainerFormat
	LogLevel         string
	Quiet            bool
	OutputCSV        string
	RegenerateMagic  bool

	IsPipe bool
}

// DefaultThreads mirrors the original implementation's default: half of
// hardware parallelism, clamped to at least 1.
func DefaultThreads() int {
	n := runtime.NumCPU() / 2
	if n < 1 {
		return 1
	}
	return n
}

// Defaults returns a Settings populated with every documented default.
func Defaults() Settings {
	return Settings{
		Threads:          DefaultThreads(),
		Mode:             ModePipe,
		PreserveMetadata: true,
		LogLevel:         "info",
		Fallback:         processor.Unknown,
	}
}

// BindFlags registers every CLI flag from spec.md §6.1 onto cmd's flag
// set, with v supplying environment-variable and config-file fallback
// under the precedence CLI flag > CHISEL_* env var > config file > default.
func BindFlags(cmd *cobra.Command, v *viper.Viper) {
	d := Defaults()

	flags := cmd.Flags()
	flags.Bool("recursive", d.Recursive, "recurse into directory inputs")
	flags.String("output", d.OutputDir, "write optimized files to DIR instead of in-place")
	flags.Int("threads", d.Threads, "override the default worker count")
	flags.String("mode", string(d.Mode), "encode mode: pipe or parallel")
	flags.Bool("dry-run", d.DryRun, "skip replacement; log intent only")
	flags.Bool("verify-checksums", d.VerifyChecksums, "require raw_equal(original, winner) before replacing")
	flags.Bool("preserve-metadata", d.PreserveMetadata, "forward metadata-preservation to processors")
	flags.String("fallback", d.Fallback.String(), "target container format when source is read-only")
	flags.String("log-level", d.LogLevel, "console log verbosity")
	flags.Bool("quiet", d.Quiet, "suppress console output (file log still written)")
	flags.String("output-csv", d.OutputCSV, "emit a post-run CSV report to FILE")
	flags.Bool("regenerate-magic", d.RegenerateMagic, "re-install the bundled MIME magic database")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix("CHISEL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("chisel")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()
}

// FromViper materializes Settings from v, which must already have had
// BindFlags applied to the command that produced it. inputs is the
// resolved positional-argument list (files/directories, or "-").
func FromViper(v *viper.Viper, inputs []string) Settings {
	s := Defaults()
	s.Inputs = inputs
	s.Recursive = v.GetBool("recursive")
	s.OutputDir = v.GetString("output")
	if n := v.GetInt("threads"); n > 0 {
		s.Threads = n
	}
	if m := EncodeMode(v.GetString("mode")); m == ModePipe || m == ModeParallel {
		s.Mode = m
	}
	s.DryRun = v.GetBool("dry-run")
	s.VerifyChecksums = v.GetBool("verify-checksums")
	s.PreserveMetadata = v.GetBool("preserve-metadata")
	s.Fallback = processor.ParseContainerFormat(v.GetString("fallback"))
	s.LogLevel = v.GetString("log-level")
	s.Quiet = v.GetBool("quiet")
	s.OutputCSV = v.GetString("output-csv")
	s.RegenerateMagic = v.GetBool("regenerate-magic")

	s.IsPipe = len(inputs) == 1 && inputs[0] == "-"
	return s
}
