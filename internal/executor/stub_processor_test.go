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

package executor_test

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Snesnopic/chisel/internal/processor"
)

// stubProcessor is a minimal, directly-configurable processor.Processor
// used to exercise executor paths that the real demo processors don't
// conveniently reach (checksum mismatch, zero-byte output, unsupported
// formats, multi-candidate pipe/parallel chains).
type stubProcessor struct {
	name          string
	mimeTypes     []string
	exts          []string
	canRecompress bool
	canExtract    bool

	recompressFn func(ctx context.Context, in, out string) error
	prepareFn    func(ctx context.Context, in string) (*processor.ExtractionRecord, error)
	finalizeFn   func(ctx context.Context, record *processor.ExtractionRecord, fallback processor.ContainerFormat) (string, error)
	rawEqualFn   func(a, b string) (bool, error)
}

func (s *stubProcessor) Name() string                   { return s.name }
func (s *stubProcessor) SupportedMIMETypes() []string   { return s.mimeTypes }
func (s *stubProcessor) SupportedExtensions() []string  { return s.exts }
func (s *stubProcessor) CanRecompress() bool            { return s.canRecompress }
func (s *stubProcessor) CanExtractContents() bool       { return s.canExtract }

func (s *stubProcessor) Recompress(ctx context.Context, inputPath, outputPath string, _ bool) error {
	if s.recompressFn != nil {
		return s.recompressFn(ctx, inputPath, outputPath)
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}

func (s *stubProcessor) PrepareExtraction(ctx context.Context, inputPath string) (*processor.ExtractionRecord, error) {
	if s.prepareFn != nil {
		return s.prepareFn(ctx, inputPath)
	}
	return nil, nil
}

func (s *stubProcessor) FinalizeExtraction(ctx context.Context, record *processor.ExtractionRecord, fallback processor.ContainerFormat) (string, error) {
	if s.finalizeFn != nil {
		return s.finalizeFn(ctx, record, fallback)
	}
	return "", nil
}

func (s *stubProcessor) RawChecksum(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *stubProcessor) RawEqual(a, b string) (bool, error) {
	if s.rawEqualFn != nil {
		return s.rawEqualFn(a, b)
	}
	da, err := os.ReadFile(a)
	if err != nil {
		return false, err
	}
	db, err := os.ReadFile(b)
	if err != nil {
		return false, err
	}
	return string(da) == string(db), nil
}

// stubDetector maps a file's extension straight to a MIME string,
// avoiding any dependency on real file signatures in unit tests.
type stubDetector struct {
	byExt map[string]string
}

func (d stubDetector) Detect(path string) string {
	if mime, ok := d.byExt[filepath.Ext(path)]; ok {
		return mime
	}
	return "application/octet-stream"
}

func (d stubDetector) RegenerateDatabase() error { return nil }
