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

package flate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/flate"

	"github.com/Snesnopic/chisel/internal/processor"
)

type Processor struct {
	processor.Default
}

// New returns the ".cz" recompress-only processor.
func New() *Processor {
	p := &Processor{}
	p.Default.Checksummer = p
	return p
}

func (p *Processor) Name() string { return "FlateRecompressProcessor" }

func (p *Processor) SupportedMIMETypes() []string {
	return []string{"application/x-chisel-flate"}
}

func (p *Processor) SupportedExtensions() []string {
	return []string{".cz"}
}

func (p *Processor) CanRecompress() bool      { return true }
func (p *Processor) CanExtractContents() bool { return false }

func (p *Processor) Recompress(ctx context.Context, inputPath, outputPath string, _ bool) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("flate: open %s: %w", inputPath, err)
	}
	defer in.Close()

	fr := flate.NewReader(in)
	defer fr.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("flate: create %s: %w", outputPath, err)
	}
	defer out.Close()

	fw, err := flate.NewWriter(out, flate.BestCompression)
	if err != nil {
		return fmt.Errorf("flate: new writer: %w", err)
	}

	if _, err := io.Copy(fw, fr); err != nil {
		_ = fw.Close()
		return fmt.Errorf("flate: recompress %s: %w", inputPath, err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("flate: flush %s: %w", outputPath, err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}

func (p *Processor) PrepareExtraction(context.Context, string) (*processor.ExtractionRecord, error) {
	return nil, nil
}

func (p *Processor) FinalizeExtraction(context.Context, *processor.ExtractionRecord, processor.ContainerFormat) (string, error) {
	return "", fmt.Errorf("flate: FinalizeExtraction called on a non-container processor")
}

// RawChecksum hashes the decompressed content of a .cz stream, so two
// files that decode to the same bytes are considered raw-equal
// regardless of their compression level.
func (p *Processor) RawChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("flate: open %s: %w", path, err)
	}
	defer f.Close()

	fr := flate.NewReader(f)
	defer fr.Close()

	h := sha256.New()
	if _, err := io.Copy(h, fr); err != nil {
		return "", fmt.Errorf("flate: decode %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
