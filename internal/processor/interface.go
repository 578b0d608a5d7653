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

package processor

import "context"

// ExtractionRecord is produced by PrepareExtraction and consumed exactly
// once by FinalizeExtraction. Every path in ExtractedFiles must lie under
// TempDir; the owning processor is responsible for removing TempDir on
// every exit path (success, error, or cancellation).
type ExtractionRecord struct {
	// OriginalPath is the container file being rebuilt.
	OriginalPath string

	// TempDir is the unique scratch directory owned by this record.
	TempDir string

	// ExtractedFiles is the ordered list of absolute child paths the
	// executor must recurse into during Analyze.
	ExtractedFiles []string

	// Format is the source container tag.
	Format ContainerFormat

	// Extras is an opaque, processor-defined payload (e.g. a PDF
	// object->stream map, or an audio cover-art descriptor list). Only
	// the processor that created the record interprets it.
	Extras any
}

// Processor is the contract every format plug-in implements. Processors
// are registered once into a Registry and reused across an entire run;
// they must not retain per-file state between calls.
type Processor interface {
	// Name returns a human-readable name, e.g. "PNG" or "FLAC".
	Name() string

	// SupportedMIMETypes lists the MIME strings this processor claims.
	SupportedMIMETypes() []string

	// SupportedExtensions lists the case-insensitive, dot-prefixed file
	// extensions this processor claims, e.g. ".png".
	SupportedExtensions() []string

	// CanRecompress reports whether Recompress is implemented.
	CanRecompress() bool

	// CanExtractContents reports whether PrepareExtraction/FinalizeExtraction
	// are implemented.
	CanExtractContents() bool

	// Recompress produces output bytes at outputPath that decode to content
	// identical to inputPath. It must not delete or modify inputPath. It
	// returns an error if the source is malformed or unsupported in a way
	// this processor cannot recover from.
	Recompress(ctx context.Context, inputPath, outputPath string, preserveMetadata bool) error

	// PrepareExtraction inspects inputPath; if it is a container with
	// processable children, it creates a fresh temp directory, writes the
	// children into it, and returns the record. It returns (nil, nil) when
	// there is nothing useful to extract, leaving no residue on disk.
	PrepareExtraction(ctx context.Context, inputPath string) (*ExtractionRecord, error)

	// FinalizeExtraction rebuilds a container from the (possibly modified)
	// children in record.TempDir. It returns the path to a newly written
	// temporary file, or an empty string to mean "no improvement; keep the
	// original". The processor deletes record.TempDir on every exit path.
	FinalizeExtraction(ctx context.Context, record *ExtractionRecord, fallback ContainerFormat) (string, error)

	// RawChecksum returns a stable fingerprint of the decoded content of
	// path; it may return an empty string if unsupported, in which case
	// RawEqual must be overridden to not rely on it.
	RawChecksum(path string) (string, error)

	// RawEqual reports content-level equivalence between a and b. The
	// default strategy (see Default, below) compares RawChecksum(a) and
	// RawChecksum(b).
	RawEqual(a, b string) (bool, error)
}

// Default embeds into a concrete Processor to supply the default RawEqual
// implementation described by spec.md §4.1: compare RawChecksum of both
// sides. Processors whose RawChecksum is unsupported must not embed this
// and should instead implement RawEqual directly (e.g. decode-and-compare).
type Default struct {
	Checksummer interface {
		RawChecksum(path string) (string, error)
	}
}

// RawEqual implements the default get_raw_checksum-based comparison.
func (d Default) RawEqual(a, b string) (bool, error) {
	ca, err := d.Checksummer.RawChecksum(a)
	if err != nil {
		return false, err
	}
	cb, err := d.Checksummer.RawChecksum(b)
	if err != nil {
		return false, err
	}
	return ca == cb, nil
}
