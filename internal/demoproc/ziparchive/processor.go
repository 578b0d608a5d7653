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

package ziparchive

import (
	"archive/zip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	kflate "github.com/klauspost/compress/flate"

	"github.com/Snesnopic/chisel/internal/processor"
)

type Processor struct {
	processor.Default
}

// New returns the ZIP container processor.
func New() *Processor {
	p := &Processor{}
	p.Default.Checksummer = p
	return p
}

func (p *Processor) Name() string { return "ZipArchiveProcessor" }

func (p *Processor) SupportedMIMETypes() []string {
	return []string{"application/zip", "application/x-zip-compressed"}
}

func (p *Processor) SupportedExtensions() []string {
	return []string{".zip"}
}

func (p *Processor) CanRecompress() bool      { return false }
func (p *Processor) CanExtractContents() bool { return true }

func (p *Processor) Recompress(context.Context, string, string, bool) error {
	return fmt.Errorf("ziparchive: Recompress called on an extract-only processor")
}

// PrepareExtraction unpacks every entry of inputPath into a fresh temp
// directory and returns it as an ExtractionRecord. A zero-entry archive
// returns (nil, nil): nothing useful to recurse into.
func (p *Processor) PrepareExtraction(ctx context.Context, inputPath string) (*processor.ExtractionRecord, error) {
	zr, err := zip.OpenReader(inputPath)
	if err != nil {
		return nil, fmt.Errorf("ziparchive: open %s: %w", inputPath, err)
	}
	defer zr.Close()

	if len(zr.File) == 0 {
		return nil, nil
	}

	tempDir, err := os.MkdirTemp("", "chisel-ziparchive-"+uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("ziparchive: mkdtemp: %w", err)
	}

	var children []string
	for _, entry := range zr.File {
		if ctx.Err() != nil {
			_ = os.RemoveAll(tempDir)
			return nil, ctx.Err()
		}
		if entry.FileInfo().IsDir() {
			continue
		}

		dest := filepath.Join(tempDir, entry.Name)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			_ = os.RemoveAll(tempDir)
			return nil, fmt.Errorf("ziparchive: mkdir for %s: %w", entry.Name, err)
		}

		if err := extractEntry(entry, dest); err != nil {
			_ = os.RemoveAll(tempDir)
			return nil, fmt.Errorf("ziparchive: extract %s: %w", entry.Name, err)
		}
		children = append(children, dest)
	}

	return &processor.ExtractionRecord{
		OriginalPath:   inputPath,
		TempDir:        tempDir,
		ExtractedFiles: children,
		Format:         processor.Zip,
	}, nil
}

func extractEntry(entry *zip.File, dest string) error {
	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, entry.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, rc)
	return err
}

// FinalizeExtraction repacks record.TempDir's current contents into a
// new ZIP at a temp path, registering klauspost/compress/flate at best
// compression as the DEFLATE codec the way nabbar-golib/archive/zip's
// writer wires a custom compressor into the stdlib archive/zip.Writer.
// It deletes record.TempDir unconditionally before returning. If the
// repacked archive is not smaller than the original, it reports "no
// improvement" by returning an empty path.
func (p *Processor) FinalizeExtraction(ctx context.Context, record *processor.ExtractionRecord, _ processor.ContainerFormat) (string, error) {
	defer os.RemoveAll(record.TempDir)

	origStat, err := os.Stat(record.OriginalPath)
	if err != nil {
		return "", fmt.Errorf("ziparchive: stat %s: %w", record.OriginalPath, err)
	}

	outPath := filepath.Join(os.TempDir(), "chisel-ziparchive-"+uuid.NewString()+".zip")
	if err := repack(ctx, record.TempDir, outPath); err != nil {
		_ = os.Remove(outPath)
		return "", err
	}

	newStat, err := os.Stat(outPath)
	if err != nil {
		_ = os.Remove(outPath)
		return "", fmt.Errorf("ziparchive: stat repacked archive: %w", err)
	}
	if newStat.Size() >= origStat.Size() {
		_ = os.Remove(outPath)
		return "", nil
	}
	return outPath, nil
}

func repack(ctx context.Context, dir, outPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("ziparchive: create %s: %w", outPath, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return kflate.NewWriter(w, kflate.BestCompression)
	})
	defer zw.Close()

	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		h, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		h.Name = filepath.ToSlash(rel)
		h.Method = zip.Deflate

		w, err := zw.CreateHeader(h)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(w, f)
		return err
	})
}

// RawChecksum hashes the sorted (name, content) pairs of a ZIP archive,
// so two archives with identically-named entries and identical content
// are considered raw-equal regardless of compression level or entry
// order — the definition of "content-equivalent" R1 needs.
func (p *Processor) RawChecksum(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("ziparchive: open %s: %w", path, err)
	}
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	byName := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		names = append(names, f.Name)
		byName[f.Name] = f
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		entry := byName[name]
		rc, err := entry.Open()
		if err != nil {
			return "", fmt.Errorf("ziparchive: open entry %s: %w", name, err)
		}
		h.Write([]byte(name))
		if _, err := io.Copy(h, rc); err != nil {
			rc.Close()
			return "", fmt.Errorf("ziparchive: read entry %s: %w", name, err)
		}
		rc.Close()
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
