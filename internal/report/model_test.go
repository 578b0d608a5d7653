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

package report_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Snesnopic/chisel/internal/report"
)

func TestWriteCSV_WritesFileRowsAndContainerRows(t *testing.T) {
	c := report.New()
	c.AddResult(report.Result{Path: "a.png", MIME: "image/png", SizeBefore: 1000, SizeAfter: 800, Success: true, Replaced: true})
	c.AddResult(report.Result{Path: "note.txt", MIME: "text/plain", Success: false, ErrorMsg: "unsupported format"})
	c.AddContainerResult(report.ContainerResult{Filename: "pack.zip", Success: true, SizeAfter: 4096})

	path := filepath.Join(t.TempDir(), "report.csv")
	summary, err := c.WriteCSV(path, 2*time.Second, "pipe")
	require.NoError(t, err)
	require.Contains(t, summary, "2 files processed")
	require.Contains(t, summary, "1 replaced")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	// file rows, container rows and the summary differ in width, and the
	// blank separator line between the two tables is skipped by the reader.
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Equal(t, []string{"path", "mime", "size_before", "size_after", "success", "replaced", "seconds", "error_msg"}, rows[0])
	require.Equal(t, "a.png", rows[1][0])
	require.Equal(t, "note.txt", rows[2][0])
	require.Equal(t, []string{"filename", "success", "size_after", "error_msg"}, rows[3])
	require.Equal(t, "pack.zip", rows[4][0])
}

func TestPatchSizeAfter_UpdatesExistingResult(t *testing.T) {
	c := report.New()
	c.AddResult(report.Result{Path: "pack.zip", SizeAfter: 5000})
	c.PatchSizeAfter("pack.zip", 4096)

	require.Equal(t, uint64(4096), c.Results()[0].SizeAfter)
}

func TestPatchSizeAfter_UnknownPathIsANoop(t *testing.T) {
	c := report.New()
	require.NotPanics(t, func() { c.PatchSizeAfter("missing.zip", 1) })
}
