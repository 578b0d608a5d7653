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

package ziparchive_test

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Snesnopic/chisel/internal/demoproc/ziparchive"
	"github.com/Snesnopic/chisel/internal/processor"
)

func writeTestZip(t *testing.T, path string, files map[string][]byte) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestPrepareExtraction_UnpacksEveryEntryUnderTempDir(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "pack.zip")
	writeTestZip(t, src, map[string][]byte{
		"inner.png": bytes.Repeat([]byte{0x89, 'P', 'N', 'G'}, 100),
		"sub/b.txt": []byte("hello"),
	})

	p := ziparchive.New()
	record, err := p.PrepareExtraction(context.Background(), src)
	require.NoError(t, err)
	require.NotNil(t, record)
	require.Equal(t, processor.Zip, record.Format)
	require.Len(t, record.ExtractedFiles, 2)

	for _, child := range record.ExtractedFiles {
		require.Contains(t, child, record.TempDir)
		_, err := os.Stat(child)
		require.NoError(t, err)
	}

	require.NoError(t, os.RemoveAll(record.TempDir))
}

func TestPrepareExtraction_EmptyArchiveReturnsNilRecord(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "empty.zip")
	writeTestZip(t, src, map[string][]byte{})

	p := ziparchive.New()
	record, err := p.PrepareExtraction(context.Background(), src)
	require.NoError(t, err)
	require.Nil(t, record)
}

func TestFinalizeExtraction_RepacksAndDeletesTempDir(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "pack.zip")
	payload := bytes.Repeat([]byte("compressible compressible compressible "), 200)
	writeTestZip(t, src, map[string][]byte{"a.txt": payload})

	p := ziparchive.New()
	record, err := p.PrepareExtraction(context.Background(), src)
	require.NoError(t, err)
	require.NotNil(t, record)

	out, err := p.FinalizeExtraction(context.Background(), record, processor.Unknown)
	require.NoError(t, err)

	_, statErr := os.Stat(record.TempDir)
	require.True(t, os.IsNotExist(statErr))

	if out != "" {
		defer os.Remove(out)
		equal, err := p.RawEqual(src, out)
		require.NoError(t, err)
		require.True(t, equal)
	}
}

func TestRawChecksum_IgnoresEntryOrder(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.zip")
	b := filepath.Join(dir, "b.zip")

	writeTestZipOrdered(t, a, []entry{{"one.txt", []byte("1")}, {"two.txt", []byte("2")}})
	writeTestZipOrdered(t, b, []entry{{"two.txt", []byte("2")}, {"one.txt", []byte("1")}})

	p := ziparchive.New()
	equal, err := p.RawEqual(a, b)
	require.NoError(t, err)
	require.True(t, equal)
}

type entry struct {
	name    string
	content []byte
}

func writeTestZipOrdered(t *testing.T, path string, entries []entry) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write(e.content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}
