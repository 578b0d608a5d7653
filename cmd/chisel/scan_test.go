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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("data"), 0o644))
	return p
}

func TestCollectInputFiles_PlainFileIsKept(t *testing.T) {
	dir := t.TempDir()
	f := writeTemp(t, dir, "a.png")

	files, isPipe, err := collectInputFiles([]string{f}, false)
	require.NoError(t, err)
	require.False(t, isPipe)
	require.Equal(t, []string{f}, files)
}

func TestCollectInputFiles_NonexistentInputIsSkippedNotFatal(t *testing.T) {
	files, isPipe, err := collectInputFiles([]string{"/no/such/path.png"}, false)
	require.NoError(t, err)
	require.False(t, isPipe)
	require.Empty(t, files)
}

func TestCollectInputFiles_DirectoryNonRecursiveSkipsSubdirs(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "a.png")
	writeTemp(t, dir, "b.jpg")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	writeTemp(t, filepath.Join(dir, "sub"), "c.png")

	files, _, err := collectInputFiles([]string{dir}, false)
	require.NoError(t, err)
	require.Len(t, files, 2)
}

func TestCollectInputFiles_DirectoryRecursiveWalksSubdirs(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "a.png")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	writeTemp(t, filepath.Join(dir, "sub"), "c.png")

	files, _, err := collectInputFiles([]string{dir}, true)
	require.NoError(t, err)
	require.Len(t, files, 2)
}

func TestCollectInputFiles_JunkFilesAreDropped(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "a.png")
	writeTemp(t, dir, ".DS_Store")
	writeTemp(t, dir, "Desktop.ini")

	files, _, err := collectInputFiles([]string{dir}, false)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.True(t, strings.HasSuffix(files[0], "a.png"))
}

func TestCollectInputFiles_DashReadsStdinIntoTempFileAndSetsPipeMode(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	oldStdin := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = oldStdin }()

	go func() {
		_, _ = w.Write([]byte("hello"))
		_ = w.Close()
	}()

	files, isPipe, err := collectInputFiles([]string{"-"}, false)
	require.NoError(t, err)
	require.True(t, isPipe)
	require.Len(t, files, 1)
	defer os.Remove(files[0])

	content, err := os.ReadFile(files[0])
	require.NoError(t, err)
	require.Equal(t, "hello", string(content))
}
