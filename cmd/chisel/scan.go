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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var junkNames = []string{".ds_store", "desktop.ini"}

func isJunkInput(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	for _, j := range junkNames {
		if name == j {
			return true
		}
	}
	return false
}

// collectInputFiles mirrors chisel_cli/utils/file_scanner.cpp's
// collect_input_files: "-" becomes a temp file fed from stdin (marking
// isPipe), directories expand to their regular-file members (recursively
// if recursive is set), and junk files are dropped before they are ever
// counted. It returns the resolved file list and whether stdin mode was
// entered.
func collectInputFiles(inputs []string, recursive bool) (files []string, isPipe bool, err error) {
	for _, in := range inputs {
		if in == "-" {
			tmp, werr := writeStdinToTemp()
			if werr != nil {
				return nil, false, werr
			}
			files = append(files, tmp)
			isPipe = true
			continue
		}

		info, statErr := os.Stat(in)
		if statErr != nil {
			fmt.Fprintf(os.Stderr, "chisel: input not found: %s\n", in)
			continue
		}

		if info.IsDir() {
			dirFiles, walkErr := scanDirectory(in, recursive)
			if walkErr != nil {
				return nil, false, walkErr
			}
			files = append(files, dirFiles...)
			continue
		}

		if !isJunkInput(in) {
			files = append(files, in)
		}
	}
	return files, isPipe, nil
}

func scanDirectory(dir string, recursive bool) ([]string, error) {
	var out []string

	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() || isJunkInput(e.Name()) {
				continue
			}
			out = append(out, filepath.Join(dir, e.Name()))
		}
		return out, nil
	}

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || isJunkInput(path) {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return out, nil
}

// writeStdinToTemp drains os.Stdin into a uniquely-named temp file and
// returns its path, the "-" input case from collectInputFiles.
func writeStdinToTemp() (string, error) {
	tmp := filepath.Join(os.TempDir(), "chisel-stdin-"+uuid.NewString()+".bin")
	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("scan: create stdin temp file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, os.Stdin); err != nil {
		return "", fmt.Errorf("scan: read stdin: %w", err)
	}
	return tmp, nil
}
