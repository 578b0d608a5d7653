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

package mimesniff

// Detector returns the MIME type of a file given its path.
type Detector interface {
	// Detect returns the best-guess MIME type for path, e.g. "image/png".
	// It never errors on an unreadable or empty file; it instead returns
	// "application/octet-stream", mirroring the original detector's
	// "always returns something" contract.
	Detect(path string) string

	// RegenerateDatabase re-installs whatever on-disk detection
	// resources the implementation depends on. The default detector has
	// none (mimetype ships its rules in the binary), so it is a no-op;
	// the hook exists so --regenerate-magic has somewhere to call.
	RegenerateDatabase() error
}

// New returns the default gabriel-vasile/mimetype-backed Detector.
func New() Detector {
	return defaultDetector{}
}
