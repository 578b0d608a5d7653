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

package chiselerr

// Code classifies an Error the way the orchestrator needs to branch on
// it, independent of the message text. Values are deliberately sparse
// (steps of 100, HTTP-status flavored) so new kinds can be inserted
// without renumbering.
type Code uint16

const (
	// Unknown is the zero value: a Code that names none of the kinds
	// below.
	Unknown Code = 0

	// Unsupported means no registered processor claims the file's MIME
	// type or extension; reported as a Skipped event and never fatal.
	Unsupported Code = 100

	// PrepareFailure means a processor's PrepareExtraction returned an
	// error; the file is not scheduled further.
	PrepareFailure Code = 200

	// CodecFailure means Recompress or FinalizeExtraction returned an
	// error, or produced an empty/zero-byte result, or a Pipe-mode chain
	// aborted mid-stage.
	CodecFailure Code = 300

	// AcceptanceFailure means the winning candidate did not shrink the
	// file, or (with verify_checksums) failed the raw_equal check.
	AcceptanceFailure Code = 400

	// ReplacementFailure means the Replacement Policy exhausted its
	// rename retries.
	ReplacementFailure Code = 500

	// Cancelled means the stop flag was observed before or during work
	// on this item.
	Cancelled Code = 600
)

func (c Code) String() string {
	switch c {
	case Unsupported:
		return "unsupported"
	case PrepareFailure:
		return "prepare failure"
	case CodecFailure:
		return "codec failure"
	case AcceptanceFailure:
		return "acceptance failure"
	case ReplacementFailure:
		return "replacement failure"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is a Code-tagged error that wraps an optional cause.
type Error interface {
	error
	Code() Code
	Unwrap() error
}

// New returns an Error with the given code and message and no cause.
func New(code Code, message string) Error {
	return &codeError{code: code, message: message}
}

// Wrap returns an Error with the given code and message, wrapping cause.
// If cause is nil, Wrap behaves like New.
func Wrap(code Code, message string, cause error) Error {
	return &codeError{code: code, message: message, cause: cause}
}

// Is reports whether err, or any error reachable from it through Unwrap,
// is an Error whose Code equals code.
func Is(err error, code Code) bool {
	var ce Error
	for err != nil {
		if e, ok := err.(Error); ok {
			ce = e
			if ce.Code() == code {
				return true
			}
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return false
}
