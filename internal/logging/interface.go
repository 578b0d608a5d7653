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

package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// ObserverFunc receives every log entry's level and rendered message.
type ObserverFunc func(level logrus.Level, message string)

// Logger is the logging surface the rest of chisel depends on. It is
// deliberately thin: callers reach for logrus.Fields-style structured
// calls through Entry, and manage the observer lifecycle through
// AddObserver/RemoveObserver.
type Logger interface {
	// SetLevel changes the minimum level of entries the logger emits; it
	// applies to every sink alike, the file, the console and any observer.
	SetLevel(lvl logrus.Level)
	Level() logrus.Level

	// SetConsole enables or disables the colorized console sink.
	SetConsole(enabled bool)

	Entry() *logrus.Entry

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	// AddObserver installs fn as a temporary sink and returns a function
	// that removes it. The façade calls this once per recompress call.
	AddObserver(fn ObserverFunc) (remove func())

	io.Closer
}

// New opens logPath (created if absent, appended to otherwise) and
// returns a Logger writing to it at lvl. Console output starts disabled;
// call SetConsole(true) to enable the colorized sink.
func New(logPath string, lvl logrus.Level) (Logger, error) {
	return newLogger(logPath, lvl)
}
