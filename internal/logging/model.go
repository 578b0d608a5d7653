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
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

type logger struct {
	core *logrus.Logger
	file *os.File

	mu          sync.Mutex
	console     *consoleHook
	observerSeq uint64
	observers   map[uint64]*observerHook
}

func newLogger(logPath string, lvl logrus.Level) (*logger, error) {
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", logPath, err)
	}

	core := logrus.New()
	core.SetOutput(f)
	core.SetLevel(lvl)
	core.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	l := &logger{
		core:      core,
		file:      f,
		observers: make(map[uint64]*observerHook),
	}
	return l, nil
}

func (l *logger) SetLevel(lvl logrus.Level) {
	l.core.SetLevel(lvl)
}

func (l *logger) Level() logrus.Level {
	return l.core.GetLevel()
}

func (l *logger) SetConsole(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if enabled && l.console == nil {
		l.console = newConsoleHook()
		l.core.AddHook(l.console)
		return
	}
	if !enabled && l.console != nil {
		l.core.ReplaceHooks(logrus.LevelHooks{})
		l.console = nil
		for _, obs := range l.observers {
			l.core.AddHook(obs)
		}
	}
}

func (l *logger) Entry() *logrus.Entry {
	return logrus.NewEntry(l.core)
}

func (l *logger) Debugf(format string, args ...any) { l.Entry().Debugf(format, args...) }
func (l *logger) Infof(format string, args ...any)  { l.Entry().Infof(format, args...) }
func (l *logger) Warnf(format string, args ...any)  { l.Entry().Warnf(format, args...) }
func (l *logger) Errorf(format string, args ...any) { l.Entry().Errorf(format, args...) }

func (l *logger) AddObserver(fn ObserverFunc) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.observerSeq
	l.observerSeq++
	hook := &observerHook{fn: fn}
	l.observers[id] = hook
	l.core.AddHook(hook)

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.observers, id)
		l.rebuildHooks()
	}
}

// rebuildHooks must be called with l.mu held. logrus has no RemoveHook,
// so removing a single observer means replacing the whole hook set.
func (l *logger) rebuildHooks() {
	l.core.ReplaceHooks(logrus.LevelHooks{})
	if l.console != nil {
		l.core.AddHook(l.console)
	}
	for _, obs := range l.observers {
		l.core.AddHook(obs)
	}
}

func (l *logger) Close() error {
	return l.file.Close()
}

type observerHook struct {
	fn ObserverFunc
}

func (h *observerHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *observerHook) Fire(e *logrus.Entry) error {
	if h.fn != nil {
		h.fn(e.Level, e.Message)
	}
	return nil
}

type consoleHook struct {
	out *logrus.Logger
}

func newConsoleHook() *consoleHook {
	c := logrus.New()
	c.SetOutput(os.Stdout)
	c.SetFormatter(&logrus.TextFormatter{ForceColors: true, DisableTimestamp: true})
	return &consoleHook{out: c}
}

func (h *consoleHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *consoleHook) Fire(e *logrus.Entry) error {
	paint := colorForLevel(e.Level)
	_, err := paint.Fprintf(os.Stdout, "%-7s %s\n", e.Level.String(), e.Message)
	return err
}

func colorForLevel(lvl logrus.Level) *color.Color {
	switch lvl {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return color.New(color.FgRed)
	case logrus.WarnLevel:
		return color.New(color.FgYellow)
	case logrus.DebugLevel, logrus.TraceLevel:
		return color.New(color.FgHiBlack)
	default:
		return color.New(color.FgWhite)
	}
}
