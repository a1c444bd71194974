// Package colors provides color output utilities.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Color constants
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	mu           sync.RWMutex
	debugEnabled bool
	quiet        bool
	logger       Logger
	stdout       io.Writer = os.Stdout
	stderr       io.Writer = os.Stderr
)

func init() {
	if val := os.Getenv("TRAVELTRUCKS_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debugEnabled = enabled
}

// SetQuiet suppresses info and success output. Errors and warnings are
// always printed.
func SetQuiet(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetOutput redirects console output. Passing nil restores the default
// stdout/stderr streams.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout = out
	stderr = errOut
}

type state struct {
	debug  bool
	quiet  bool
	logger Logger
	out    io.Writer
	errOut io.Writer
}

func current() state {
	mu.RLock()
	defer mu.RUnlock()
	return state{debug: debugEnabled, quiet: quiet, logger: logger, out: stdout, errOut: stderr}
}

// write prints a line and falls back to a plain stderr write if the
// preferred stream fails.
func write(w io.Writer, line string) {
	if _, err := fmt.Fprintln(w, line); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", line)
	}
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	msg := strings.Join(msgs, " ")
	s := current()
	if s.logger != nil {
		s.logger.Error(msg)
	}
	write(s.errOut, fmt.Sprintf("%sError:%s %s", Red, Reset, msg))
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	msg := strings.Join(msgs, " ")
	s := current()
	if s.logger != nil {
		s.logger.Warn(msg)
	}
	write(s.errOut, fmt.Sprintf("%sWarning:%s %s", Yellow, Reset, msg))
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	msg := strings.Join(msgs, " ")
	s := current()
	if s.logger != nil {
		s.logger.Info(msg, "type", "success")
	}
	if s.quiet {
		return
	}
	write(s.out, fmt.Sprintf("%s%s%s %s", Green, checkmark, Reset, msg))
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	msg := strings.Join(msgs, " ")
	s := current()
	if s.logger != nil {
		s.logger.Info(msg)
	}
	if s.quiet {
		return
	}
	write(s.out, fmt.Sprintf("%s%s%s", Blue, msg, Reset))
}

// Debug outputs a debug message to stderr when debug mode is enabled.
func Debug(msgs ...string) {
	msg := strings.Join(msgs, " ")
	s := current()
	if s.logger != nil {
		s.logger.Debug(msg)
	}
	if !s.debug {
		return
	}
	write(s.errOut, fmt.Sprintf("%sDebug:%s %s", Cyan, Reset, msg))
}
