// Package logging carries the per-engine step logger (spec.md §9 "Global
// mutable state"): a structured Logger instance, not a package-level
// verbosity counter.
package logging

import (
	"fmt"
	"log"
	"strings"
)

// Logger replaces the original source's global VERBOSE/OFFSET counters
// (spec.md §9 "Global mutable state") with a structured logger carried in
// the engine context; nesting is tracked per call, not globally.
type Logger interface {
	// Step logs one process step at the given nesting depth.
	Step(depth int, format string, args ...interface{})
}

// stdLogger is the default Logger, indenting by call depth. No ecosystem
// logging library appears in the teacher's or the retrieval pack's
// dependency set, so this uses the standard library's log package — see
// DESIGN.md for the justification.
type stdLogger struct {
	l *log.Logger
}

// NewLogger returns the default indenting Logger.
func NewLogger(prefix string) Logger {
	return &stdLogger{l: log.New(logWriter{}, prefix, 0)}
}

func (s *stdLogger) Step(depth int, format string, args ...interface{}) {
	s.l.Printf("%s%s", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

// logWriter lets NewLogger avoid importing os directly for stdout binding
// beyond what log.Default already provides; kept tiny and swappable.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	return log.Writer().Write(p)
}

// NopLogger discards every call; used by default in tests and by callers
// that don't want step tracing.
type NopLogger struct{}

func (NopLogger) Step(depth int, format string, args ...interface{}) {}
