// FILE: lixenwraith/logroute/record.go
package log

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Record is a single log entry as produced at the call site. Sinks must not modify it.
type Record struct {
	Time       time.Time
	Level      Level
	File       string
	Line       int
	Function   string
	LoggerName string
	ThreadID   int
	Message    string
}

// NewRecord stamps a record with the current time and OS thread id
func NewRecord(level Level, file string, line int, function, loggerName, msg string) *Record {
	return &Record{
		Time:       time.Now(),
		Level:      level,
		File:       file,
		Line:       line,
		Function:   function,
		LoggerName: loggerName,
		ThreadID:   currentThreadID(),
		Message:    msg,
	}
}

// Module returns the logger name, falling back to the source file base name
func (r *Record) Module() string {
	if r.LoggerName != "" {
		return r.LoggerName
	}
	return moduleLabel(r.File)
}

// internalErrorsToStderr gates internalLog output, set from Settings
var internalErrorsToStderr atomic.Bool

// internalLog handles writing internal logger diagnostics to stderr, if enabled.
func internalLog(format string, args ...any) {
	if !internalErrorsToStderr.Load() {
		return
	}

	// Ensure consistent "log: " prefix
	if !strings.HasPrefix(format, "log: ") {
		format = "log: " + format
	}

	fmt.Fprintf(os.Stderr, format, args...)
}
