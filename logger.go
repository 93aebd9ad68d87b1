// FILE: lixenwraith/logroute/logger.go
package log

import (
	"fmt"
	"sync/atomic"

	"github.com/lixenwraith/logroute/sanitizer"
)

// callerSkip is the frame distance from callerInfo to the user's call in the level helpers:
// user -> Logger.Info (or package Info) -> logArgs -> callerInfo
const callerSkip = 2

// argSerializer renders variadic arguments onto a single line
var argSerializer = sanitizer.NewSerializer(sanitizer.FormatMessage, sanitizer.New().Policy(sanitizer.PolicyTxt))

// Logger fans records out to the sinks of its registry.
// The sink set is replaced atomically by the registry; the logging path takes no registry lock.
type Logger struct {
	name  atomic.Value // stores string
	sinks atomic.Pointer[[]Sink]
	level atomic.Int32
}

// newLogger creates a detached logger accepting every level
func newLogger(name string) *Logger {
	l := &Logger{}
	l.name.Store(name)
	l.level.Store(int32(LevelTrace))
	empty := []Sink{}
	l.sinks.Store(&empty)
	return l
}

// Name returns the logger display name, used as the module label when set
func (l *Logger) Name() string {
	return l.name.Load().(string)
}

func (l *Logger) setName(name string) {
	l.name.Store(name)
}

// Level returns the logger floor. Sinks apply their own floors after it.
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// SetLevel sets the logger floor
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// Sinks returns the sinks currently attached, in emission order
func (l *Logger) Sinks() []Sink {
	cur := *l.sinks.Load()
	out := make([]Sink, len(cur))
	copy(out, cur)
	return out
}

// setSinks publishes a new sink set. The slice must not be modified afterwards.
func (l *Logger) setSinks(sinks []Sink) {
	if sinks == nil {
		sinks = []Sink{}
	}
	l.sinks.Store(&sinks)
}

// Log builds a record from explicit source information and dispatches it
func (l *Logger) Log(level Level, file string, line int, function, msg string) {
	if level < l.Level() || level >= LevelOff {
		return
	}
	l.Dispatch(NewRecord(level, file, line, function, l.Name(), msg))
}

// Dispatch writes an already built record to every sink accepting its level.
// Write failures are reported on the internal channel and never returned.
func (l *Logger) Dispatch(rec *Record) {
	for _, s := range *l.sinks.Load() {
		if !s.ShouldLog(rec.Level) {
			continue
		}
		if err := s.Log(rec); err != nil {
			internalLog("failed to write record to sink: %v\n", err)
		}
	}
}

// Flush flushes every attached sink
func (l *Logger) Flush() error {
	var err error
	for _, s := range *l.sinks.Load() {
		err = combineErrors(err, s.Flush())
	}
	return err
}

// logArgs captures the caller and renders args as the message
func (l *Logger) logArgs(level Level, args []any) {
	if level < l.Level() {
		return
	}
	file, line, fn := callerInfo(callerSkip)
	l.Log(level, file, line, fn, renderArgs(args))
}

// logFormat captures the caller and renders a printf-style message
func (l *Logger) logFormat(level Level, format string, args []any) {
	if level < l.Level() {
		return
	}
	file, line, fn := callerInfo(callerSkip)
	l.Log(level, file, line, fn, fmt.Sprintf(format, args...))
}

// renderArgs joins args with single spaces
func renderArgs(args []any) string {
	buf := make([]byte, 0, 64)
	for i, arg := range args {
		if i > 0 {
			buf = append(buf, ' ')
		}
		argSerializer.WriteValue(&buf, arg)
	}
	return string(buf)
}

// Trace logs a message at trace level
func (l *Logger) Trace(args ...any) {
	l.logArgs(LevelTrace, args)
}

// Debug logs a message at debug level
func (l *Logger) Debug(args ...any) {
	l.logArgs(LevelDebug, args)
}

// Info logs a message at info level
func (l *Logger) Info(args ...any) {
	l.logArgs(LevelInfo, args)
}

// Warn logs a message at warning level
func (l *Logger) Warn(args ...any) {
	l.logArgs(LevelWarn, args)
}

// Error logs a message at error level
func (l *Logger) Error(args ...any) {
	l.logArgs(LevelError, args)
}

// Critical logs a message at critical level
func (l *Logger) Critical(args ...any) {
	l.logArgs(LevelCritical, args)
}

// Tracef logs a formatted message at trace level
func (l *Logger) Tracef(format string, args ...any) {
	l.logFormat(LevelTrace, format, args)
}

// Debugf logs a formatted message at debug level
func (l *Logger) Debugf(format string, args ...any) {
	l.logFormat(LevelDebug, format, args)
}

// Infof logs a formatted message at info level
func (l *Logger) Infof(format string, args ...any) {
	l.logFormat(LevelInfo, format, args)
}

// Warnf logs a formatted message at warning level
func (l *Logger) Warnf(format string, args ...any) {
	l.logFormat(LevelWarn, format, args)
}

// Errorf logs a formatted message at error level
func (l *Logger) Errorf(format string, args ...any) {
	l.logFormat(LevelError, format, args)
}

// Criticalf logs a formatted message at critical level
func (l *Logger) Criticalf(format string, args ...any) {
	l.logFormat(LevelCritical, format, args)
}
