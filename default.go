// --- File: default.go ---
package log

import (
	"sync/atomic"
)

// defaultRegistry backs the package-level functions
var defaultRegistry atomic.Pointer[Registry]

func init() {
	defaultRegistry.Store(NewRegistry())
}

// Default returns the registry used by the package-level functions
func Default() *Registry {
	return defaultRegistry.Load()
}

// SetDefault replaces the registry used by the package-level functions.
// Loggers obtained from the previous registry keep their sinks.
func SetDefault(r *Registry) {
	if r == nil {
		return
	}
	defaultRegistry.Store(r)
}

// Init applies settings to the default registry
func Init(s *Settings) error {
	return Default().ApplySettings(s)
}

// AddConsoleOutput starts a console sink builder on the default registry
func AddConsoleOutput() *ConsoleOptions {
	return Default().AddConsoleOutput()
}

// AddFileOutput starts a file sink builder on the default registry
func AddFileOutput() *FileOptions {
	return Default().AddFileOutput()
}

// AddDebuggerOutput starts a debugger sink builder on the default registry
func AddDebuggerOutput() *DebuggerOptions {
	return Default().AddDebuggerOutput()
}

// LoadConfig registers the sinks of a document on the default registry
func LoadConfig(path string) ([]Sink, error) {
	return Default().LoadConfig(path)
}

// GetLogger returns the default registry's logger, creating it on first use
func GetLogger() *Logger {
	return Default().Logger()
}

// DropAllAndCreateDefaultLogger resets the default registry to a single console sink
func DropAllAndCreateDefaultLogger() *Logger {
	return Default().DropAllAndCreateDefaultLogger()
}

// Flush flushes every sink of the default registry
func Flush() error {
	return Default().Flush()
}

// Log dispatches one record with explicit source information through the default logger
func Log(level Level, file string, line int, function, msg string) {
	GetLogger().Log(level, file, line, function, msg)
}

// Trace logs a message at trace level
func Trace(args ...any) {
	GetLogger().logArgs(LevelTrace, args)
}

// Debug logs a message at debug level
func Debug(args ...any) {
	GetLogger().logArgs(LevelDebug, args)
}

// Info logs a message at info level
func Info(args ...any) {
	GetLogger().logArgs(LevelInfo, args)
}

// Warn logs a message at warning level
func Warn(args ...any) {
	GetLogger().logArgs(LevelWarn, args)
}

// Error logs a message at error level
func Error(args ...any) {
	GetLogger().logArgs(LevelError, args)
}

// Critical logs a message at critical level
func Critical(args ...any) {
	GetLogger().logArgs(LevelCritical, args)
}

// Tracef logs a formatted message at trace level
func Tracef(format string, args ...any) {
	GetLogger().logFormat(LevelTrace, format, args)
}

// Debugf logs a formatted message at debug level
func Debugf(format string, args ...any) {
	GetLogger().logFormat(LevelDebug, format, args)
}

// Infof logs a formatted message at info level
func Infof(format string, args ...any) {
	GetLogger().logFormat(LevelInfo, format, args)
}

// Warnf logs a formatted message at warning level
func Warnf(format string, args ...any) {
	GetLogger().logFormat(LevelWarn, format, args)
}

// Errorf logs a formatted message at error level
func Errorf(format string, args ...any) {
	GetLogger().logFormat(LevelError, format, args)
}

// Criticalf logs a formatted message at critical level
func Criticalf(format string, args ...any) {
	GetLogger().logFormat(LevelCritical, format, args)
}
