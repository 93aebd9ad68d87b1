// FILE: lixenwraith/logroute/constant.go
package log

// Level is the ordered severity of a record
type Level int32

// Log level constants
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	// LevelOff is only meaningful as a sink floor
	LevelOff
)

// Builder and loader defaults
const (
	DefaultMaxFileSize uint64 = 10 * 1024 * 1024
	DefaultMaxFiles    uint64 = 3
	DefaultFilename           = "default.log"
	DefaultLevel              = LevelInfo

	// DefaultPattern renders the fixed-column line: timestamp, thread, level, module, function, message
	DefaultPattern = "%Y-%m-%d %H:%M:%S.%e %6t %-8l %-20n %-30! %v"
)

// Console targets
const (
	TargetStdout = "stdout"
	TargetStderr = "stderr"
)

// Size multipliers for file size strings (binary)
const (
	sizeKB uint64 = 1024
	sizeMB        = 1024 * sizeKB
	sizeGB        = 1024 * sizeMB
)

const (
	// Notice forwarded ahead of the next emitted record after duplicates were dropped
	dupSkipNoticeFormat = "Skipped %d duplicate messages.."
	// Lumberjack rotates in whole megabytes
	lumberjackUnit = sizeMB
)
