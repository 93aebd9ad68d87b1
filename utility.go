// FILE: utility.go
package log

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// Sentinel errors, wrapped by the specific failures
var (
	ErrInvalidLevel    = errors.New("invalid level")
	ErrInvalidFileSize = errors.New("invalid file size")
	ErrInvalidSinkType = errors.New("invalid sink type")
	ErrAlreadyApplied  = errors.New("options already applied")

	ErrInvalidSkipDuration = errors.New("invalid skip duration")
)

// String returns the upper-case level name used in rendered lines
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	case LevelOff:
		return "OFF"
	default:
		return fmt.Sprintf("LEVEL(%d)", int32(l))
	}
}

// shortString returns the single-letter form used by the %L pattern verb
func (l Level) shortString() string {
	switch l {
	case LevelTrace:
		return "T"
	case LevelDebug:
		return "D"
	case LevelInfo:
		return "I"
	case LevelWarn:
		return "W"
	case LevelError:
		return "E"
	case LevelCritical:
		return "C"
	default:
		return "O"
	}
}

// ParseLevel converts a level string to its Level.
func ParseLevel(levelStr string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error", "err":
		return LevelError, nil
	case "critical":
		return LevelCritical, nil
	case "off":
		return LevelOff, nil
	default:
		return LevelOff, fmtErrorf("%w: '%s' (use trace, debug, info, warn, error, critical)", ErrInvalidLevel, levelStr)
	}
}

// callerInfo resolves file, line and short function name of the frame skip levels above its caller.
func callerInfo(skip int) (file string, line int, function string) {
	pc, file, line, ok := runtime.Caller(skip + 1) // +1 for callerInfo itself
	if !ok {
		return "", 0, ""
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return file, line, ""
	}
	return file, line, shortFuncName(fn.Name())
}

// shortFuncName strips the import path and collapses anonymous closures.
func shortFuncName(full string) string {
	funcName := filepath.Base(full)
	parts := strings.Split(funcName, ".")
	lastPart := parts[len(parts)-1]
	if strings.HasPrefix(lastPart, "func") && len(lastPart) > 4 {
		for _, r := range lastPart[4:] {
			if !unicode.IsDigit(r) {
				return lastPart
			}
		}
		// Closure: report the enclosing function
		if len(parts) >= 2 {
			return parts[len(parts)-2]
		}
	}
	return lastPart
}

// moduleLabel is the base name of a source path with its extension stripped
func moduleLabel(file string) string {
	if file == "" {
		return ""
	}
	base := filepath.Base(filepath.ToSlash(file))
	// Windows paths recorded on other hosts still use backslashes
	if i := strings.LastIndexByte(base, '\\'); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "log: ") {
		format = "log: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// Caller resolves the source location skip frames above the function calling Caller.
// Caller(0) reports that function itself. Adapters use it to attribute records to their callers.
func Caller(skip int) (file string, line int, function string) {
	return callerInfo(skip + 1)
}
