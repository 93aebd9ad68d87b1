// FILE: lixenwraith/logroute/compat/structured_gnet.go
package compat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lixenwraith/logroute"
	"github.com/lixenwraith/logroute/sanitizer"
)

// keyValuePattern detects "key=%v" and "key: %v" verbs in printf-style formats
var keyValuePattern = regexp.MustCompile(`(\w+)\s*[:=]\s*%[vsdqxXeEfFgGpbcU]`)

// fieldSerializer quotes values that would break key=value parsing of the line
var fieldSerializer = sanitizer.NewSerializer(sanitizer.FormatTxt, sanitizer.New().Policy(sanitizer.PolicyTxt))

// normalizeFormat rewrites a printf-style call into "message key=value ..." with values
// quoted where needed. Text around the fields is formatted with the verbs it contains so
// arguments stay aligned. Formats without recognizable fields are rendered with fmt unchanged.
func normalizeFormat(format string, args []any) string {
	matches := keyValuePattern.FindAllStringSubmatchIndex(format, -1)
	if len(matches) == 0 {
		return fmt.Sprintf(format, args...)
	}

	needed := len(matches)
	lastEnd := 0
	for _, match := range matches {
		needed += countVerbs(format[lastEnd:match[0]])
		lastEnd = match[1]
	}
	if needed > len(args) {
		return fmt.Sprintf(format, args...)
	}

	buf := make([]byte, 0, len(format)+32)
	appendText := func(text string) {
		if text == "" {
			return
		}
		if len(buf) > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, text...)
	}

	argIndex := 0
	lastEnd = 0
	for _, match := range matches {
		if literal := format[lastEnd:match[0]]; literal != "" {
			n := countVerbs(literal)
			appendText(strings.Trim(fmt.Sprintf(literal, args[argIndex:argIndex+n]...), " \t,;"))
			argIndex += n
		}
		appendText(format[match[2]:match[3]] + "=")
		fieldSerializer.WriteValue(&buf, args[argIndex])
		argIndex++
		lastEnd = match[1]
	}

	// Trailing text consumes any remaining verbs
	if lastEnd < len(format) {
		appendText(strings.TrimSpace(fmt.Sprintf(format[lastEnd:], args[argIndex:]...)))
	}

	return string(buf)
}

// countVerbs reports how many arguments a format fragment consumes, counting '*' widths
func countVerbs(format string) int {
	n := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			continue
		}
		for ; i < len(format); i++ {
			c := format[i]
			if c == '*' {
				n++
				continue
			}
			if strings.IndexByte("+-# 0123456789.[]", c) < 0 {
				n++
				break
			}
		}
	}
	return n
}

// StructuredGnetAdapter is a gnet adapter that normalizes key=value fields found in format strings
type StructuredGnetAdapter struct {
	*GnetAdapter
}

// NewStructuredGnetAdapter creates a gnet adapter with structured field extraction
func NewStructuredGnetAdapter(logger *log.Logger, opts ...GnetOption) *StructuredGnetAdapter {
	return &StructuredGnetAdapter{
		GnetAdapter: NewGnetAdapter(logger, opts...),
	}
}

func (a *StructuredGnetAdapter) logs(level log.Level, format string, args []any) {
	if level < a.logger.Level() {
		return
	}
	file, line, fn := log.Caller(2)
	a.logger.Log(level, file, line, fn, normalizeFormat(format, args))
}

// Debugf logs with structured field extraction
func (a *StructuredGnetAdapter) Debugf(format string, args ...any) {
	a.logs(log.LevelDebug, format, args)
}

// Infof logs with structured field extraction
func (a *StructuredGnetAdapter) Infof(format string, args ...any) {
	a.logs(log.LevelInfo, format, args)
}

// Warnf logs with structured field extraction
func (a *StructuredGnetAdapter) Warnf(format string, args ...any) {
	a.logs(log.LevelWarn, format, args)
}

// Errorf logs with structured field extraction
func (a *StructuredGnetAdapter) Errorf(format string, args ...any) {
	a.logs(log.LevelError, format, args)
}
