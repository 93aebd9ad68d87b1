// FILE: lixenwraith/logroute/format.go
package log

import (
	"path/filepath"
	"strconv"
	"time"
	"unicode/utf8"
)

// Formatter renders one record into one newline-terminated line
type Formatter interface {
	Format(rec *Record) []byte
	Clone() Formatter
}

// segment is one compiled piece of a pattern, either literal text or a verb
type segment struct {
	verb  byte
	lit   string
	width int
	left  bool
}

// truncating verbs are cut to their width, all others only pad
var truncatingVerbs = map[byte]bool{
	'n': true,
	's': true,
	'g': true,
	'!': true,
}

// PatternFormatter renders records according to a compiled pattern.
// It holds no mutable state, so a single instance may be shared across goroutines.
//
// Supported verbs:
//
//	%Y %m %d %H %M %S   date and time fields, zero padded, host local time
//	%e %f               milliseconds (3 digits), microseconds (6 digits)
//	%t                  thread id
//	%l %L               level name, single-letter level
//	%n                  module label: logger name, else source file base name without extension
//	%s %g %#            source file base name, full source path, source line
//	%!                  function name
//	%v                  message
//	%%                  literal percent
//
// A width may follow the percent sign: %-8l left-justifies in 8 columns, %6t right-justifies.
// For %n %s %g and %! the width is also the maximum; longer values are truncated.
type PatternFormatter struct {
	pattern  string
	segments []segment
}

// NewLineFormatter returns the fixed-column formatter for DefaultPattern
func NewLineFormatter() *PatternFormatter {
	return NewPatternFormatter(DefaultPattern)
}

// NewPatternFormatter compiles a pattern. An empty pattern selects DefaultPattern.
func NewPatternFormatter(pattern string) *PatternFormatter {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &PatternFormatter{
		pattern:  pattern,
		segments: compilePattern(pattern),
	}
}

// Pattern returns the source pattern
func (f *PatternFormatter) Pattern() string {
	return f.pattern
}

// Clone returns an independent formatter with identical output
func (f *PatternFormatter) Clone() Formatter {
	segs := make([]segment, len(f.segments))
	copy(segs, f.segments)
	return &PatternFormatter{pattern: f.pattern, segments: segs}
}

// Format renders the record. The returned slice is owned by the caller.
func (f *PatternFormatter) Format(rec *Record) []byte {
	buf := make([]byte, 0, 128+len(rec.Message))
	t := rec.Time.Local()

	for _, seg := range f.segments {
		if seg.verb == 0 {
			buf = append(buf, seg.lit...)
			continue
		}
		switch seg.verb {
		case 'Y':
			buf = appendInt(buf, t.Year(), 4)
		case 'm':
			buf = appendInt(buf, int(t.Month()), 2)
		case 'd':
			buf = appendInt(buf, t.Day(), 2)
		case 'H':
			buf = appendInt(buf, t.Hour(), 2)
		case 'M':
			buf = appendInt(buf, t.Minute(), 2)
		case 'S':
			buf = appendInt(buf, t.Second(), 2)
		case 'e':
			buf = appendInt(buf, t.Nanosecond()/int(time.Millisecond), 3)
		case 'f':
			buf = appendInt(buf, t.Nanosecond()/int(time.Microsecond), 6)
		default:
			buf = appendField(buf, seg, f.fieldValue(seg.verb, rec))
		}
	}

	buf = append(buf, '\n')
	return buf
}

// fieldValue resolves the text of a padded verb
func (f *PatternFormatter) fieldValue(verb byte, rec *Record) string {
	switch verb {
	case 't':
		return strconv.Itoa(rec.ThreadID)
	case 'l':
		return rec.Level.String()
	case 'L':
		return rec.Level.shortString()
	case 'n':
		return rec.Module()
	case 's':
		if rec.File == "" {
			return ""
		}
		return filepath.Base(rec.File)
	case 'g':
		return rec.File
	case '#':
		return strconv.Itoa(rec.Line)
	case '!':
		return rec.Function
	case 'v':
		return rec.Message
	}
	return ""
}

// compilePattern splits a pattern into literal and verb segments
func compilePattern(pattern string) []segment {
	var segs []segment
	lit := make([]byte, 0, len(pattern))

	flushLit := func() {
		if len(lit) > 0 {
			segs = append(segs, segment{lit: string(lit)})
			lit = lit[:0]
		}
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			lit = append(lit, c)
			continue
		}

		start := i
		j := i + 1
		left := false
		if j < len(pattern) && pattern[j] == '-' {
			left = true
			j++
		}
		width := 0
		for j < len(pattern) && pattern[j] >= '0' && pattern[j] <= '9' {
			width = width*10 + int(pattern[j]-'0')
			j++
		}
		if j >= len(pattern) {
			// Dangling percent, keep as written
			lit = append(lit, pattern[start:]...)
			break
		}

		verb := pattern[j]
		i = j
		switch verb {
		case '%':
			lit = append(lit, '%')
		case 'Y', 'm', 'd', 'H', 'M', 'S', 'e', 'f', 't', 'l', 'L', 'n', 's', 'g', '#', '!', 'v':
			flushLit()
			segs = append(segs, segment{verb: verb, width: width, left: left})
		default:
			lit = append(lit, pattern[start:j+1]...)
		}
	}
	flushLit()
	return segs
}

// appendField pads or truncates value to the segment width
func appendField(buf []byte, seg segment, value string) []byte {
	n := utf8.RuneCountInString(value)
	if seg.width > 0 && n > seg.width && truncatingVerbs[seg.verb] {
		value = truncateRunes(value, seg.width)
		n = seg.width
	}
	pad := seg.width - n
	if pad <= 0 {
		return append(buf, value...)
	}
	if seg.left {
		buf = append(buf, value...)
		return appendSpaces(buf, pad)
	}
	buf = appendSpaces(buf, pad)
	return append(buf, value...)
}

// truncateRunes keeps the first n runes of s
func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func appendSpaces(buf []byte, n int) []byte {
	for ; n > 0; n-- {
		buf = append(buf, ' ')
	}
	return buf
}

// appendInt appends v zero padded to width digits
func appendInt(buf []byte, v, width int) []byte {
	var tmp [20]byte
	digits := strconv.AppendInt(tmp[:0], int64(v), 10)
	for k := len(digits); k < width; k++ {
		buf = append(buf, '0')
	}
	return append(buf, digits...)
}
