// Package sanitizer provides a fluent and composable interface for sanitizing
// strings based on configurable rules using bitwise filter flags and transforms,
// and a serializer rendering arbitrary values onto a single log line.
package sanitizer

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
)

// Filter flags for character matching
const (
	FilterNonPrintable uint64 = 1 << iota // Matches runes not classified as printable by strconv.IsPrint
	FilterControl                         // Matches control characters (unicode.IsControl)
	FilterWhitespace                      // Matches whitespace characters (unicode.IsSpace)
)

// Transform flags for character transformation
const (
	TransformStrip     uint64 = 1 << iota // Removes the character
	TransformHexEncode                    // Encodes the character's UTF-8 bytes as "<XXYY>"
	TransformEscape                       // Escapes the character with backslashes (e.g., '\n', '\u0000')
)

// PolicyPreset defines pre-configured sanitization policies
type PolicyPreset string

const (
	PolicyRaw     PolicyPreset = "raw"     // Raw is a no-op (passthrough)
	PolicyTxt     PolicyPreset = "txt"     // Keeps a value on one line by hex-encoding non-printables
	PolicyEscape  PolicyPreset = "escape"  // Backslash-escapes control characters
	PolicyCompact PolicyPreset = "compact" // Strips control characters
)

// rule represents a single sanitization rule
type rule struct {
	filter    uint64
	transform uint64
}

// policyRules contains pre-configured rules for each policy
var policyRules = map[PolicyPreset][]rule{
	PolicyRaw:     {},
	PolicyTxt:     {{filter: FilterNonPrintable, transform: TransformHexEncode}},
	PolicyEscape:  {{filter: FilterControl, transform: TransformEscape}},
	PolicyCompact: {{filter: FilterControl, transform: TransformStrip}},
}

// filterCheckers maps individual filter flags to their check functions
var filterCheckers = map[uint64]func(rune) bool{
	FilterNonPrintable: func(r rune) bool { return !strconv.IsPrint(r) },
	FilterControl:      unicode.IsControl,
	FilterWhitespace:   unicode.IsSpace,
}

// Sanitizer applies rules rune by rune. It keeps no state between calls and is safe
// for concurrent use once configured.
type Sanitizer struct {
	rules []rule
}

// New creates a new passthrough Sanitizer
func New() *Sanitizer {
	return &Sanitizer{rules: []rule{}}
}

// Rule adds a custom rule to the sanitizer (appended, earliest rule applies first)
func (s *Sanitizer) Rule(filter uint64, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy applies a pre-configured policy to the sanitizer (appended)
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if rules, ok := policyRules[preset]; ok {
		s.rules = append(s.rules, rules...)
	}
	return s
}

// Sanitize applies all configured rules to the input string
func (s *Sanitizer) Sanitize(data string) string {
	if len(s.rules) == 0 {
		return data
	}
	buf := make([]byte, 0, len(data))
	return string(s.Append(buf, data))
}

// Append sanitizes data onto buf
func (s *Sanitizer) Append(buf []byte, data string) []byte {
	for _, r := range data {
		matched := false
		// First matching rule wins
		for _, rl := range s.rules {
			if matchesFilter(r, rl.filter) {
				buf = applyTransform(buf, r, rl.transform)
				matched = true
				break
			}
		}
		if !matched {
			buf = utf8.AppendRune(buf, r)
		}
	}
	return buf
}

// matchesFilter checks if a rune matches any filter in the mask
func matchesFilter(r rune, filterMask uint64) bool {
	for flag, checker := range filterCheckers {
		if (filterMask&flag) != 0 && checker(r) {
			return true
		}
	}
	return false
}

// applyTransform applies the specified transform to the buffer
func applyTransform(buf []byte, r rune, transformMask uint64) []byte {
	switch {
	case (transformMask & TransformStrip) != 0:
		return buf

	case (transformMask & TransformHexEncode) != 0:
		var runeBytes [utf8.UTFMax]byte
		n := utf8.EncodeRune(runeBytes[:], r)
		buf = append(buf, '<')
		buf = append(buf, hex.EncodeToString(runeBytes[:n])...)
		return append(buf, '>')

	case (transformMask & TransformEscape) != 0:
		switch r {
		case '\n':
			return append(buf, '\\', 'n')
		case '\r':
			return append(buf, '\\', 'r')
		case '\t':
			return append(buf, '\\', 't')
		case '\b':
			return append(buf, '\\', 'b')
		case '\f':
			return append(buf, '\\', 'f')
		default:
			if r < 0x20 || r == 0x7f {
				return append(buf, fmt.Sprintf("\\u%04x", r)...)
			}
			return utf8.AppendRune(buf, r)
		}
	}
	return utf8.AppendRune(buf, r)
}

// Serializer formats
const (
	// FormatMessage writes strings bare, suited to free-form message text
	FormatMessage = "message"
	// FormatTxt quotes strings containing spaces or shell-significant characters
	FormatTxt = "txt"
)

// spewConfig renders composite values on one line with deterministic key order
var spewConfig = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Serializer implements format-specific output behaviors
type Serializer struct {
	format    string
	sanitizer *Sanitizer
}

// NewSerializer creates a handler with format-specific behavior
func NewSerializer(format string, san *Sanitizer) *Serializer {
	if san == nil {
		san = New()
	}
	return &Serializer{
		format:    format,
		sanitizer: san,
	}
}

// WriteValue appends any value using the serializer's format
func (se *Serializer) WriteValue(buf *[]byte, v any) {
	switch val := v.(type) {
	case string:
		se.WriteString(buf, val)
	case []byte:
		se.WriteString(buf, string(val))
	case rune:
		var runeStr [utf8.UTFMax]byte
		n := utf8.EncodeRune(runeStr[:], val)
		se.WriteString(buf, string(runeStr[:n]))
	case int:
		*buf = strconv.AppendInt(*buf, int64(val), 10)
	case int64:
		*buf = strconv.AppendInt(*buf, val, 10)
	case uint:
		*buf = strconv.AppendUint(*buf, uint64(val), 10)
	case uint64:
		*buf = strconv.AppendUint(*buf, val, 10)
	case float32:
		*buf = strconv.AppendFloat(*buf, float64(val), 'f', -1, 32)
	case float64:
		*buf = strconv.AppendFloat(*buf, val, 'f', -1, 64)
	case bool:
		*buf = strconv.AppendBool(*buf, val)
	case nil:
		*buf = append(*buf, "nil"...)
	case time.Time:
		se.WriteString(buf, val.Format(time.RFC3339Nano))
	case time.Duration:
		*buf = append(*buf, val.String()...)
	case error:
		se.WriteString(buf, val.Error())
	case fmt.Stringer:
		se.WriteString(buf, val.String())
	default:
		se.WriteComplex(buf, val)
	}
}

// WriteString writes a string with format-specific handling
func (se *Serializer) WriteString(buf *[]byte, s string) {
	switch se.format {
	case FormatTxt:
		sanitized := se.sanitizer.Sanitize(s)
		if se.NeedsQuotes(sanitized) {
			*buf = append(*buf, '"')
			for i := 0; i < len(sanitized); i++ {
				if sanitized[i] == '"' || sanitized[i] == '\\' {
					*buf = append(*buf, '\\')
				}
				*buf = append(*buf, sanitized[i])
			}
			*buf = append(*buf, '"')
		} else {
			*buf = append(*buf, sanitized...)
		}
	default:
		*buf = se.sanitizer.Append(*buf, s)
	}
}

// WriteComplex writes structs, maps, slices and pointers through spew
func (se *Serializer) WriteComplex(buf *[]byte, v any) {
	se.WriteString(buf, spewConfig.Sprintf("%+v", v))
}

// NeedsQuotes determines if quoting is needed
func (se *Serializer) NeedsQuotes(s string) bool {
	if se.format != FormatTxt {
		return false
	}
	if len(s) == 0 {
		return true
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
		switch r {
		case '"', '\'', '\\', '$', '`', '!', '&', '|', ';',
			'(', ')', '<', '>', '*', '?', '[', ']', '{', '}',
			'~', '#', '%', '=':
			return true
		}
		if !unicode.IsPrint(r) {
			return true
		}
	}
	return false
}
