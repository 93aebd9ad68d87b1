// FILE: lixenwraith/logroute/loader.go
package log

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Document formats accepted by the loader
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// sinkEntry mirrors one element of the "sinks" array; pointers distinguish absent fields
type sinkEntry struct {
	Type                    *string `json:"type" toml:"type"`
	Level                   *string `json:"level" toml:"level"`
	MaxSkipDurationMicros   *uint64 `json:"maxSkipDurationMicros" toml:"maxSkipDurationMicros"`
	Pattern                 *string `json:"pattern" toml:"pattern"`
	Target                  *string `json:"target" toml:"target"`
	FileName                *string `json:"fileName" toml:"fileName"`
	MaxFileSize             any     `json:"maxFileSize" toml:"maxFileSize"`
	MaxFiles                *uint64 `json:"maxFiles" toml:"maxFiles"`
	RotateOnSession         *bool   `json:"rotateOnSession" toml:"rotateOnSession"`
	CheckForDebuggerPresent *bool   `json:"checkForDebuggerPresent" toml:"checkForDebuggerPresent"`
}

type sinkDocument struct {
	Name  *string     `json:"name" toml:"name"`
	Level *string     `json:"level" toml:"level"`
	Sinks []sinkEntry `json:"sinks" toml:"sinks"`
}

// Document is a validated sink document
type Document struct {
	// Name is applied to the registry when set
	Name string
	// Level is applied as the registry default when set. Entries without their own level
	// take it, or the registry default when the document declares none.
	Level *Level
	Sinks []SinkSpec

	// inherit marks entries whose level is resolved against the registry on apply
	inherit []bool
}

// ParseSinkDocument decodes and validates a sink document. Every entry is checked before any
// result is returned, so a single invalid entry fails the whole document.
func ParseSinkDocument(data []byte, format string) (*Document, error) {
	var raw sinkDocument
	switch strings.ToLower(format) {
	case FormatJSON, "":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmtErrorf("failed to decode json sink document: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmtErrorf("failed to decode toml sink document: %w", err)
		}
	default:
		return nil, fmtErrorf("unsupported document format: '%s' (use json or toml)", format)
	}

	doc := &Document{}
	if raw.Name != nil {
		doc.Name = *raw.Name
	}
	entryLevel := DefaultLevel
	if raw.Level != nil {
		l, err := ParseLevel(*raw.Level)
		if err != nil {
			return nil, fmtErrorf("document level: %w", err)
		}
		doc.Level = &l
		entryLevel = l
	}

	for i, entry := range raw.Sinks {
		spec, err := entry.toSpec(entryLevel)
		if err != nil {
			return nil, fmtErrorf("sink %d: %w", i, err)
		}
		doc.Sinks = append(doc.Sinks, spec)
		doc.inherit = append(doc.inherit, doc.Level == nil && entry.Level == nil)
	}
	return doc, nil
}

// toSpec applies defaults and converts one entry
func (e *sinkEntry) toSpec(defaultLevel Level) (SinkSpec, error) {
	kind := SinkConsole
	if e.Type != nil {
		k, err := parseSinkKind(*e.Type)
		if err != nil {
			return SinkSpec{}, err
		}
		kind = k
	}

	spec := DefaultSinkSpec(kind)
	spec.Level = defaultLevel
	if e.Level != nil {
		l, err := ParseLevel(*e.Level)
		if err != nil {
			return SinkSpec{}, err
		}
		spec.Level = l
	}
	if e.MaxSkipDurationMicros != nil {
		if *e.MaxSkipDurationMicros > math.MaxInt64/uint64(time.Microsecond) {
			return SinkSpec{}, fmtErrorf("%w: %d microseconds overflows", ErrInvalidSkipDuration, *e.MaxSkipDurationMicros)
		}
		spec.SkipDuration = time.Duration(*e.MaxSkipDurationMicros) * time.Microsecond
	}
	if e.Pattern != nil {
		spec.Pattern = *e.Pattern
	}

	switch kind {
	case SinkConsole:
		if e.Target != nil {
			t := strings.ToLower(strings.TrimSpace(*e.Target))
			if t != TargetStdout && t != TargetStderr {
				return SinkSpec{}, fmtErrorf("invalid console target: '%s' (use stdout or stderr)", *e.Target)
			}
			spec.Console.Target = t
		}
	case SinkFile:
		if e.FileName != nil {
			spec.File.Filename = *e.FileName
		}
		if e.MaxFileSize != nil {
			size, err := fileSizeValue(e.MaxFileSize)
			if err != nil {
				return SinkSpec{}, err
			}
			spec.File.MaxSize = size
		}
		if e.MaxFiles != nil {
			spec.File.MaxFiles = *e.MaxFiles
		}
		if e.RotateOnSession != nil {
			spec.File.RotateOnSession = *e.RotateOnSession
		}
	case SinkDebugger:
		if e.CheckForDebuggerPresent != nil {
			spec.Debugger.CheckForDebugger = *e.CheckForDebuggerPresent
		}
	}
	return spec, nil
}

// parseSinkKind maps a document type name to its kind
func parseSinkKind(s string) (SinkKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "console":
		return SinkConsole, nil
	case "file":
		return SinkFile, nil
	case "debugger-output", "debugger", "msvc":
		return SinkDebugger, nil
	default:
		return SinkConsole, fmtErrorf("%w: '%s' (use console, file or debugger-output)", ErrInvalidSinkType, s)
	}
}

// LoadConfig reads a sink document from path and registers its sinks.
// Files ending in .toml are decoded as TOML, everything else as JSON.
func (r *Registry) LoadConfig(path string) ([]Sink, error) {
	doc, err := ReadSinkDocument(path)
	if err != nil {
		return nil, err
	}
	return r.ApplyDocument(doc), nil
}

// ReadSinkDocument reads and validates the sink document at path without registering anything
func ReadSinkDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmtErrorf("failed to read sink document '%s': %w", path, err)
	}
	format := FormatJSON
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = FormatTOML
	}
	return ParseSinkDocument(data, format)
}

// LoadConfigBytes registers the sinks of an in-memory document.
// Configuration errors are returned before anything is registered. Sinks that fail to
// construct are reported through the default logger and skipped. An empty document
// registers a single console sink.
func (r *Registry) LoadConfigBytes(data []byte, format string) ([]Sink, error) {
	doc, err := ParseSinkDocument(data, format)
	if err != nil {
		return nil, err
	}
	return r.ApplyDocument(doc), nil
}

// ApplyDocument registers the sinks of a parsed document and returns those that were created
func (r *Registry) ApplyDocument(doc *Document) []Sink {
	if doc.Name != "" {
		r.SetName(doc.Name)
	}
	if doc.Level != nil {
		r.SetDefaultLevel(*doc.Level)
	}
	level := r.DefaultLevel()

	specs := make([]SinkSpec, len(doc.Sinks))
	copy(specs, doc.Sinks)
	for i := range specs {
		if i < len(doc.inherit) && doc.inherit[i] {
			specs[i].Level = level
		}
	}
	if len(specs) == 0 {
		spec := DefaultSinkSpec(SinkConsole)
		spec.Level = level
		specs = []SinkSpec{spec}
	}

	var added []Sink
	for _, spec := range specs {
		s, err := r.AddSink(spec)
		if err != nil {
			// Already reported through the default logger
			continue
		}
		added = append(added, s)
	}
	return added
}
