// FILE: lixenwraith/logroute/sink.go
package log

import (
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// Sink is a configured output destination. Implementations serialize their own writes.
type Sink interface {
	// Log writes the record unconditionally; level filtering is done through ShouldLog
	Log(rec *Record) error
	Flush() error
	Close() error
	Level() Level
	SetLevel(level Level)
	ShouldLog(level Level) bool
	SetFormatter(f Formatter)
}

// SinkKind selects the destination variant of a SinkSpec
type SinkKind int

const (
	SinkConsole SinkKind = iota
	SinkFile
	SinkDebugger
)

// String returns the document name of the kind
func (k SinkKind) String() string {
	switch k {
	case SinkConsole:
		return "console"
	case SinkFile:
		return "file"
	case SinkDebugger:
		return "debugger-output"
	default:
		return "unknown"
	}
}

// ConsoleSpec holds console-only settings
type ConsoleSpec struct {
	Target string // "stdout" or "stderr"
	// NoColor disables level colouring even on a terminal
	NoColor bool
}

// FileSpec holds rotating-file settings
type FileSpec struct {
	Filename        string
	MaxSize         uint64 // bytes
	MaxFiles        uint64
	RotateOnSession bool
}

// DebuggerSpec holds debugger-channel settings
type DebuggerSpec struct {
	CheckForDebugger bool
}

// SinkSpec describes one destination before construction.
// Only the payload matching Kind is read.
type SinkSpec struct {
	Kind         SinkKind
	Level        Level
	Pattern      string
	SkipDuration time.Duration

	Console  ConsoleSpec
	File     FileSpec
	Debugger DebuggerSpec
}

// DefaultSinkSpec returns a spec of the given kind populated with builder defaults
func DefaultSinkSpec(kind SinkKind) SinkSpec {
	return SinkSpec{
		Kind:    kind,
		Level:   DefaultLevel,
		Pattern: DefaultPattern,
		Console: ConsoleSpec{Target: TargetStdout},
		File: FileSpec{
			Filename: DefaultFilename,
			MaxSize:  DefaultMaxFileSize,
			MaxFiles: DefaultMaxFiles,
		},
	}
}

// NewSink constructs the destination described by spec, with its level and formatter applied
func NewSink(spec SinkSpec) (Sink, error) {
	var (
		s   Sink
		err error
	)
	switch spec.Kind {
	case SinkConsole:
		s, err = newConsoleSink(spec.Console)
	case SinkFile:
		s, err = newFileSink(spec.File)
	case SinkDebugger:
		s, err = newDebuggerSink(spec.Debugger)
	default:
		return nil, fmtErrorf("%w: %d", ErrInvalidSinkType, int(spec.Kind))
	}
	if err != nil {
		return nil, err
	}

	s.SetLevel(spec.Level)
	s.SetFormatter(NewPatternFormatter(spec.Pattern))
	return s, nil
}

// baseSink carries the level floor, the formatter and the write lock shared by concrete sinks
type baseSink struct {
	level     atomic.Int32
	mu        sync.Mutex
	formatter Formatter
}

func (b *baseSink) Level() Level {
	return Level(b.level.Load())
}

func (b *baseSink) SetLevel(level Level) {
	b.level.Store(int32(level))
}

func (b *baseSink) ShouldLog(level Level) bool {
	floor := b.Level()
	return floor != LevelOff && level >= floor
}

// SetFormatter takes ownership of a clone so the caller's instance stays independent
func (b *baseSink) SetFormatter(f Formatter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.formatter = f.Clone()
}

// render formats rec, must be called with mu held
func (b *baseSink) render(rec *Record) []byte {
	if b.formatter == nil {
		b.formatter = NewLineFormatter()
	}
	return b.formatter.Format(rec)
}

// writerSink writes rendered lines to an io.Writer
type writerSink struct {
	baseSink
	w io.Writer
}

// NewWriterSink returns a sink writing to w, typically used for tests and embedding
func NewWriterSink(w io.Writer, level Level) Sink {
	s := &writerSink{w: w}
	s.SetLevel(level)
	s.formatter = NewLineFormatter()
	return s
}

func (s *writerSink) Log(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.w.Write(s.render(rec))
	return err
}

func (s *writerSink) Flush() error {
	if syncer, ok := s.w.(interface{ Sync() error }); ok {
		s.mu.Lock()
		defer s.mu.Unlock()
		return syncer.Sync()
	}
	return nil
}

func (s *writerSink) Close() error {
	return nil
}
