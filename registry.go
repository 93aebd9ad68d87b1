// FILE: lixenwraith/logroute/registry.go
package log

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Registry is the authoritative, ordered set of sinks shared by every logger it created.
// Mutations serialize on mu; the lazily created default logger is guarded by createMu.
// Lock order is createMu before mu.
type Registry struct {
	mu       sync.Mutex
	sinks    []Sink
	implicit bool // sinks holds only the auto-created default console
	name     string
	level    Level
	loggers  []*Logger

	createMu sync.Mutex
	def      atomic.Pointer[Logger]

	// newDefaultSink builds the fallback console sink
	newDefaultSink func(level Level) (Sink, error)
}

// NewRegistry creates an empty registry with default level Info
func NewRegistry() *Registry {
	return &Registry{
		level:          DefaultLevel,
		newDefaultSink: defaultConsoleSink,
	}
}

func defaultConsoleSink(level Level) (Sink, error) {
	spec := DefaultSinkSpec(SinkConsole)
	spec.Level = level
	return NewSink(spec)
}

// Name returns the display name given to loggers created by the registry
func (r *Registry) Name() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.name
}

// SetName sets the display name and renames the default logger if it exists
func (r *Registry) SetName(name string) {
	r.mu.Lock()
	r.name = name
	r.mu.Unlock()

	if l := r.def.Load(); l != nil {
		l.setName(name)
	}
}

// DefaultLevel returns the floor used for the fallback console sink and new options
func (r *Registry) DefaultLevel() Level {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.level
}

// SetDefaultLevel sets the floor used for the fallback console sink and new options
func (r *Registry) SetDefaultLevel(level Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.level = level
}

// Sinks returns a copy of the registered sinks in emission order
func (r *Registry) Sinks() []Sink {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sink, len(r.sinks))
	copy(out, r.sinks)
	return out
}

// Register appends sink, wrapped in a DupFilterSink when skip is positive, and pushes the
// updated set to every live logger before returning. It returns the sink as registered.
func (r *Registry) Register(sink Sink, skip time.Duration) Sink {
	if skip > 0 {
		sink = NewDupFilterSink(sink, skip)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.implicit {
		// First explicit registration replaces the fallback console
		for _, s := range r.sinks {
			_ = s.Close()
		}
		r.sinks = nil
		r.implicit = false
	}
	r.sinks = append(r.sinks, sink)
	r.applyLocked()
	return sink
}

// Apply pushes the current sink set to every live logger
func (r *Registry) Apply() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applyLocked()
}

// applyLocked publishes one immutable snapshot to all loggers, mu must be held
func (r *Registry) applyLocked() {
	snapshot := make([]Sink, len(r.sinks))
	copy(snapshot, r.sinks)
	for _, l := range r.loggers {
		l.setSinks(snapshot)
	}
}

// AddSink constructs the sink described by spec and registers it.
// A construction failure is reported through the default logger and returned;
// the registry is left unchanged.
func (r *Registry) AddSink(spec SinkSpec) (Sink, error) {
	sink, err := NewSink(spec)
	if err != nil {
		r.reportError(fmt.Sprintf("failed to create %s sink: %v", spec.Kind, err))
		return nil, err
	}
	return r.Register(sink, spec.SkipDuration), nil
}

// reportError logs a registry failure through the default logger
func (r *Registry) reportError(msg string) {
	l := r.Logger()
	file, line, fn := callerInfo(2)
	l.Log(LevelError, file, line, fn, msg)
}

// Logger returns the default logger, creating it on first use.
// When no sink is registered at that point a console sink at the default level is installed;
// it is replaced by the first explicit registration.
func (r *Registry) Logger() *Logger {
	if l := r.def.Load(); l != nil {
		return l
	}

	r.createMu.Lock()
	defer r.createMu.Unlock()

	if l := r.def.Load(); l != nil {
		return l
	}

	r.mu.Lock()
	l := newLogger(r.name)
	if len(r.sinks) == 0 {
		if s, err := r.newDefaultSink(r.level); err == nil {
			r.sinks = []Sink{s}
			r.implicit = true
		} else {
			internalLog("failed to create default console sink: %v\n", err)
		}
	}
	r.loggers = append(r.loggers, l)
	r.applyLocked()
	r.mu.Unlock()

	r.def.Store(l)
	return l
}

// NewLogger attaches an additional named logger sharing the registry's sinks
func (r *Registry) NewLogger(name string) *Logger {
	l := newLogger(name)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loggers = append(r.loggers, l)
	snapshot := make([]Sink, len(r.sinks))
	copy(snapshot, r.sinks)
	l.setSinks(snapshot)
	return l
}

// Loggers returns the number of live loggers attached to the registry
func (r *Registry) Loggers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.loggers)
}

// DropAll detaches every logger, closes and discards every sink and forgets the default logger.
// Detached loggers stay usable but write nowhere. The next Logger call creates a fresh default.
func (r *Registry) DropAll() error {
	r.createMu.Lock()
	r.mu.Lock()
	old := r.sinks
	r.sinks = nil
	r.implicit = false
	for _, l := range r.loggers {
		l.setSinks(nil)
	}
	r.loggers = nil
	r.def.Store(nil)
	r.mu.Unlock()
	r.createMu.Unlock()

	var err error
	for _, s := range old {
		if closeErr := s.Close(); closeErr != nil {
			err = combineErrors(err, fmtErrorf("failed to close sink: %w", closeErr))
		}
	}
	return err
}

// DropAllAndCreateDefaultLogger drops everything and returns a fresh default logger
// writing only to a new console sink
func (r *Registry) DropAllAndCreateDefaultLogger() *Logger {
	if err := r.DropAll(); err != nil {
		internalLog("%v\n", err)
	}
	return r.Logger()
}

// Flush flushes every registered sink
func (r *Registry) Flush() error {
	var err error
	for _, s := range r.Sinks() {
		err = combineErrors(err, s.Flush())
	}
	return err
}
