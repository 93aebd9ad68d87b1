// FILE: lixenwraith/logroute/builder.go
package log

import (
	"time"
)

// options is the state shared by all sink builders.
// Errors from string setters are accumulated and returned by Apply.
type options struct {
	reg     *Registry
	spec    SinkSpec
	err     error
	applied bool
}

func newOptions(reg *Registry, kind SinkKind) options {
	spec := DefaultSinkSpec(kind)
	spec.Level = reg.DefaultLevel()
	return options{reg: reg, spec: spec}
}

// apply registers the accumulated spec exactly once
func (o *options) apply() error {
	if o.applied {
		return fmtErrorf("%w: %s sink", ErrAlreadyApplied, o.spec.Kind)
	}
	o.applied = true
	if o.err != nil {
		return o.err
	}
	_, err := o.reg.AddSink(o.spec)
	return err
}

func (o *options) setLevelString(level string) {
	if o.err != nil {
		return
	}
	l, err := ParseLevel(level)
	if err != nil {
		o.err = err
		return
	}
	o.spec.Level = l
}

// ConsoleOptions builds a console sink
type ConsoleOptions struct {
	options
}

// AddConsoleOutput starts a console sink builder; nothing is registered until Apply
func (r *Registry) AddConsoleOutput() *ConsoleOptions {
	return &ConsoleOptions{options: newOptions(r, SinkConsole)}
}

// SetLevel sets the sink floor.
func (o *ConsoleOptions) SetLevel(level Level) *ConsoleOptions {
	o.spec.Level = level
	return o
}

// SetLevelString sets the sink floor from its name.
func (o *ConsoleOptions) SetLevelString(level string) *ConsoleOptions {
	o.setLevelString(level)
	return o
}

// SetMaxSkipDuration enables duplicate suppression for d.
func (o *ConsoleOptions) SetMaxSkipDuration(d time.Duration) *ConsoleOptions {
	o.spec.SkipDuration = d
	return o
}

// SetPattern sets the line pattern.
func (o *ConsoleOptions) SetPattern(pattern string) *ConsoleOptions {
	o.spec.Pattern = pattern
	return o
}

// SetTarget selects "stdout" or "stderr".
func (o *ConsoleOptions) SetTarget(target string) *ConsoleOptions {
	o.spec.Console.Target = target
	return o
}

// DisableColor turns off level colouring.
func (o *ConsoleOptions) DisableColor(disable bool) *ConsoleOptions {
	o.spec.Console.NoColor = disable
	return o
}

// Spec returns the accumulated sink description
func (o *ConsoleOptions) Spec() SinkSpec {
	return o.spec
}

// Apply builds and registers the sink. Subsequent calls return ErrAlreadyApplied.
func (o *ConsoleOptions) Apply() error {
	return o.apply()
}

// FileOptions builds a rotating file sink
type FileOptions struct {
	options
}

// AddFileOutput starts a file sink builder; nothing is registered until Apply
func (r *Registry) AddFileOutput() *FileOptions {
	return &FileOptions{options: newOptions(r, SinkFile)}
}

// SetLevel sets the sink floor.
func (o *FileOptions) SetLevel(level Level) *FileOptions {
	o.spec.Level = level
	return o
}

// SetLevelString sets the sink floor from its name.
func (o *FileOptions) SetLevelString(level string) *FileOptions {
	o.setLevelString(level)
	return o
}

// SetMaxSkipDuration enables duplicate suppression for d.
func (o *FileOptions) SetMaxSkipDuration(d time.Duration) *FileOptions {
	o.spec.SkipDuration = d
	return o
}

// SetPattern sets the line pattern.
func (o *FileOptions) SetPattern(pattern string) *FileOptions {
	o.spec.Pattern = pattern
	return o
}

// SetFilename sets the path of the active log file.
func (o *FileOptions) SetFilename(filename string) *FileOptions {
	o.spec.File.Filename = filename
	return o
}

// SetMaxFileSize sets the rotation threshold in bytes. Files rotate on whole MiB boundaries,
// so a size that is not a multiple of 1 MiB is rounded up; "100KB" rotates at 1 MiB.
func (o *FileOptions) SetMaxFileSize(size uint64) *FileOptions {
	o.spec.File.MaxSize = size
	return o
}

// SetMaxFileSizeString sets the rotation threshold from a size string such as "5MB".
// Rounding follows SetMaxFileSize.
func (o *FileOptions) SetMaxFileSizeString(size string) *FileOptions {
	if o.err != nil {
		return o
	}
	n, err := ParseFileSize(size)
	if err != nil {
		o.err = err
		return o
	}
	o.spec.File.MaxSize = n
	return o
}

// SetMaxFiles sets how many rotated files are kept.
func (o *FileOptions) SetMaxFiles(n uint64) *FileOptions {
	o.spec.File.MaxFiles = n
	return o
}

// SetRotateOnSession rotates an existing file when the sink is created.
func (o *FileOptions) SetRotateOnSession(rotate bool) *FileOptions {
	o.spec.File.RotateOnSession = rotate
	return o
}

// Spec returns the accumulated sink description
func (o *FileOptions) Spec() SinkSpec {
	return o.spec
}

// Apply builds and registers the sink. Subsequent calls return ErrAlreadyApplied.
func (o *FileOptions) Apply() error {
	return o.apply()
}

// DebuggerOptions builds a debugger-channel sink
type DebuggerOptions struct {
	options
}

// AddDebuggerOutput starts a debugger sink builder; nothing is registered until Apply
func (r *Registry) AddDebuggerOutput() *DebuggerOptions {
	return &DebuggerOptions{options: newOptions(r, SinkDebugger)}
}

// SetLevel sets the sink floor.
func (o *DebuggerOptions) SetLevel(level Level) *DebuggerOptions {
	o.spec.Level = level
	return o
}

// SetLevelString sets the sink floor from its name.
func (o *DebuggerOptions) SetLevelString(level string) *DebuggerOptions {
	o.setLevelString(level)
	return o
}

// SetMaxSkipDuration enables duplicate suppression for d.
func (o *DebuggerOptions) SetMaxSkipDuration(d time.Duration) *DebuggerOptions {
	o.spec.SkipDuration = d
	return o
}

// SetPattern sets the line pattern.
func (o *DebuggerOptions) SetPattern(pattern string) *DebuggerOptions {
	o.spec.Pattern = pattern
	return o
}

// CheckForPresentDebugger only writes while a debugger is attached.
func (o *DebuggerOptions) CheckForPresentDebugger(check bool) *DebuggerOptions {
	o.spec.Debugger.CheckForDebugger = check
	return o
}

// Spec returns the accumulated sink description
func (o *DebuggerOptions) Spec() SinkSpec {
	return o.spec
}

// Apply builds and registers the sink. Subsequent calls return ErrAlreadyApplied.
func (o *DebuggerOptions) Apply() error {
	return o.apply()
}

// Example usage:
//
//	reg := log.NewRegistry()
//	if err := reg.AddFileOutput().
//		SetFilename("/var/log/app/app.log").
//		SetMaxFileSizeString("5MB").
//		SetMaxFiles(3).
//		SetLevel(log.LevelDebug).
//		SetMaxSkipDuration(2 * time.Second).
//		Apply(); err != nil {
//		// handle configuration error
//	}
//	reg.Logger().Info("file output ready")
