package log

import (
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// fileSink writes to a size-rotated file.
// Rotation is delegated to lumberjack, which counts sizes in whole megabytes.
type fileSink struct {
	baseSink
	lj     *lumberjack.Logger
	closed bool
}

func newFileSink(spec FileSpec) (*fileSink, error) {
	if spec.Filename == "" {
		return nil, fmtErrorf("file sink requires a filename")
	}
	if spec.MaxFiles == 0 {
		return nil, fmtErrorf("max files must be positive for '%s'", spec.Filename)
	}

	// Fail at construction rather than on first write
	if dir := filepath.Dir(spec.Filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmtErrorf("failed to create log directory '%s': %w", dir, err)
		}
	}
	existing := false
	if fi, err := os.Stat(spec.Filename); err == nil && fi.Size() > 0 {
		existing = true
	}
	probe, err := os.OpenFile(spec.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmtErrorf("failed to open log file '%s': %w", spec.Filename, err)
	}
	_ = probe.Close()

	maxMB, rounded := megabytesFor(spec.MaxSize)
	if rounded {
		internalLog("max file size %d bytes for '%s' rounded up to %d MiB\n", spec.MaxSize, spec.Filename, maxMB)
	}
	lj := &lumberjack.Logger{
		Filename:   spec.Filename,
		MaxSize:    maxMB,
		MaxBackups: int(spec.MaxFiles),
	}
	s := &fileSink{lj: lj}

	if spec.RotateOnSession && existing {
		if err := lj.Rotate(); err != nil {
			_ = lj.Close()
			return nil, fmtErrorf("failed to rotate log file '%s' on session start: %w", spec.Filename, err)
		}
	}
	return s, nil
}

// megabytesFor rounds a byte limit up to lumberjack's megabyte granularity and reports
// whether the limit changed
func megabytesFor(size uint64) (int, bool) {
	if size == 0 {
		return int(DefaultMaxFileSize / lumberjackUnit), false
	}
	mb := (size + lumberjackUnit - 1) / lumberjackUnit
	return int(mb), size%lumberjackUnit != 0
}

func (s *fileSink) Log(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		// lumberjack would silently reopen the file
		return nil
	}
	_, err := s.lj.Write(s.render(rec))
	return err
}

// Flush is a no-op, lumberjack does not buffer
func (s *fileSink) Flush() error {
	return nil
}

func (s *fileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.lj.Close()
}

// Filename returns the active file path
func (s *fileSink) Filename() string {
	return s.lj.Filename
}
