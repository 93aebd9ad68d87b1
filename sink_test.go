// FILE: lixenwraith/logroute/sink_test.go
package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileSpec(path string) SinkSpec {
	spec := DefaultSinkSpec(SinkFile)
	spec.File.Filename = path
	spec.Pattern = "%l %v"
	return spec
}

func TestNewSink(t *testing.T) {
	t.Run("applies level and pattern", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.log")
		spec := fileSpec(path)
		spec.Level = LevelWarn

		s, err := NewSink(spec)
		require.NoError(t, err)
		defer s.Close()

		assert.Equal(t, LevelWarn, s.Level())
		assert.False(t, s.ShouldLog(LevelInfo))
		assert.True(t, s.ShouldLog(LevelError))
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := NewSink(SinkSpec{Kind: SinkKind(9)})
		assert.ErrorIs(t, err, ErrInvalidSinkType)
	})

	t.Run("invalid console target", func(t *testing.T) {
		spec := DefaultSinkSpec(SinkConsole)
		spec.Console.Target = "printer"
		_, err := NewSink(spec)
		assert.Error(t, err)
	})

	t.Run("file needs backups", func(t *testing.T) {
		spec := fileSpec(filepath.Join(t.TempDir(), "a.log"))
		spec.File.MaxFiles = 0
		_, err := NewSink(spec)
		assert.Error(t, err)
	})

	t.Run("kind names", func(t *testing.T) {
		assert.Equal(t, "console", SinkConsole.String())
		assert.Equal(t, "file", SinkFile.String())
		assert.Equal(t, "debugger-output", SinkDebugger.String())
		assert.Equal(t, "unknown", SinkKind(9).String())
	})
}

func TestFileSink(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "app.log")

	s, err := NewSink(fileSpec(path))
	require.NoError(t, err)
	assert.Equal(t, path, s.(*fileSink).Filename())

	require.NoError(t, s.Log(&Record{Level: LevelInfo, Message: "one"}))
	require.NoError(t, s.Log(&Record{Level: LevelError, Message: "two"}))
	require.NoError(t, s.Flush())
	require.NoError(t, s.Close())

	// Writes after close are dropped rather than reopening the file
	require.NoError(t, s.Log(&Record{Level: LevelInfo, Message: "late"}))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "INFO one\nERROR two\n", string(data))
}

func TestFileSinkRotateOnSession(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	t.Run("fresh file is not rotated", func(t *testing.T) {
		spec := fileSpec(path)
		spec.File.RotateOnSession = true
		s, err := NewSink(spec)
		require.NoError(t, err)
		require.NoError(t, s.Log(&Record{Level: LevelInfo, Message: "first session"}))
		require.NoError(t, s.Close())

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("existing file is rotated", func(t *testing.T) {
		spec := fileSpec(path)
		spec.File.RotateOnSession = true
		s, err := NewSink(spec)
		require.NoError(t, err)
		require.NoError(t, s.Log(&Record{Level: LevelInfo, Message: "second session"}))
		require.NoError(t, s.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "INFO second session\n", string(data))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		var backup string
		for _, e := range entries {
			if e.Name() != "app.log" {
				backup = e.Name()
			}
		}
		assert.True(t, strings.HasPrefix(backup, "app-"), "backup %q", backup)
		old, err := os.ReadFile(filepath.Join(dir, backup))
		require.NoError(t, err)
		assert.Equal(t, "INFO first session\n", string(old))
	})

	t.Run("without rotation the file is appended", func(t *testing.T) {
		s, err := NewSink(fileSpec(path))
		require.NoError(t, err)
		require.NoError(t, s.Log(&Record{Level: LevelInfo, Message: "third session"}))
		require.NoError(t, s.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "INFO second session\nINFO third session\n", string(data))
	})
}

func TestConsoleSink(t *testing.T) {
	spec := DefaultSinkSpec(SinkConsole)
	spec.Console.Target = TargetStderr
	spec.Level = LevelOff

	s, err := NewSink(spec)
	require.NoError(t, err)
	assert.False(t, s.ShouldLog(LevelCritical))
	assert.NoError(t, s.Flush())
	assert.NoError(t, s.Close())
}

func TestDebuggerSink(t *testing.T) {
	spec := DefaultSinkSpec(SinkDebugger)
	spec.Debugger.CheckForDebugger = true

	s, err := NewSink(spec)
	require.NoError(t, err)
	assert.NoError(t, s.Log(&Record{Level: LevelInfo, Message: "to debugger"}))
	assert.NoError(t, s.Close())
}
