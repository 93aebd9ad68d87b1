// FILE: lixenwraith/logroute/compat/compat_test.go
package compat

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/logroute"
)

// syncBuffer is a bytes.Buffer safe for the sink's writer
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := strings.TrimRight(b.buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// createTestCompatBuilder returns a builder over a registry writing "LEVEL|module|message" lines
func createTestCompatBuilder(t *testing.T) (*Builder, *log.Registry, *syncBuffer) {
	t.Helper()
	buf := &syncBuffer{}
	reg := log.NewRegistry()
	sink := log.NewWriterSink(buf, log.LevelTrace)
	sink.SetFormatter(log.NewPatternFormatter("%l|%n|%v"))
	reg.Register(sink, 0)
	return NewBuilder().WithRegistry(reg), reg, buf
}

func TestCompatBuilder(t *testing.T) {
	t.Run("with registry", func(t *testing.T) {
		builder, reg, _ := createTestCompatBuilder(t)

		gnetAdapter, err := builder.BuildGnet()
		require.NoError(t, err)
		assert.Equal(t, "gnet", gnetAdapter.logger.Name())

		got, err := builder.GetRegistry()
		require.NoError(t, err)
		assert.Same(t, reg, got)
		assert.Equal(t, 1, reg.Loggers())
	})

	t.Run("with shared logger", func(t *testing.T) {
		l := log.NewRegistry().NewLogger("app")
		builder := NewBuilder().WithLogger(l)

		fasthttpAdapter, err := builder.BuildFastHTTP()
		require.NoError(t, err)
		assert.Same(t, l, fasthttpAdapter.logger)
	})

	t.Run("with settings", func(t *testing.T) {
		s := log.DefaultSettings()
		s.Name = "edge"
		s.Level = "warn"

		builder := NewBuilder().WithSettings(s)
		reg, err := builder.GetRegistry()
		require.NoError(t, err)
		assert.Equal(t, "edge", reg.Name())
		assert.Equal(t, log.LevelWarn, reg.DefaultLevel())
		assert.NotSame(t, log.Default(), reg)
	})

	t.Run("invalid settings", func(t *testing.T) {
		s := log.DefaultSettings()
		s.Level = "loud"

		_, err := NewBuilder().WithSettings(s).BuildGnet()
		assert.ErrorIs(t, err, log.ErrInvalidLevel)
	})

	t.Run("nil logger", func(t *testing.T) {
		_, err := NewBuilder().WithLogger(nil).BuildGnet()
		assert.Error(t, err)
	})
}

func TestGnetAdapter(t *testing.T) {
	builder, _, buf := createTestCompatBuilder(t)

	var fatalMsg string
	adapter, err := builder.BuildGnet(WithFatalHandler(func(msg string) {
		fatalMsg = msg
	}))
	require.NoError(t, err)

	adapter.Debugf("gnet debug id=%d", 1)
	adapter.Infof("gnet info id=%d", 2)
	adapter.Warnf("gnet warn id=%d", 3)
	adapter.Errorf("gnet error id=%d", 4)
	adapter.Fatalf("gnet fatal id=%d", 5)

	assert.Equal(t, []string{
		"DEBUG|gnet|gnet debug id=1",
		"INFO|gnet|gnet info id=2",
		"WARN|gnet|gnet warn id=3",
		"ERROR|gnet|gnet error id=4",
		"CRITICAL|gnet|gnet fatal id=5",
	}, buf.lines())
	assert.Equal(t, "gnet fatal id=5", fatalMsg)
}

func TestGnetAdapterCaller(t *testing.T) {
	buf := &syncBuffer{}
	reg := log.NewRegistry()
	sink := log.NewWriterSink(buf, log.LevelTrace)
	sink.SetFormatter(log.NewPatternFormatter("%s|%!"))
	reg.Register(sink, 0)

	adapter := NewGnetAdapter(reg.NewLogger(""))
	adapter.Infof("where")

	assert.Equal(t, []string{"compat_test.go|TestGnetAdapterCaller"}, buf.lines())
}

func TestGnetAdapterLevelFloor(t *testing.T) {
	builder, _, buf := createTestCompatBuilder(t)
	adapter, err := builder.BuildGnet()
	require.NoError(t, err)

	adapter.logger.SetLevel(log.LevelWarn)
	adapter.Debugf("hidden")
	adapter.Infof("hidden")
	adapter.Warnf("shown")

	assert.Equal(t, []string{"WARN|gnet|shown"}, buf.lines())
}

func TestStructuredGnetAdapter(t *testing.T) {
	builder, _, buf := createTestCompatBuilder(t)

	adapter, err := builder.BuildStructuredGnet()
	require.NoError(t, err)

	adapter.Infof("request served status=%d client_ip=%s", 200, "127.0.0.1")
	adapter.Warnf("slow user=%s elapsed: %v", "bob smith", "3s")
	adapter.Errorf("plain %s message", "unstructured")

	assert.Equal(t, []string{
		"INFO|gnet|request served status=200 client_ip=127.0.0.1",
		`WARN|gnet|slow user="bob smith" elapsed=3s`,
		"ERROR|gnet|plain unstructured message",
	}, buf.lines())
}

func TestNormalizeFormat(t *testing.T) {
	testCases := []struct {
		name     string
		format   string
		args     []any
		expected string
	}{
		{"no fields", "hello %s", []any{"world"}, "hello world"},
		{"fields only", "a=%d b=%s", []any{1, "x"}, "a=1 b=x"},
		{"trailing text", "conn id=%d closed after %s", []any{7, "5s"}, "conn id=7 closed after 5s"},
		{"quoted value", "path=%s", []any{"/tmp/a b"}, `path="/tmp/a b"`},
		{"too few args", "a=%d b=%d", []any{1}, "a=1 b=%!d(MISSING)"},
		{"verbs before fields", "%d items user=%v", []any{5, "bob"}, "5 items user=bob"},
		{"verbs between fields", "req=%d took %dms status=%s", []any{3, 40, "ok"}, "req=3 took 40ms status=ok"},
		{"separator between fields", "a=%d, b=%s", []any{1, "x"}, "a=1 b=x"},
		{"escaped percent", "100%% of %d user=%s", []any{4, "amy"}, "100% of 4 user=amy"},
		{"prefix verbs short of args", "%d %d user=%v", []any{1, 2}, "1 2 user=%!v(MISSING)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, normalizeFormat(tc.format, tc.args))
		})
	}
}

func TestFastHTTPAdapter(t *testing.T) {
	builder, _, buf := createTestCompatBuilder(t)

	adapter, err := builder.BuildFastHTTP()
	require.NoError(t, err)

	testMessages := []string{
		"this is some informational message",
		"a debug message for the developers",
		"warning: something might be wrong",
		"an error occurred while processing",
	}
	for _, msg := range testMessages {
		adapter.Printf("%s", msg)
	}

	expectedLevels := []string{"INFO", "DEBUG", "WARN", "ERROR"}
	lines := buf.lines()
	require.Len(t, lines, 4)
	for i, line := range lines {
		assert.Equal(t, expectedLevels[i]+"|fasthttp|"+testMessages[i], line)
	}
}

func TestFastHTTPAdapterOptions(t *testing.T) {
	builder, _, buf := createTestCompatBuilder(t)

	adapter, err := builder.BuildFastHTTP(
		WithDefaultLevel(log.LevelWarn),
		WithLevelDetector(func(msg string) log.Level {
			if strings.HasPrefix(msg, "!") {
				return log.LevelCritical
			}
			return log.LevelOff
		}),
	)
	require.NoError(t, err)

	adapter.Printf("ordinary")
	adapter.Printf("!urgent")

	assert.Equal(t, []string{
		"WARN|fasthttp|ordinary",
		"CRITICAL|fasthttp|!urgent",
	}, buf.lines())
}

func TestDetectLogLevel(t *testing.T) {
	assert.Equal(t, log.LevelError, DetectLogLevel("Request FAILED"))
	assert.Equal(t, log.LevelWarn, DetectLogLevel("deprecated header"))
	assert.Equal(t, log.LevelDebug, DetectLogLevel("trace id 12"))
	assert.Equal(t, log.LevelOff, DetectLogLevel("served 200"))
}

func TestCountVerbs(t *testing.T) {
	assert.Equal(t, 0, countVerbs("plain text"))
	assert.Equal(t, 0, countVerbs("100%% done"))
	assert.Equal(t, 2, countVerbs("%d of %-8s"))
	assert.Equal(t, 2, countVerbs("%*d"))
	assert.Equal(t, 1, countVerbs("%6.2f%%"))
}
