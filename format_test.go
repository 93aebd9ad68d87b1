// FILE: lixenwraith/logroute/format_test.go
package log

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testRecord() *Record {
	return &Record{
		Time:     time.Date(2024, 3, 5, 7, 8, 9, 45*int(time.Millisecond)+123*int(time.Microsecond), time.Local),
		Level:    LevelWarn,
		File:     "/src/app/server.go",
		Line:     42,
		Function: "handleRequest",
		ThreadID: 123,
		Message:  "hello world",
	}
}

func TestPatternFormatter_DefaultPattern(t *testing.T) {
	f := NewLineFormatter()
	assert.Equal(t, DefaultPattern, f.Pattern())

	rec := testRecord()
	want := fmt.Sprintf("%s %6d %-8s %-20s %-30s %s\n",
		"2024-03-05 07:08:09.045", 123, "WARN", "server", "handleRequest", "hello world")
	assert.Equal(t, want, string(f.Format(rec)))

	t.Run("logger name wins over file", func(t *testing.T) {
		named := testRecord()
		named.LoggerName = "api"
		want := fmt.Sprintf("%s %6d %-8s %-20s %-30s %s\n",
			"2024-03-05 07:08:09.045", 123, "WARN", "api", "handleRequest", "hello world")
		assert.Equal(t, want, string(f.Format(named)))
	})

	t.Run("long fields are truncated to their columns", func(t *testing.T) {
		long := testRecord()
		long.LoggerName = strings.Repeat("m", 25)
		long.Function = strings.Repeat("f", 40)
		line := string(f.Format(long))
		assert.Contains(t, line, " "+strings.Repeat("m", 20)+" "+strings.Repeat("f", 30)+" hello world\n")
		assert.NotContains(t, line, strings.Repeat("m", 21))
		assert.NotContains(t, line, strings.Repeat("f", 31))
	})

	t.Run("empty pattern selects default", func(t *testing.T) {
		assert.Equal(t, DefaultPattern, NewPatternFormatter("").Pattern())
	})
}

func TestPatternFormatter_Verbs(t *testing.T) {
	rec := testRecord()

	tests := []struct {
		pattern  string
		expected string
	}{
		{"%L|%l", "W|WARN"},
		{"%s:%#", "server.go:42"},
		{"%g", "/src/app/server.go"},
		{"%f", "045123"},
		{"%Y%m%d%H%M%S", "20240305070809"},
		{"100%% %v", "100% hello world"},
		{"%q stays", "%q stays"},
		{"trailing %", "trailing %"},
		{"[%-6L]", "[W     ]"},
		{"[%4#]", "[  42]"},
		{"[%3v]", "[hello world]"},
		{"[%4s]", "[serv]"},
		{"%t", "123"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			f := NewPatternFormatter(tt.pattern)
			assert.Equal(t, tt.expected+"\n", string(f.Format(rec)))
		})
	}
}

func TestPatternFormatter_UTF8Truncation(t *testing.T) {
	rec := testRecord()
	rec.LoggerName = "模块名称很长"
	f := NewPatternFormatter("[%-4n]")
	assert.Equal(t, "[模块名称]\n", string(f.Format(rec)))
}

func TestPatternFormatter_Clone(t *testing.T) {
	f := NewPatternFormatter("%l %v")
	c := f.Clone()
	assert.NotSame(t, f, c)

	rec := testRecord()
	assert.Equal(t, f.Format(rec), c.Format(rec))
}

func TestPatternFormatter_Deterministic(t *testing.T) {
	f := NewLineFormatter()
	rec := testRecord()
	want := string(f.Format(rec))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := string(f.Format(rec)); got != want {
					t.Errorf("concurrent format mismatch: %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestSinkUsesClonedFormatter(t *testing.T) {
	var buf strings.Builder
	s := NewWriterSink(&buf, LevelTrace)
	s.SetFormatter(NewPatternFormatter("%L %v"))

	rec := testRecord()
	assert.NoError(t, s.Log(rec))
	assert.Equal(t, "W hello world\n", buf.String())
}
