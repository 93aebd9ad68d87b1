// FILE: lixenwraith/logroute/utility_test.go
package log

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"trace", LevelTrace, false},
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"err", LevelError, false},
		{"Critical", LevelCritical, false},
		{"off", LevelOff, false},
		{"verbose", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLevel)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, level)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "TRACE", LevelTrace.String())
	assert.Equal(t, "CRITICAL", LevelCritical.String())
	assert.Equal(t, "OFF", LevelOff.String())
	assert.Equal(t, "LEVEL(42)", Level(42).String())
	assert.Equal(t, "C", LevelCritical.shortString())
	assert.True(t, LevelTrace < LevelDebug && LevelError < LevelCritical && LevelCritical < LevelOff)
}

func TestParseKeyValue(t *testing.T) {
	tests := []struct {
		input     string
		wantKey   string
		wantValue string
		wantErr   bool
	}{
		{"key=value", "key", "value", false},
		{" key = value ", "key", "value", false},
		{"key=value=with=equals", "key", "value=with=equals", false},
		{"noequals", "", "", true},
		{"=value", "", "", true},
		{"key=", "key", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, value, err := parseKeyValue(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestShortFuncName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"github.com/lixenwraith/logroute.TestShortFuncName", "TestShortFuncName"},
		{"main.main", "main"},
		{"github.com/acme/app/server.(*Server).handle", "handle"},
		{"github.com/acme/app/server.Start.func1", "Start"},
		{"github.com/acme/app/server.Start.func2.3", "3"},
		{"main.funcName", "funcName"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, shortFuncName(tt.input))
		})
	}
}

func TestModuleLabel(t *testing.T) {
	assert.Equal(t, "server", moduleLabel("/src/app/server.go"))
	assert.Equal(t, "main", moduleLabel(`C:\src\app\main.cpp`))
	assert.Equal(t, "Makefile", moduleLabel("Makefile"))
	assert.Equal(t, "", moduleLabel(""))
}

func TestCaller(t *testing.T) {
	file, line, fn := Caller(0)
	assert.Equal(t, "utility_test.go", filepath.Base(file))
	assert.Positive(t, line)
	assert.Equal(t, "TestCaller", fn)

	helper := func() (string, int, string) {
		return Caller(1)
	}
	_, _, fn = helper()
	assert.Equal(t, "TestCaller", fn)
}

func TestErrorHelpers(t *testing.T) {
	err := fmtErrorf("wrapped: %w", ErrInvalidSinkType)
	assert.True(t, strings.HasPrefix(err.Error(), "log: "))
	assert.ErrorIs(t, err, ErrInvalidSinkType)

	already := fmtErrorf("log: prefixed")
	assert.Equal(t, "log: prefixed", already.Error())

	a, b := errors.New("a"), errors.New("b")
	assert.Nil(t, combineErrors(nil, nil))
	assert.Equal(t, a, combineErrors(a, nil))
	assert.Equal(t, b, combineErrors(nil, b))
	combined := combineErrors(a, b)
	assert.Equal(t, fmt.Sprintf("%v; %v", a, b), combined.Error())
	assert.ErrorIs(t, combined, b)
}
