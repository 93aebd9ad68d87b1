//go:build windows

package log

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const debuggerSupported = true

var (
	kernel32              = windows.NewLazySystemDLL("kernel32.dll")
	procOutputDebugString = kernel32.NewProc("OutputDebugStringW")
	procIsDebuggerPresent = kernel32.NewProc("IsDebuggerPresent")
)

func debuggerPresent() bool {
	if procIsDebuggerPresent.Find() != nil {
		return false
	}
	r, _, _ := procIsDebuggerPresent.Call()
	return r != 0
}

func outputDebugString(s string) error {
	if err := procOutputDebugString.Find(); err != nil {
		return fmtErrorf("debugger output unavailable: %w", err)
	}
	p, err := windows.UTF16PtrFromString(s)
	if err != nil {
		return fmtErrorf("failed to encode debugger output: %w", err)
	}
	procOutputDebugString.Call(uintptr(unsafe.Pointer(p)))
	return nil
}
