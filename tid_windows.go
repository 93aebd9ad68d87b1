//go:build windows

package log

import "golang.org/x/sys/windows"

func currentThreadID() int {
	return int(windows.GetCurrentThreadId())
}
