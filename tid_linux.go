//go:build linux

package log

import "golang.org/x/sys/unix"

// currentThreadID returns the OS thread the calling goroutine is running on
func currentThreadID() int {
	return unix.Gettid()
}
