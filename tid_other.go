//go:build !linux && !windows

package log

import "os"

// No portable thread id outside linux and windows; the process id keeps the column populated
func currentThreadID() int {
	return os.Getpid()
}
