//go:build !windows

package log

const debuggerSupported = false

func debuggerPresent() bool {
	return false
}

func outputDebugString(string) error {
	return nil
}
