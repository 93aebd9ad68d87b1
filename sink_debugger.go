package log

// debuggerSink forwards lines to the platform debugger channel.
// On platforms without one every write is a no-op.
type debuggerSink struct {
	baseSink
	checkForDebugger bool
}

func newDebuggerSink(spec DebuggerSpec) (*debuggerSink, error) {
	return &debuggerSink{checkForDebugger: spec.CheckForDebugger}, nil
}

func (s *debuggerSink) Log(rec *Record) error {
	if !debuggerSupported {
		return nil
	}
	if s.checkForDebugger && !debuggerPresent() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return outputDebugString(string(s.render(rec)))
}

func (s *debuggerSink) Flush() error {
	return nil
}

func (s *debuggerSink) Close() error {
	return nil
}
