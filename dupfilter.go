// FILE: lixenwraith/logroute/dupfilter.go
package log

import (
	"fmt"
	"time"
)

// DupFilterSink drops records whose message repeats the last emitted one within a time window.
// The window is measured on record timestamps from the last emitted record.
// Level filtering happens here once; the inner sink is kept at the same floor.
type DupFilterSink struct {
	baseSink
	inner  Sink
	window time.Duration

	lastMessage string
	lastTime    time.Time
	hasLast     bool
	skipped     int
}

// NewDupFilterSink wraps inner with a suppression window. The decorator adopts inner's level.
func NewDupFilterSink(inner Sink, window time.Duration) *DupFilterSink {
	d := &DupFilterSink{inner: inner, window: window}
	d.baseSink.SetLevel(inner.Level())
	return d
}

// Inner returns the wrapped sink
func (d *DupFilterSink) Inner() Sink {
	return d.inner
}

// Window returns the suppression window
func (d *DupFilterSink) Window() time.Duration {
	return d.window
}

// SetLevel applies the floor to both the decorator and the inner sink
func (d *DupFilterSink) SetLevel(level Level) {
	d.baseSink.SetLevel(level)
	d.inner.SetLevel(level)
}

// SetFormatter is forwarded, the decorator itself never renders
func (d *DupFilterSink) SetFormatter(f Formatter) {
	d.inner.SetFormatter(f)
}

func (d *DupFilterSink) Log(rec *Record) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.isDuplicate(rec) {
		d.skipped++
		return nil
	}

	var err error
	if d.skipped > 0 {
		notice := *rec
		notice.Message = fmt.Sprintf(dupSkipNoticeFormat, d.skipped)
		err = d.inner.Log(&notice)
	}

	err = combineErrors(err, d.inner.Log(rec))
	d.lastMessage = rec.Message
	d.lastTime = rec.Time
	d.hasLast = true
	d.skipped = 0
	return err
}

// isDuplicate reports whether rec repeats the last emitted message inside the window
func (d *DupFilterSink) isDuplicate(rec *Record) bool {
	if !d.hasLast || rec.Message != d.lastMessage {
		return false
	}
	return rec.Time.Sub(d.lastTime) < d.window
}

func (d *DupFilterSink) Flush() error {
	return d.inner.Flush()
}

func (d *DupFilterSink) Close() error {
	return d.inner.Close()
}
