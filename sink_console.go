package log

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// levelColors maps each level to its console attribute set
var levelColors = map[Level]*color.Color{
	LevelTrace:    color.New(color.FgWhite),
	LevelDebug:    color.New(color.FgCyan),
	LevelInfo:     color.New(color.FgGreen),
	LevelWarn:     color.New(color.FgYellow, color.Bold),
	LevelError:    color.New(color.FgRed, color.Bold),
	LevelCritical: color.New(color.FgWhite, color.BgRed, color.Bold),
}

func init() {
	// Colouring is decided per sink from the target's terminal state, not globally
	for _, c := range levelColors {
		c.EnableColor()
	}
}

// consoleSink writes to stdout or stderr, colouring lines by level on a terminal
type consoleSink struct {
	baseSink
	w        io.Writer
	colorize bool
}

func newConsoleSink(spec ConsoleSpec) (*consoleSink, error) {
	var f *os.File
	switch spec.Target {
	case "", TargetStdout:
		f = os.Stdout
	case TargetStderr:
		f = os.Stderr
	default:
		return nil, fmtErrorf("invalid console target: '%s' (use stdout or stderr)", spec.Target)
	}

	colorize := !spec.NoColor && isTerminal(f)
	var w io.Writer = f
	if colorize {
		// Translates ANSI sequences on legacy Windows consoles, passthrough elsewhere
		w = colorable.NewColorable(f)
	}
	return &consoleSink{w: w, colorize: colorize}, nil
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (s *consoleSink) Log(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := s.render(rec)
	if s.colorize {
		if c, ok := levelColors[rec.Level]; ok && len(line) > 0 {
			line = append([]byte(c.Sprint(string(line[:len(line)-1]))), '\n')
		}
	}
	_, err := s.w.Write(line)
	return err
}

func (s *consoleSink) Flush() error {
	return nil
}

// Close leaves the process streams open
func (s *consoleSink) Close() error {
	return nil
}
