package main

import (
	"bytes"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/logroute"
)

// countingWriter counts written lines
type countingWriter struct {
	lines atomic.Int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.lines.Add(int64(bytes.Count(p, []byte{'\n'})))
	return len(p), nil
}

type stressResult struct {
	goroutines    int
	registrations int
	records       int64
	written       int64
	elapsed       time.Duration
	consistent    bool
}

func newStressCommand() *cobra.Command {
	var (
		goroutines    int
		registrations int
		messages      int
	)

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Register sinks while loggers write concurrently and verify every logger sees one order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if goroutines < 1 || registrations < 1 || messages < 0 {
				return fmt.Errorf("goroutines and registrations must be positive, messages non-negative")
			}

			res := runStress(goroutines, registrations, messages)

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Goroutines", "Registrations", "Records", "Lines written", "Elapsed", "Consistent"},
				[][]string{{
					strconv.Itoa(res.goroutines),
					strconv.Itoa(res.registrations),
					strconv.FormatInt(res.records, 10),
					strconv.FormatInt(res.written, 10),
					res.elapsed.Round(time.Millisecond).String(),
					strconv.FormatBool(res.consistent),
				}},
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
			))
			if !res.consistent {
				return fmt.Errorf("loggers disagree on the sink order")
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&goroutines, "goroutines", "g", 8, "Concurrent loggers")
	cmd.Flags().IntVarP(&registrations, "registrations", "r", 64, "Sinks registered while logging")
	cmd.Flags().IntVarP(&messages, "messages", "m", 1000, "Records written per logger")

	return cmd
}

// runStress interleaves registrations with logging from separate loggers of one registry
func runStress(goroutines, registrations, messages int) stressResult {
	reg := log.NewRegistry()
	out := &countingWriter{}
	loggers := make([]*log.Logger, goroutines)
	for i := range loggers {
		loggers[i] = reg.NewLogger("worker-" + strconv.Itoa(i))
	}

	var (
		wg      sync.WaitGroup
		records atomic.Int64
	)
	start := time.Now()

	for i := 0; i < registrations; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Register(log.NewWriterSink(out, log.LevelTrace), 0)
		}()
	}
	for _, l := range loggers {
		wg.Add(1)
		go func(l *log.Logger) {
			defer wg.Done()
			for j := 0; j < messages; j++ {
				l.Infof("message %d", j)
				records.Add(1)
			}
		}(l)
	}
	wg.Wait()

	res := stressResult{
		goroutines:    goroutines,
		registrations: registrations,
		records:       records.Load(),
		written:       out.lines.Load(),
		elapsed:       time.Since(start),
		consistent:    true,
	}

	want := reg.Sinks()
	if len(want) != registrations {
		res.consistent = false
	}
	for _, l := range loggers {
		got := l.Sinks()
		if len(got) != len(want) {
			res.consistent = false
			break
		}
		for k := range want {
			if got[k] != want[k] {
				res.consistent = false
				break
			}
		}
	}
	return res
}
