package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/logroute"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <document>",
		Short: "Validate a sink document and list the sinks it describes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := log.ReadSinkDocument(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), describeDocument(doc))
			return nil
		},
	}
}

func describeDocument(doc *log.Document) string {
	name := doc.Name
	if name == "" {
		name = "(unnamed)"
	}
	level := "(registry default)"
	if doc.Level != nil {
		level = doc.Level.String()
	}
	summary := fmt.Sprintf("name: %s  default level: %s  sinks: %d", name, level, len(doc.Sinks))
	if len(doc.Sinks) == 0 {
		return summary + "\nno sinks listed, a console sink is registered on load"
	}

	rows := make([][]string, 0, len(doc.Sinks))
	for i, spec := range doc.Sinks {
		skip := "-"
		if spec.SkipDuration > 0 {
			skip = spec.SkipDuration.String()
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			spec.Kind.String(),
			spec.Level.String(),
			skip,
			sinkDetail(spec),
		})
	}
	table := renderTable(
		[]string{"#", "Type", "Level", "Skip", "Detail"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
	)
	return summary + "\n" + table
}

func sinkDetail(spec log.SinkSpec) string {
	switch spec.Kind {
	case log.SinkConsole:
		return spec.Console.Target
	case log.SinkFile:
		detail := fmt.Sprintf("%s max=%dB files=%d", spec.File.Filename, spec.File.MaxSize, spec.File.MaxFiles)
		if spec.File.RotateOnSession {
			detail += " rotate-on-session"
		}
		return detail
	case log.SinkDebugger:
		if spec.Debugger.CheckForDebugger {
			return "only when a debugger is attached"
		}
		return "always"
	}
	return ""
}
