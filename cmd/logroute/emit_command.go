package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/logroute"
)

func newEmitCommand() *cobra.Command {
	var (
		configPath   string
		settingsPath string
		overrides    []string
		levelFlag    string
		count        int
	)

	cmd := &cobra.Command{
		Use:   "emit <message>",
		Short: "Write a message through a configured registry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(levelFlag)
			if err != nil {
				return err
			}
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}

			settings := log.DefaultSettings()
			if settingsPath != "" {
				if settings, err = log.NewSettingsFromFile(settingsPath); err != nil {
					return err
				}
			}
			if settings, err = settings.ApplyOverrides(overrides...); err != nil {
				return err
			}
			if configPath != "" {
				settings.SinksFile = configPath
			}

			reg := log.NewRegistry()
			if err := reg.ApplySettings(settings); err != nil {
				return err
			}
			defer func() {
				_ = reg.DropAll()
			}()

			logger := reg.Logger()
			msg := strings.Join(args, " ")
			for i := 0; i < count; i++ {
				file, line, fn := log.Caller(0)
				logger.Log(level, file, line, fn, msg)
			}
			return reg.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Sink document (json, or toml by extension)")
	cmd.Flags().StringVar(&settingsPath, "settings", "", "Settings file with a [logroute] table")
	cmd.Flags().StringArrayVar(&overrides, "set", nil, "Settings override as key=value, repeatable")
	cmd.Flags().StringVarP(&levelFlag, "level", "l", "info", "Level of the emitted records")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of times to emit the message")

	return cmd
}
