package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pitwall",
		Short: "Pitwall - pit-stop strategy decision engine",
		Long: `Pitwall is a command-line decision engine for motor-racing pit-stop
strategy.

It generates candidate tire strategies, scores them on race time, tire
risk, traffic exposure, and tactical flexibility, and runs Monte-Carlo
race simulations to compare plans under driver and degradation variance.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newOptimizeCommand())
	cmd.AddCommand(newEvaluateCommand())
	cmd.AddCommand(newSimulateCommand())
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
