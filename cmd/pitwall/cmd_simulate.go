package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/apexbrain/pitwall/internal/plans"
	"github.com/apexbrain/pitwall/internal/reporting"
	"github.com/apexbrain/pitwall/internal/simulate"
	"github.com/apexbrain/pitwall/internal/validation"
)

var (
	simulateTrials  int
	simulateSeed    int64
	simulateWorkers int
	simulateDump    string
	simulateFormat  string
)

func newSimulateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate <plans.yaml>",
		Short: "Monte-Carlo race simulation of named plans",
		Long: `Run many noisy race simulations per named plan and summarize the
finishing-time distributions. The plan with the lowest mean is flagged as
recommended. Use --dump to write the raw per-trial totals as
zstd-compressed JSON for offline analysis.`,
		Args: cobra.ExactArgs(1),
		RunE: simulateCommandE,
	}

	cmd.Flags().IntVar(&simulateTrials, "trials", 0, "Trials per plan (default from config)")
	cmd.Flags().Int64Var(&simulateSeed, "seed", 0, "Random seed; 0 uses the current time")
	cmd.Flags().IntVar(&simulateWorkers, "workers", 0, "Concurrent plan simulations (default from config)")
	cmd.Flags().StringVar(&simulateDump, "dump", "", "Write raw trial totals to this .json.zst file")
	cmd.Flags().StringVarP(&simulateFormat, "format", "f", "table", "Output format: table or json")

	return cmd
}

func simulateCommandE(_ *cobra.Command, args []string) error {
	if simulateFormat != "table" && simulateFormat != "json" {
		return fmt.Errorf("unsupported format %q: must be table or json", simulateFormat)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	if errs := validation.ValidatePlansBytes(data); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		return fmt.Errorf("%s failed schema validation", args[0])
	}
	f, err := plans.Parse(data)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sim, err := buildSimulator(cfg, simulateWorkers)
	if err != nil {
		return err
	}

	trials := cfg.Simulation.Trials
	if simulateTrials > 0 {
		trials = simulateTrials
	}
	seed := simulateSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	slog.Debug("running simulation", "plans", len(f.Strategies), "trials", trials, "seed", seed)
	results, err := sim.MonteCarlo(f.Strategies, trials, seed)
	if err != nil {
		return err
	}

	if simulateDump != "" {
		if err := dumpTrials(simulateDump, results); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "raw trials written to %s\n", simulateDump)
	}

	if simulateFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	reporting.WriteSimTable(os.Stdout, results)
	return nil
}

// dumpTrials writes the raw per-trial race totals as zstd-compressed JSON.
// A thousand trials across a handful of plans compresses to a few
// kilobytes, so there is no size guard.
func dumpTrials(path string, results map[string]*simulate.Result) error {
	totals := make(map[string][]float64, len(results))
	for name, r := range results {
		totals[name] = r.Totals
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dump file: %w", err)
	}

	zw, err := zstd.NewWriter(out)
	if err != nil {
		out.Close()
		return fmt.Errorf("initializing compressor: %w", err)
	}

	if err := json.NewEncoder(zw).Encode(totals); err != nil {
		zw.Close()
		out.Close()
		return fmt.Errorf("writing dump: %w", err)
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return fmt.Errorf("flushing dump: %w", err)
	}
	return out.Close()
}
