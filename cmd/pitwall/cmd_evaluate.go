package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apexbrain/pitwall/internal/plans"
	"github.com/apexbrain/pitwall/internal/reporting"
	"github.com/apexbrain/pitwall/internal/scoring"
	"github.com/apexbrain/pitwall/internal/validation"
)

var evaluateFormat string

func newEvaluateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate <plans.yaml>",
		Short: "Score and rank hand-written strategy plans",
		Long: `Score each named plan in a strategies file on the four decision
criteria and rank them as one batch. Rankings are relative to the file:
adding or removing a plan changes the normalization, so compare utilities
only within one invocation.`,
		Args: cobra.ExactArgs(1),
		RunE: evaluateCommandE,
	}

	cmd.Flags().StringVarP(&evaluateFormat, "format", "f", "table", "Output format: table or json")

	return cmd
}

func evaluateCommandE(_ *cobra.Command, args []string) error {
	if evaluateFormat != "table" && evaluateFormat != "json" {
		return fmt.Errorf("unsupported format %q: must be table or json", evaluateFormat)
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
	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	batch := make([]*scoring.EvaluatedStrategy, 0, len(f.Strategies))
	for _, name := range f.Names() {
		s, err := engine.Evaluate(f.Strategies[name])
		if err != nil {
			return fmt.Errorf("strategy %q: %w", name, err)
		}
		// Keep the operator's label instead of the derived stint name.
		s.Name = name
		batch = append(batch, s)
	}
	ranked := engine.Rank(batch)

	if evaluateFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	}
	reporting.WriteTable(os.Stdout, ranked)
	return nil
}
