package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/apexbrain/pitwall/internal/generate"
	"github.com/apexbrain/pitwall/internal/plans"
	"github.com/apexbrain/pitwall/internal/reporting"
	"github.com/apexbrain/pitwall/internal/scoring"
	"github.com/apexbrain/pitwall/internal/validation"
)

var (
	reportHTML bool
	reportOut  string
	reportSeed int64
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [plans.yaml]",
		Short: "Produce a full strategy debrief",
		Long: `Run the complete analysis — candidate generation (or the given plan
file), criteria scoring, and Monte-Carlo simulation of the shortlist —
and render it as a markdown debrief, or a standalone HTML page with
--html.`,
		Args: cobra.MaximumNArgs(1),
		RunE: reportCommandE,
	}

	cmd.Flags().BoolVar(&reportHTML, "html", false, "Render HTML instead of markdown")
	cmd.Flags().StringVarP(&reportOut, "out", "o", "", "Write to file instead of stdout")
	cmd.Flags().Int64Var(&reportSeed, "seed", 0, "Random seed; 0 uses the current time")

	return cmd
}

func reportCommandE(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	seed := reportSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var ranked []*scoring.EvaluatedStrategy
	if len(args) == 1 {
		ranked, err = evaluatePlanFile(engine, args[0])
	} else {
		g := generate.New(engine, rand.New(rand.NewSource(seed)))
		ranked, err = g.Generate(cfg.Engine.Attempts, cfg.Engine.TopK)
	}
	if err != nil {
		return err
	}
	if len(ranked) == 0 {
		return &NoViableStrategyError{
			Message: fmt.Sprintf("no viable strategy for %s: nothing to report", cfg.Circuit.Name),
		}
	}

	sim, err := buildSimulator(cfg, 0)
	if err != nil {
		return err
	}
	results, err := sim.MonteCarlo(plansOf(ranked), cfg.Simulation.Trials, seed)
	if err != nil {
		return err
	}

	rep := &reporting.Report{
		Circuit:     cfg.Circuit,
		Environment: cfg.Environment,
		Weights:     scoring.DeriveWeights(cfg.Circuit, cfg.Environment, cfg.Bias),
		Ranked:      ranked,
		Simulation:  results,
		GeneratedAt: time.Now(),
	}

	var out []byte
	if reportHTML {
		out, err = rep.HTML()
		if err != nil {
			return err
		}
	} else {
		out = rep.Markdown()
	}

	if reportOut == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(reportOut, out, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintf(os.Stderr, "report written to %s\n", reportOut)
	return nil
}

func evaluatePlanFile(engine *scoring.Engine, path string) ([]*scoring.EvaluatedStrategy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if errs := validation.ValidatePlansBytes(data); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		return nil, fmt.Errorf("%s failed schema validation", path)
	}
	f, err := plans.Parse(data)
	if err != nil {
		return nil, err
	}

	batch := make([]*scoring.EvaluatedStrategy, 0, len(f.Strategies))
	for _, name := range f.Names() {
		s, err := engine.Evaluate(f.Strategies[name])
		if err != nil {
			return nil, fmt.Errorf("strategy %q: %w", name, err)
		}
		s.Name = name
		batch = append(batch, s)
	}
	return engine.Rank(batch), nil
}
