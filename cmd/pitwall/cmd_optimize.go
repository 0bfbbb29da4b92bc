package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/apexbrain/pitwall/internal/generate"
	"github.com/apexbrain/pitwall/internal/raceconfig"
	"github.com/apexbrain/pitwall/internal/reporting"
	"github.com/apexbrain/pitwall/internal/scoring"
)

var (
	optimizeAttempts   int
	optimizeTopK       int
	optimizeExhaustive bool
	optimizeSeed       int64
	optimizeFormat     string
)

func newOptimizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Generate and rank candidate strategies",
		Long: `Generate feasible 1-stop and 2-stop candidates by constrained random
sampling, score each on the four decision criteria, and print the ranked
shortlist. Use --exhaustive for a deterministic sweep of the whole
candidate grid instead of sampling.`,
		Args: cobra.NoArgs,
		RunE: optimizeCommandE,
	}

	cmd.Flags().IntVar(&optimizeAttempts, "attempts", 0, "Sampling attempts (default from config)")
	cmd.Flags().IntVar(&optimizeTopK, "top", 0, "Shortlist size (default from config)")
	cmd.Flags().BoolVar(&optimizeExhaustive, "exhaustive", false, "Enumerate the candidate grid instead of sampling")
	cmd.Flags().Int64Var(&optimizeSeed, "seed", 0, "Random seed; 0 uses the current time")
	cmd.Flags().StringVarP(&optimizeFormat, "format", "f", "table", "Output format: table or json")

	return cmd
}

func optimizeCommandE(_ *cobra.Command, _ []string) error {
	if optimizeFormat != "table" && optimizeFormat != "json" {
		return fmt.Errorf("unsupported format %q: must be table or json", optimizeFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	attempts := cfg.Engine.Attempts
	if optimizeAttempts > 0 {
		attempts = optimizeAttempts
	}
	topK := cfg.Engine.TopK
	if optimizeTopK > 0 {
		topK = optimizeTopK
	}

	ranked, err := runGenerator(cfg, engine, attempts, topK)
	if err != nil {
		return err
	}
	if len(ranked) == 0 {
		return &NoViableStrategyError{
			Message: fmt.Sprintf("no viable strategy for %s: every candidate violated the stint-length or tire-life constraints", cfg.Circuit.Name),
		}
	}

	weights := scoring.DeriveWeights(cfg.Circuit, cfg.Environment, cfg.Bias)

	if optimizeFormat == "json" {
		return printOptimizeJSON(weights, ranked)
	}
	fmt.Printf("%s — %d laps, starting P%d\n", cfg.Circuit.Name, cfg.Circuit.TotalLaps, cfg.Environment.GridPosition)
	fmt.Printf("weights: time=%.3f risk=%.3f traffic=%.3f flexibility=%.3f\n\n",
		weights.Time, weights.Risk, weights.Traffic, weights.Flexibility)
	reporting.WriteTable(os.Stdout, ranked)
	return nil
}

func runGenerator(cfg *raceconfig.RaceConfig, engine *scoring.Engine, attempts, topK int) ([]*scoring.EvaluatedStrategy, error) {
	seed := optimizeSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := generate.New(engine, rand.New(rand.NewSource(seed)))

	if optimizeExhaustive {
		slog.Debug("enumerating candidate grid")
		return g.Enumerate(topK)
	}
	slog.Debug("sampling candidates", "attempts", attempts, "seed", seed)
	return g.Generate(attempts, topK)
}

func printOptimizeJSON(weights scoring.WeightVector, ranked []*scoring.EvaluatedStrategy) error {
	out := struct {
		Weights    scoring.WeightVector         `json:"weights"`
		Strategies []*scoring.EvaluatedStrategy `json:"strategies"`
	}{Weights: weights, Strategies: ranked}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
