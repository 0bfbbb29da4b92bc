package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/apexbrain/pitwall/internal/params"
	"github.com/apexbrain/pitwall/internal/raceconfig"
	"github.com/apexbrain/pitwall/internal/scoring"
	"github.com/apexbrain/pitwall/internal/simulate"
)

// loadConfig loads .pitwall.yaml from the current directory upward.
func loadConfig() (*raceconfig.RaceConfig, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	cfg, err := raceconfig.Load(cwd)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded race configuration",
		"circuit", cfg.Circuit.Name,
		"laps", cfg.Circuit.TotalLaps,
		"grid_position", cfg.Environment.GridPosition)
	return cfg, nil
}

// buildEngine constructs the deterministic evaluator from a loaded config.
func buildEngine(cfg *raceconfig.RaceConfig) (*scoring.Engine, error) {
	tires, err := cfg.TireSet()
	if err != nil {
		return nil, err
	}
	return scoring.NewEngine(cfg.Circuit, cfg.Car, cfg.Environment, tires, cfg.Bias,
		scoring.WithDegradationExponent(cfg.Engine.DegradationExponent))
}

// buildSimulator constructs the Monte-Carlo simulator from a loaded config.
// The race distance comes from the circuit; the physics constants come
// from the simulation section.
func buildSimulator(cfg *raceconfig.RaceConfig, workers int) (*simulate.Simulator, error) {
	simCfg := simulate.Config{
		BaselineLapTime: cfg.Simulation.BaselineLapTime,
		FuelCorrection:  cfg.Simulation.FuelCorrection,
		PitLoss:         cfg.Simulation.PitLoss,
		DriverSigma:     cfg.Simulation.DriverSigma,
		TotalLaps:       cfg.Circuit.TotalLaps,
		Workers:         cfg.Simulation.Workers,
	}
	if workers > 0 {
		simCfg.Workers = workers
	}
	return simulate.New(simCfg, simulate.MediumHardCompounds())
}

// plansOf keys evaluated strategies by name for the simulator.
func plansOf(ranked []*scoring.EvaluatedStrategy) map[string]params.StrategyPlan {
	out := make(map[string]params.StrategyPlan, len(ranked))
	for _, s := range ranked {
		out[s.Name] = s.Plan
	}
	return out
}
