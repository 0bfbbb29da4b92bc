// Package simulate implements the stochastic Monte-Carlo race model used
// for variance and risk assessment of a small named set of strategies.
// It is independent of the deterministic evaluator: nonlinear tire
// degradation, a linear fuel-burn correction, and per-lap random noise,
// summed over many trials into a race-time distribution per strategy.
package simulate

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/apexbrain/pitwall/internal/params"
	"github.com/apexbrain/pitwall/internal/statistics"
)

// Default physics constants, tuned for current-generation cars.
const (
	DefaultBaselineLapTime = 90.0
	DefaultFuelCorrection  = 0.035 // seconds gained per lap of fuel burn
	DefaultPitLoss         = 22.5  // average pit lane loss, track dependent
	DefaultDriverSigma     = 0.2   // per-lap driver consistency noise
	DefaultTrials          = 1000

	// degradationExponent models wear accelerating near end of life.
	degradationExponent = 1.3

	confidenceLevel = 0.95
)

// Config holds the simulator's physics constants and execution settings.
type Config struct {
	BaselineLapTime float64 `yaml:"baseline_lap_time"`
	FuelCorrection  float64 `yaml:"fuel_correction"`
	PitLoss         float64 `yaml:"pit_loss"`
	DriverSigma     float64 `yaml:"driver_sigma"`
	TotalLaps       int     `yaml:"total_laps"`

	// Workers bounds the number of strategies simulated concurrently.
	// Trials within one strategy stay sequential on its own random
	// source, so output is identical at any worker count.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the stock constants for a 57-lap race.
func DefaultConfig() Config {
	return Config{
		BaselineLapTime: DefaultBaselineLapTime,
		FuelCorrection:  DefaultFuelCorrection,
		PitLoss:         DefaultPitLoss,
		DriverSigma:     DefaultDriverSigma,
		TotalLaps:       57,
		Workers:         4,
	}
}

// MediumHardCompounds returns the simulator's stock compound table. The
// simulator shares only the compound concept with the deterministic
// engine; its pace and life figures are calibrated separately.
func MediumHardCompounds() params.TireSet {
	return params.TireSet{
		params.CompoundSoft:   {Compound: params.CompoundSoft, BasePace: 0.0, DegPerLap: 0.12, MaxLife: 20},
		params.CompoundMedium: {Compound: params.CompoundMedium, BasePace: 0.6, DegPerLap: 0.08, MaxLife: 35},
		params.CompoundHard:   {Compound: params.CompoundHard, BasePace: 1.1, DegPerLap: 0.04, MaxLife: 55},
	}
}

// Result is the distribution summary for one named strategy.
type Result struct {
	Name string `json:"name"`
	statistics.Summary
	CI          statistics.ConfidenceInterval `json:"ci"`
	Trials      int                           `json:"trials"`
	Recommended bool                          `json:"recommended"`

	// Totals holds the raw per-trial race totals, kept for optional
	// export; omitted from the summary JSON.
	Totals []float64 `json:"-"`
}

// Simulator runs stochastic race simulations. It is stateless between
// calls; every run takes its own random source.
type Simulator struct {
	cfg       Config
	compounds params.TireSet
}

// New creates a Simulator with the given config and compound table.
func New(cfg Config, compounds params.TireSet) (*Simulator, error) {
	if cfg.TotalLaps <= 0 {
		return nil, fmt.Errorf("simulator: total laps must be > 0, got %d", cfg.TotalLaps)
	}
	if err := compounds.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{cfg: cfg, compounds: compounds}, nil
}

// StintTimes simulates one stint and returns its noisy lap-time series.
// startAge carries tire age across a re-fitted compound; it is 0 for a
// fresh set.
func (s *Simulator) StintTimes(rng *rand.Rand, compound params.Compound, laps, startAge int) ([]float64, error) {
	c, err := s.compounds.Lookup(compound)
	if err != nil {
		return nil, err
	}

	times := make([]float64, laps)
	for i := 0; i < laps; i++ {
		age := float64(i + startAge)
		deg := c.DegPerLap * math.Pow(age, degradationExponent)
		fuelGain := s.cfg.FuelCorrection * float64(i)
		noise := rng.NormFloat64() * s.cfg.DriverSigma

		times[i] = s.cfg.BaselineLapTime + c.BasePace + deg - fuelGain + noise
	}
	return times, nil
}

// RunRace simulates one full race for a plan and returns the lap trace
// and cumulative total. Stints beyond the race distance are truncated.
// Pit loss is added to the running total once per stop and, for plotting,
// onto the first lap of the new stint.
func (s *Simulator) RunRace(rng *rand.Rand, plan params.StrategyPlan) ([]float64, float64, error) {
	if err := plan.Validate(); err != nil {
		return nil, 0, err
	}

	var trace []float64
	total := 0.0
	currentLap := 0

	for i, stint := range plan {
		laps := stint.Laps
		if currentLap+laps > s.cfg.TotalLaps {
			laps = s.cfg.TotalLaps - currentLap
		}
		if laps <= 0 {
			break
		}

		stintTimes, err := s.StintTimes(rng, stint.Compound, laps, 0)
		if err != nil {
			return nil, 0, err
		}
		if i > 0 {
			total += s.cfg.PitLoss
		}
		for _, lt := range stintTimes {
			total += lt
		}
		// The trace shows the stop on the out-lap; the total already
		// carries it, so only the trace copy is bumped.
		if i > 0 {
			stintTimes[0] += s.cfg.PitLoss
		}
		trace = append(trace, stintTimes...)

		currentLap += laps
		if currentLap >= s.cfg.TotalLaps {
			break
		}
	}
	return trace, total, nil
}

// MonteCarlo runs trials independent races per named strategy and returns
// the per-strategy distribution summaries. The strategy with the lowest
// mean is flagged recommended — exactly one, ties resolved by name order.
// Distribution-overlap win probabilities are out of scope; mean
// comparison is the only recommendation criterion.
//
// Strategies are distributed across cfg.Workers goroutines; each gets a
// sub-seed derived from seed and its name-ordered index, so results are
// reproducible at any worker count.
func (s *Simulator) MonteCarlo(plans map[string]params.StrategyPlan, trials int, seed int64) (map[string]*Result, error) {
	if len(plans) == 0 {
		return map[string]*Result{}, nil
	}
	if trials <= 0 {
		trials = DefaultTrials
	}

	names := make([]string, 0, len(plans))
	for name := range plans {
		names = append(names, name)
	}
	sort.Strings(names)

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = 4
	}

	var mu sync.Mutex
	results := make(map[string]*Result, len(names))

	var g errgroup.Group
	g.SetLimit(workers)
	for idx, name := range names {
		idx, name := idx, name
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + int64(idx)))
			totals := make([]float64, trials)
			for t := 0; t < trials; t++ {
				_, total, err := s.RunRace(rng, plans[name])
				if err != nil {
					return fmt.Errorf("strategy %q: %w", name, err)
				}
				totals[t] = total
			}

			r := &Result{
				Name:    name,
				Summary: statistics.Summarize(totals),
				CI:      statistics.BootstrapCI(totals, confidenceLevel, seed+int64(idx)),
				Trials:  trials,
				Totals:  totals,
			}
			mu.Lock()
			results[name] = r
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := names[0]
	for _, name := range names[1:] {
		if results[name].Mean < results[best].Mean {
			best = name
		}
	}
	results[best].Recommended = true

	return results, nil
}
