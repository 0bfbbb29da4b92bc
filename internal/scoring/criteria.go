// Package scoring evaluates strategy plans against the four decision
// criteria (race time, tire risk, traffic exposure, flexibility), derives
// context-sensitive importance weights, and ranks evaluated batches by a
// single weighted utility.
package scoring

import (
	"fmt"

	"github.com/apexbrain/pitwall/internal/params"
	"github.com/apexbrain/pitwall/internal/physics"
)

// NormalizedScores is the per-criterion 0–10 breakdown attached after
// batch normalization. Axis semantics: cost-of-time, risk, traffic, and
// flexibility (the one benefit axis).
type NormalizedScores struct {
	Time        float64 `json:"time"`
	Risk        float64 `json:"risk"`
	Traffic     float64 `json:"traffic"`
	Flexibility float64 `json:"flexibility"`
}

// EvaluatedStrategy pairs a plan with its raw criteria. Utility, Rank and
// Normalized are zero until the batch passes through Rank; utilities from
// different batches are not comparable (the time axis is batch-relative).
type EvaluatedStrategy struct {
	Plan params.StrategyPlan `json:"stints"`
	Name string              `json:"name"`

	Time        float64 `json:"c1_time"`        // total race time, seconds
	Risk        float64 `json:"c2_risk"`        // peak tire life usage, percent
	Traffic     float64 `json:"c3_traffic"`     // 0–10, higher is worse
	Flexibility float64 `json:"c4_flexibility"` // 0–10, higher is better

	Utility    float64          `json:"utility"`
	Rank       int              `json:"rank,omitempty"`
	Normalized NormalizedScores `json:"normalized_scores"`
}

// Engine is the deterministic strategy evaluator. It holds the race
// parameters by value and is safe for reuse across any number of
// evaluations; it keeps no per-call state.
type Engine struct {
	circuit params.CircuitProfile
	car     params.CarProfile
	env     params.EnvironmentSnapshot
	tires   params.TireSet
	bias    params.BiasFactors
	model   *physics.Model
}

// Option configures an Engine.
type Option func(*Engine)

// WithDegradationExponent overrides the tire-age exponent of the
// deterministic lap-time model.
func WithDegradationExponent(exp float64) Option {
	return func(e *Engine) {
		e.model.DegradationExponent = exp
	}
}

// NewEngine validates the race parameters once and returns an evaluator.
func NewEngine(circuit params.CircuitProfile, car params.CarProfile, env params.EnvironmentSnapshot,
	tires params.TireSet, bias params.BiasFactors, opts ...Option) (*Engine, error) {
	if err := circuit.Validate(); err != nil {
		return nil, err
	}
	if err := car.Validate(); err != nil {
		return nil, err
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	if err := tires.Validate(); err != nil {
		return nil, err
	}
	if err := bias.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		circuit: circuit,
		car:     car,
		env:     env,
		tires:   tires,
		bias:    bias,
		model:   physics.NewModel(circuit, car),
	}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

// Circuit returns the circuit profile the engine was built with.
func (e *Engine) Circuit() params.CircuitProfile { return e.circuit }

// Tires returns the compound table the engine was built with.
func (e *Engine) Tires() params.TireSet { return e.tires }

// Evaluate computes the four raw criteria for one plan. The returned
// strategy carries a zero utility placeholder until ranked as a batch.
// An empty plan or an unknown compound fails loudly.
func (e *Engine) Evaluate(plan params.StrategyPlan) (*EvaluatedStrategy, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	c1, err := e.raceTime(plan)
	if err != nil {
		return nil, err
	}
	c2, err := e.peakRisk(plan)
	if err != nil {
		return nil, err
	}
	c4, err := e.flexibility(plan)
	if err != nil {
		return nil, err
	}

	return &EvaluatedStrategy{
		Plan:        plan,
		Name:        plan.Name(),
		Time:        c1,
		Risk:        c2,
		Traffic:     e.trafficScore(plan),
		Flexibility: c4,
	}, nil
}

// raceTime is C1: total race time including pit losses and warm-up,
// with fuel mass carried across stints.
func (e *Engine) raceTime(plan params.StrategyPlan) (float64, error) {
	total := 0.0
	fuel := e.car.FuelStartKg
	for idx, stint := range plan {
		tire, err := e.tires.Lookup(stint.Compound)
		if err != nil {
			return 0, err
		}
		if idx > 0 {
			total += e.circuit.PitLoss
		}
		lapTimes, fuelOut := e.model.LapTimes(stint, tire, fuel)
		for _, lt := range lapTimes {
			total += lt
		}
		fuel = fuelOut
	}
	return total, nil
}

// peakRisk is C2: the largest fraction of structural life consumed by any
// stint, as a percentage. The binding constraint is the most-worn tire.
// Values above 100 are descriptive here; feasibility is the generator's
// concern.
func (e *Engine) peakRisk(plan params.StrategyPlan) (float64, error) {
	peak := 0.0
	for _, stint := range plan {
		tire, err := e.tires.Lookup(stint.Compound)
		if err != nil {
			return 0, err
		}
		ratio := float64(stint.Laps) / float64(tire.MaxLife) * 100.0
		if ratio > peak {
			peak = ratio
		}
	}
	return peak, nil
}

// trafficScore is C3: a heuristic over stop count, grid position and
// circuit overtaking difficulty. Monotonically increasing in stops and
// grid position, capped at 10.
func (e *Engine) trafficScore(plan params.StrategyPlan) float64 {
	gridFactor := float64(e.env.GridPosition) / float64(e.env.GridSize)
	deltaFactor := e.circuit.OvertakeDelta / 1.5
	raw := gridFactor*2.0 + float64(plan.Stops())*gridFactor*deltaFactor*2.5
	if raw > 10.0 {
		return 10.0
	}
	return raw
}

// flexibility is C4: the average unused life margin across stints,
// rescaled to 0–10 and capped. Higher is better; the ranker subtracts it.
func (e *Engine) flexibility(plan params.StrategyPlan) (float64, error) {
	totalMargin := 0.0
	for _, stint := range plan {
		tire, err := e.tires.Lookup(stint.Compound)
		if err != nil {
			return 0, err
		}
		margin := 0.9*float64(tire.MaxLife) - float64(stint.Laps)
		if margin < 0 {
			margin = 0
		}
		totalMargin += margin
	}
	if len(plan) == 0 {
		return 0, fmt.Errorf("strategy plan is empty")
	}
	avg := totalMargin / float64(len(plan))
	score := avg / 15.0 * 10.0
	if score > 10.0 {
		score = 10.0
	}
	return score, nil
}
