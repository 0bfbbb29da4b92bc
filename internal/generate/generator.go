// Package generate produces feasible candidate strategies (1-stop and
// 2-stop) by constrained random sampling, with a deterministic exhaustive
// enumeration as the fallback mode. Candidates are evaluated, ranked as
// one batch, de-duplicated by name, and truncated to a caller budget.
package generate

import (
	"math/rand"
	"sort"

	"github.com/apexbrain/pitwall/internal/params"
	"github.com/apexbrain/pitwall/internal/scoring"
)

const (
	// DefaultTopK is the ranked-candidate budget when the caller does not
	// supply one.
	DefaultTopK = 5

	// MinStintLaps is the shortest stint the generator will propose.
	MinStintLaps = 5

	// twoStopJitter is the ± window around an equal-thirds split.
	twoStopJitter = 5
)

// Generator samples candidate strategies against one engine instance.
// The random source is supplied by the caller so runs are reproducible;
// the generator itself holds no other mutable state.
type Generator struct {
	engine    *scoring.Engine
	rng       *rand.Rand
	compounds []params.Compound
}

// New creates a Generator. The compound pool is taken from the engine's
// tire set in a stable order so equal seeds give equal output.
func New(engine *scoring.Engine, rng *rand.Rand) *Generator {
	compounds := make([]params.Compound, 0, len(engine.Tires()))
	for c := range engine.Tires() {
		compounds = append(compounds, c)
	}
	sort.Slice(compounds, func(a, b int) bool { return compounds[a] < compounds[b] })

	return &Generator{engine: engine, rng: rng, compounds: compounds}
}

// Generate draws nAttempts candidates (half 1-stop, half 2-stop),
// discarding infeasible draws without retry, then ranks the survivors as
// one batch and returns the unique top-K by formatted name. The attempt
// budget is fixed: a highly constrained parameter space legitimately
// yields fewer than K candidates, or none at all.
func (g *Generator) Generate(nAttempts, topK int) ([]*scoring.EvaluatedStrategy, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	var candidates []*scoring.EvaluatedStrategy
	for i := 0; i < nAttempts/2; i++ {
		if plan, ok := g.sampleOneStop(); ok {
			s, err := g.engine.Evaluate(plan)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, s)
		}
	}
	for i := 0; i < nAttempts/2; i++ {
		if plan, ok := g.sampleTwoStop(); ok {
			s, err := g.engine.Evaluate(plan)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, s)
		}
	}

	return g.finalize(candidates, topK), nil
}

// Enumerate is the deterministic fallback: all compound pairs over a
// coarse split grid for 1-stops, all triples at equal thirds for 2-stops,
// filtered by the same feasibility rules as the stochastic mode.
func (g *Generator) Enumerate(topK int) ([]*scoring.EvaluatedStrategy, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	totalLaps := g.engine.Circuit().TotalLaps

	var candidates []*scoring.EvaluatedStrategy
	for p1 := totalLaps / 5; p1 < totalLaps*4/5; p1++ {
		for _, c1 := range g.compounds {
			for _, c2 := range g.compounds {
				if c1 == c2 {
					continue // pit stops must change compound
				}
				plan := params.StrategyPlan{
					{Compound: c1, Laps: p1},
					{Compound: c2, Laps: totalLaps - p1},
				}
				if !g.feasible(plan) {
					continue
				}
				s, err := g.engine.Evaluate(plan)
				if err != nil {
					return nil, err
				}
				candidates = append(candidates, s)
			}
		}
	}

	third := totalLaps / 3
	for _, c1 := range g.compounds {
		for _, c2 := range g.compounds {
			for _, c3 := range g.compounds {
				if c1 == c2 && c2 == c3 {
					continue // at least two distinct compounds
				}
				plan := params.StrategyPlan{
					{Compound: c1, Laps: third},
					{Compound: c2, Laps: third},
					{Compound: c3, Laps: totalLaps - 2*third},
				}
				if !g.feasible(plan) {
					continue
				}
				s, err := g.engine.Evaluate(plan)
				if err != nil {
					return nil, err
				}
				candidates = append(candidates, s)
			}
		}
	}

	return g.finalize(candidates, topK), nil
}

// sampleOneStop draws a pit lap in the middle half of the race and two
// distinct compounds. ok is false when the draw is infeasible; the
// attempt is consumed either way.
func (g *Generator) sampleOneStop() (params.StrategyPlan, bool) {
	totalLaps := g.engine.Circuit().TotalLaps
	lo := totalLaps / 4
	hi := totalLaps * 3 / 4
	if hi < lo {
		return nil, false
	}
	pitLap := lo + g.rng.Intn(hi-lo+1)

	c1, c2 := g.sampleDistinctPair()
	plan := params.StrategyPlan{
		{Compound: c1, Laps: pitLap},
		{Compound: c2, Laps: totalLaps - pitLap},
	}
	return plan, g.feasible(plan)
}

// sampleTwoStop draws two lap counts within ±twoStopJitter of an equal
// third and three compounds with at least two distinct.
func (g *Generator) sampleTwoStop() (params.StrategyPlan, bool) {
	totalLaps := g.engine.Circuit().TotalLaps
	third := totalLaps / 3

	l1 := third + g.rng.Intn(2*twoStopJitter+1) - twoStopJitter
	l2 := third + g.rng.Intn(2*twoStopJitter+1) - twoStopJitter
	l3 := totalLaps - l1 - l2

	seq := [3]params.Compound{g.sampleCompound(), g.sampleCompound(), g.sampleCompound()}
	if seq[0] == seq[1] && seq[1] == seq[2] {
		return nil, false
	}

	plan := params.StrategyPlan{
		{Compound: seq[0], Laps: l1},
		{Compound: seq[1], Laps: l2},
		{Compound: seq[2], Laps: l3},
	}
	return plan, g.feasible(plan)
}

func (g *Generator) sampleCompound() params.Compound {
	return g.compounds[g.rng.Intn(len(g.compounds))]
}

func (g *Generator) sampleDistinctPair() (params.Compound, params.Compound) {
	i := g.rng.Intn(len(g.compounds))
	j := g.rng.Intn(len(g.compounds) - 1)
	if j >= i {
		j++
	}
	return g.compounds[i], g.compounds[j]
}

// feasible applies the hard constraints: every stint at least
// MinStintLaps, and no stint beyond its compound's structural life.
func (g *Generator) feasible(plan params.StrategyPlan) bool {
	tires := g.engine.Tires()
	for _, stint := range plan {
		if stint.Laps < MinStintLaps {
			return false
		}
		tire, err := tires.Lookup(stint.Compound)
		if err != nil {
			return false
		}
		if stint.Laps > tire.MaxLife {
			return false
		}
	}
	return true
}

// finalize ranks the batch, drops duplicate names keeping the best-ranked
// occurrence, and truncates to topK.
func (g *Generator) finalize(candidates []*scoring.EvaluatedStrategy, topK int) []*scoring.EvaluatedStrategy {
	ranked := g.engine.Rank(candidates)

	seen := make(map[string]bool, len(ranked))
	unique := make([]*scoring.EvaluatedStrategy, 0, topK)
	for _, s := range ranked {
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		unique = append(unique, s)
		if len(unique) >= topK {
			break
		}
	}
	for i, s := range unique {
		s.Rank = i + 1
	}
	return unique
}
