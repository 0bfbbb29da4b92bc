package scoring

import (
	"testing"

	"github.com/apexbrain/pitwall/internal/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluateAll(t *testing.T, e *Engine, plans ...params.StrategyPlan) []*EvaluatedStrategy {
	t.Helper()
	batch := make([]*EvaluatedStrategy, 0, len(plans))
	for _, p := range plans {
		s, err := e.Evaluate(p)
		require.NoError(t, err)
		batch = append(batch, s)
	}
	return batch
}

func TestRank_EmptyBatch(t *testing.T) {
	e := newTestEngine(t)
	assert.Empty(t, e.Rank(nil))
	assert.Empty(t, e.Rank([]*EvaluatedStrategy{}))
}

func TestRank_AscendingUtility(t *testing.T) {
	e := newTestEngine(t)
	batch := evaluateAll(t, e,
		params.StrategyPlan{{Compound: params.CompoundSoft, Laps: 18}, {Compound: params.CompoundHard, Laps: 39}},
		params.StrategyPlan{{Compound: params.CompoundMedium, Laps: 28}, {Compound: params.CompoundHard, Laps: 29}},
		params.StrategyPlan{{Compound: params.CompoundSoft, Laps: 19}, {Compound: params.CompoundMedium, Laps: 19}, {Compound: params.CompoundHard, Laps: 19}},
	)

	ranked := e.Rank(batch)
	require.Len(t, ranked, 3)
	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i-1].Utility, ranked[i].Utility, "utilities must be non-decreasing")
	}
	for i, s := range ranked {
		assert.Equal(t, i+1, s.Rank)
	}
}

func TestRank_EqualTimesNormalizeToZero(t *testing.T) {
	e := newTestEngine(t)

	// Two single-stint plans with identical total time but different risk.
	batch := evaluateAll(t, e,
		params.StrategyPlan{{Compound: params.CompoundSoft, Laps: 5}},
		params.StrategyPlan{{Compound: params.CompoundSoft, Laps: 5}},
	)
	require.InDelta(t, batch[0].Time, batch[1].Time, 1e-9)

	ranked := e.Rank(batch)
	for _, s := range ranked {
		assert.Zero(t, s.Normalized.Time, "degenerate batch: no division by zero, every normalized time is 0")
	}
}

func TestRank_SingletonBatch(t *testing.T) {
	e := newTestEngine(t)
	batch := evaluateAll(t, e, params.StrategyPlan{{Compound: params.CompoundSoft, Laps: 5}})

	ranked := e.Rank(batch)
	require.Len(t, ranked, 1)
	assert.Zero(t, ranked[0].Normalized.Time)
	assert.Equal(t, 1, ranked[0].Rank)
}

func TestRank_Idempotent(t *testing.T) {
	e := newTestEngine(t)
	batch := evaluateAll(t, e,
		params.StrategyPlan{{Compound: params.CompoundSoft, Laps: 18}, {Compound: params.CompoundHard, Laps: 39}},
		params.StrategyPlan{{Compound: params.CompoundMedium, Laps: 28}, {Compound: params.CompoundHard, Laps: 29}},
	)

	first := e.Rank(batch)
	utilities := make([]float64, len(first))
	for i, s := range first {
		utilities[i] = s.Utility
	}

	second := e.Rank(first)
	for i, s := range second {
		assert.Equal(t, utilities[i], s.Utility, "re-ranking an unchanged batch must not move scores")
	}
}

func TestRank_RiskNormalizedAbsolutely(t *testing.T) {
	e := newTestEngine(t)
	batch := evaluateAll(t, e,
		params.StrategyPlan{{Compound: params.CompoundSoft, Laps: 5}},   // risk 25%
		params.StrategyPlan{{Compound: params.CompoundSoft, Laps: 30}},  // risk 150%, capped at 10
		params.StrategyPlan{{Compound: params.CompoundHard, Laps: 45}},  // risk 100%
	)

	ranked := e.Rank(batch)
	byName := map[string]*EvaluatedStrategy{}
	for _, s := range ranked {
		byName[s.Name] = s
	}

	assert.InDelta(t, 2.5, byName[params.StrategyPlan{{Compound: params.CompoundSoft, Laps: 5}}.Name()].Normalized.Risk, 1e-9)
	assert.InDelta(t, 10.0, byName[params.StrategyPlan{{Compound: params.CompoundSoft, Laps: 30}}.Name()].Normalized.Risk, 1e-9)
	assert.InDelta(t, 10.0, byName[params.StrategyPlan{{Compound: params.CompoundHard, Laps: 45}}.Name()].Normalized.Risk, 1e-9)
}

func TestRank_FlexibilityIsABenefit(t *testing.T) {
	// Two plans with identical time and risk profiles except flexibility:
	// the more flexible plan must score the lower (better) utility.
	e := newTestEngine(t)

	committed, err := e.Evaluate(params.StrategyPlan{{Compound: params.CompoundHard, Laps: 40}})
	require.NoError(t, err)
	flexible, err := e.Evaluate(params.StrategyPlan{{Compound: params.CompoundHard, Laps: 40}})
	require.NoError(t, err)
	flexible.Flexibility = committed.Flexibility + 2.0 // widen the margin artificially

	ranked := e.Rank([]*EvaluatedStrategy{committed, flexible})
	assert.Same(t, flexible, ranked[0], "higher flexibility lowers utility")
	assert.Less(t, ranked[0].Utility, ranked[1].Utility)
}
