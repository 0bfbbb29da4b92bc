package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompound(t *testing.T) {
	tests := []struct {
		in      string
		want    Compound
		wantErr bool
	}{
		{"SOFT", CompoundSoft, false},
		{"soft", CompoundSoft, false},
		{"  medium ", CompoundMedium, false},
		{"H", CompoundHard, false},
		{"INTERMEDIATE", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseCompound(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestTireSetLookup_UnknownCompound(t *testing.T) {
	ts := DefaultTireSet()
	_, err := ts.Lookup(Compound("WET"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown compound")
}

func TestTireSetLookup_Known(t *testing.T) {
	ts := DefaultTireSet()
	soft, err := ts.Lookup(CompoundSoft)
	require.NoError(t, err)
	assert.Equal(t, 20, soft.MaxLife)
	assert.Equal(t, 0.12, soft.DegPerLap)
}

func TestCircuitProfileValidate(t *testing.T) {
	c := CircuitPresets["Bahrain"]
	require.NoError(t, c.Validate())

	c.TotalLaps = 0
	assert.Error(t, c.Validate())
}

func TestEnvironmentValidate(t *testing.T) {
	env := DefaultEnvironment()
	require.NoError(t, env.Validate())

	env.GridPosition = 25
	assert.Error(t, env.Validate(), "grid position beyond grid size")

	env = DefaultEnvironment()
	env.RainProb = 1.5
	assert.Error(t, env.Validate())

	env = DefaultEnvironment()
	env.GridSize = 0
	assert.Error(t, env.Validate())
}

func TestBiasFactorsValidate(t *testing.T) {
	require.NoError(t, DefaultBias().Validate())
	assert.Error(t, BiasFactors{Safety: -1}.Validate())
}

func TestStrategyPlanName(t *testing.T) {
	plan := StrategyPlan{
		{Compound: CompoundSoft, Laps: 20},
		{Compound: CompoundHard, Laps: 37},
	}
	assert.Equal(t, "🔴 S(20) ➝ ⚪ H(37)", plan.Name())
	assert.Equal(t, 57, plan.TotalLaps())
	assert.Equal(t, 1, plan.Stops())
}

func TestStrategyPlanValidate(t *testing.T) {
	assert.Error(t, StrategyPlan{}.Validate(), "empty plan is a programming error upstream")
	assert.Error(t, StrategyPlan{{Compound: CompoundSoft, Laps: 0}}.Validate())
	assert.NoError(t, StrategyPlan{{Compound: CompoundSoft, Laps: 10}}.Validate())
}
