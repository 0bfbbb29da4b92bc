package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexbrain/pitwall/internal/validation"
)

func TestGenerateConfig_ValidAgainstSchema(t *testing.T) {
	spec := &RaceSpec{
		Circuit:      "Monaco",
		GridPosition: 3,
		TrackTempC:   42,
		RainProb:     0.15,
	}
	spec.applyPosture("conservative")

	out, err := GenerateConfig(spec)
	require.NoError(t, err)
	assert.Contains(t, out, "name: Monaco")
	assert.Contains(t, out, "grid_position: 3")

	errs := validation.ValidateRaceConfigBytes([]byte(out))
	assert.Empty(t, errs, "generated scaffold must pass its own schema: %v", errs)
}

func TestApplyPosture(t *testing.T) {
	balanced := &RaceSpec{}
	balanced.applyPosture("balanced")
	conservative := &RaceSpec{}
	conservative.applyPosture("conservative")
	position := &RaceSpec{}
	position.applyPosture("track-position")

	assert.Greater(t, conservative.SafetyBias, balanced.SafetyBias)
	assert.Greater(t, conservative.RobustBias, balanced.RobustBias)
	assert.Greater(t, position.TrafficBias, balanced.TrafficBias)
	assert.Equal(t, balanced.SafetyBias, position.SafetyBias)
}

func TestValidateRanges(t *testing.T) {
	assert.NoError(t, validateIntRange(1, 20)("10"))
	assert.Error(t, validateIntRange(1, 20)("21"))
	assert.Error(t, validateIntRange(1, 20)("ten"))

	assert.NoError(t, validateFloatRange(0, 1)("0.5"))
	assert.Error(t, validateFloatRange(0, 1)("1.5"))
	assert.Error(t, validateFloatRange(0, 1)(""))
}
