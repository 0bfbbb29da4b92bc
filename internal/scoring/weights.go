package scoring

import (
	"fmt"
	"math"

	"github.com/apexbrain/pitwall/internal/params"
)

// referenceGridSize anchors the grid-position normalization in the weight
// derivation. It is a fixed reference, independent of the configured grid
// size, so the same bias setting means the same thing across events.
const referenceGridSize = 20.0

// WeightVector is the normalized importance 4-vector applied to a batch.
// Components are non-negative and sum to exactly 1.0 (within epsilon);
// it is re-derived whenever the context changes, never persisted.
type WeightVector struct {
	Time        float64 `json:"alpha_1"`
	Risk        float64 `json:"alpha_2"`
	Traffic     float64 `json:"alpha_3"`
	Flexibility float64 `json:"alpha_4"`
}

// Sum returns the total of the four components.
func (w WeightVector) Sum() float64 {
	return w.Time + w.Risk + w.Traffic + w.Flexibility
}

// Validate checks the normalization invariant.
func (w WeightVector) Validate() error {
	if w.Time < 0 || w.Risk < 0 || w.Traffic < 0 || w.Flexibility < 0 {
		return fmt.Errorf("weight vector has a negative component: %+v", w)
	}
	if math.Abs(w.Sum()-1.0) > 1e-9 {
		return fmt.Errorf("weight vector sums to %.12f, must sum to 1.0", w.Sum())
	}
	return nil
}

// DeriveWeights maps environment and circuit context plus operator bias
// factors onto a normalized weight vector. The time weight is a fixed
// anchor of 1.0 before normalization, so the denominator can never be
// zero for non-negative inputs.
func DeriveWeights(circuit params.CircuitProfile, env params.EnvironmentSnapshot, bias params.BiasFactors) WeightVector {
	w1 := 1.0
	w2 := bias.Safety * (env.TrackTempC / 60.0) * (circuit.Abrasivity / 5.0)
	w3 := bias.Traffic * (float64(env.GridPosition) / referenceGridSize)
	w4 := bias.Robust * (env.RainProb + env.SafetyCar + env.VirtualSC)

	total := w1 + w2 + w3 + w4
	return WeightVector{
		Time:        w1 / total,
		Risk:        w2 / total,
		Traffic:     w3 / total,
		Flexibility: w4 / total,
	}
}
