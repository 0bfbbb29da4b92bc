// Package physics implements the deterministic lap-time model. Given a
// stint and the fuel state carried into it, it produces the per-lap time
// series and the fuel state carried out. Stochastic lap-time modeling
// lives in the simulate package, not here.
package physics

import (
	"math"

	"github.com/apexbrain/pitwall/internal/params"
)

// Degradation exponents supported by the model. The linear exponent is
// the default; the richer variant accelerates wear near end of life.
const (
	LinearDegradation = 1.0
	WornDegradation   = 1.3
)

// Model computes lap times for a stint. The degradation exponent is
// explicit configuration rather than an implicit per-module constant.
type Model struct {
	Circuit params.CircuitProfile
	Car     params.CarProfile

	// DegradationExponent is applied to tire age: deg * age^exp.
	// Zero means LinearDegradation.
	DegradationExponent float64
}

// NewModel returns a Model with the linear degradation exponent.
func NewModel(circuit params.CircuitProfile, car params.CarProfile) *Model {
	return &Model{Circuit: circuit, Car: car, DegradationExponent: LinearDegradation}
}

func (m *Model) exponent() float64 {
	if m.DegradationExponent == 0 {
		return LinearDegradation
	}
	return m.DegradationExponent
}

// LapTimes returns the lap-time series for one stint and the fuel mass
// remaining afterward. fuelKg is the mass carried into the stint's first
// lap. The one-time warm-up loss lands on the first lap; pit-lane loss is
// a plan-level cost and is not added here. Fuel never goes negative.
func (m *Model) LapTimes(stint params.Stint, tire params.TireProfile, fuelKg float64) ([]float64, float64) {
	times := make([]float64, stint.Laps)
	exp := m.exponent()
	for i := 0; i < stint.Laps; i++ {
		fuelRemaining := fuelKg - float64(i)*m.Car.FuelBurnKgLap
		if fuelRemaining < 0 {
			fuelRemaining = 0
		}
		fuelTerm := fuelRemaining * m.Car.FuelEffectSKg
		degTerm := tire.DegPerLap * math.Pow(float64(i), exp)

		times[i] = m.Circuit.BaseLapTime + tire.BasePace + fuelTerm + degTerm
	}
	if stint.Laps > 0 {
		times[0] += tire.WarmupLoss
	}

	fuelOut := fuelKg - float64(stint.Laps)*m.Car.FuelBurnKgLap
	if fuelOut < 0 {
		fuelOut = 0
	}
	return times, fuelOut
}
