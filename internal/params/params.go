// Package params holds the immutable value structures describing a race:
// circuit, car, environment, tire compounds, and operator bias factors.
// Instances are constructed once per evaluation session and passed into
// every computation; nothing in the engine mutates them.
package params

import (
	"fmt"
	"strings"
)

// Compound identifies a tire specification.
type Compound string

const (
	CompoundSoft   Compound = "SOFT"
	CompoundMedium Compound = "MEDIUM"
	CompoundHard   Compound = "HARD"
)

// ParseCompound converts a string (any case) to a Compound.
func ParseCompound(s string) (Compound, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SOFT", "S":
		return CompoundSoft, nil
	case "MEDIUM", "M":
		return CompoundMedium, nil
	case "HARD", "H":
		return CompoundHard, nil
	default:
		return "", fmt.Errorf("unknown compound %q: must be SOFT, MEDIUM, or HARD", s)
	}
}

// Icon returns the colored marker used in formatted strategy names.
func (c Compound) Icon() string {
	switch c {
	case CompoundSoft:
		return "🔴"
	case CompoundMedium:
		return "🟡"
	default:
		return "⚪"
	}
}

// Short returns the single-letter abbreviation (S, M, H).
func (c Compound) Short() string {
	if c == "" {
		return "?"
	}
	return string(c[:1])
}

// CircuitProfile describes the fixed physical properties of a circuit.
type CircuitProfile struct {
	Name          string  `yaml:"name" json:"name"`
	TotalLaps     int     `yaml:"laps" json:"laps"`
	TrackLengthKm float64 `yaml:"length_km" json:"length_km"`
	BaseLapTime   float64 `yaml:"base_lap_time" json:"base_lap_time"` // seconds
	PitLoss       float64 `yaml:"pit_loss" json:"pit_loss"`           // seconds lost per stop
	OvertakeDelta float64 `yaml:"overtake_delta" json:"overtake_delta"`
	Abrasivity    float64 `yaml:"abrasivity" json:"abrasivity"` // unitless, 0-5
}

// Validate checks the domain constraints the engine relies on.
func (c CircuitProfile) Validate() error {
	if c.TotalLaps <= 0 {
		return fmt.Errorf("circuit %q: laps must be > 0, got %d", c.Name, c.TotalLaps)
	}
	if c.BaseLapTime <= 0 {
		return fmt.Errorf("circuit %q: base lap time must be > 0, got %g", c.Name, c.BaseLapTime)
	}
	if c.PitLoss < 0 {
		return fmt.Errorf("circuit %q: pit loss must be >= 0, got %g", c.Name, c.PitLoss)
	}
	return nil
}

// CarProfile describes fuel and pit characteristics of the car.
type CarProfile struct {
	FuelStartKg   float64 `yaml:"fuel_start_kg" json:"fuel_start_kg"`
	FuelBurnKgLap float64 `yaml:"fuel_burn_kg_lap" json:"fuel_burn_kg_lap"`
	FuelEffectSKg float64 `yaml:"fuel_effect_s_kg" json:"fuel_effect_s_kg"` // seconds per kg carried
	PitSigma      float64 `yaml:"pit_sigma" json:"pit_sigma"`               // pit-stop time-loss stddev
}

// Validate checks the domain constraints the engine relies on.
func (c CarProfile) Validate() error {
	if c.FuelStartKg < 0 || c.FuelBurnKgLap < 0 {
		return fmt.Errorf("car: fuel figures must be >= 0 (start=%g burn=%g)", c.FuelStartKg, c.FuelBurnKgLap)
	}
	return nil
}

// EnvironmentSnapshot captures race-day conditions and grid context.
type EnvironmentSnapshot struct {
	TrackTempC   float64 `yaml:"track_temp" json:"track_temp"`
	RainProb     float64 `yaml:"rain_prob" json:"rain_prob"`
	SafetyCar    float64 `yaml:"sc_prob" json:"sc_prob"`
	VirtualSC    float64 `yaml:"vsc_prob" json:"vsc_prob"`
	GridSize     int     `yaml:"grid_size" json:"grid_size"`
	GridPosition int     `yaml:"grid_position" json:"grid_position"`
}

// Validate checks the domain constraints the engine relies on.
func (e EnvironmentSnapshot) Validate() error {
	if e.GridSize <= 0 {
		return fmt.Errorf("environment: grid size must be > 0, got %d", e.GridSize)
	}
	if e.GridPosition < 1 || e.GridPosition > e.GridSize {
		return fmt.Errorf("environment: grid position %d outside 1..%d", e.GridPosition, e.GridSize)
	}
	for name, p := range map[string]float64{"rain_prob": e.RainProb, "sc_prob": e.SafetyCar, "vsc_prob": e.VirtualSC} {
		if p < 0 || p > 1 {
			return fmt.Errorf("environment: %s must be within [0,1], got %g", name, p)
		}
	}
	return nil
}

// TireProfile is the physics profile of one compound.
type TireProfile struct {
	Compound   Compound `yaml:"compound" json:"compound"`
	BasePace   float64  `yaml:"base_pace" json:"base_pace"`       // seconds relative to SOFT=0
	DegPerLap  float64  `yaml:"deg_per_lap" json:"deg_per_lap"`   // degradation coefficient, s/lap
	MaxLife    int      `yaml:"max_life" json:"max_life"`         // structural limit in laps
	WarmupLoss float64  `yaml:"warmup_loss" json:"warmup_loss"`   // one-time loss at stint start
}

// Validate checks the domain constraints the engine relies on.
func (t TireProfile) Validate() error {
	if t.MaxLife <= 0 {
		return fmt.Errorf("tire %s: max life must be > 0, got %d", t.Compound, t.MaxLife)
	}
	if t.DegPerLap < 0 {
		return fmt.Errorf("tire %s: degradation must be >= 0, got %g", t.Compound, t.DegPerLap)
	}
	return nil
}

// TireSet maps compound name to its profile. Lookups of unknown compounds
// fail loudly; the engine never silently substitutes a default.
type TireSet map[Compound]TireProfile

// Lookup returns the profile for a compound or an error when it is absent.
func (ts TireSet) Lookup(c Compound) (TireProfile, error) {
	t, ok := ts[c]
	if !ok {
		return TireProfile{}, fmt.Errorf("unknown compound %q", string(c))
	}
	return t, nil
}

// Validate checks every profile in the set.
func (ts TireSet) Validate() error {
	if len(ts) == 0 {
		return fmt.Errorf("tire set is empty")
	}
	for c, t := range ts {
		if err := t.Validate(); err != nil {
			return err
		}
		if t.Compound != "" && t.Compound != c {
			return fmt.Errorf("tire set: key %s disagrees with profile compound %s", c, t.Compound)
		}
	}
	return nil
}

// BiasFactors are the operator-supplied importance multipliers feeding the
// dynamic weight derivation. They are unrestricted positive scalars; the
// deriver, not the caller, performs normalization.
type BiasFactors struct {
	Safety  float64 `yaml:"safety" json:"safety"`
	Traffic float64 `yaml:"traffic" json:"traffic"`
	Robust  float64 `yaml:"robust" json:"robust"`
}

// Validate rejects negative factors, which would break the weight-sum
// guarantee.
func (b BiasFactors) Validate() error {
	if b.Safety < 0 || b.Traffic < 0 || b.Robust < 0 {
		return fmt.Errorf("bias factors must be >= 0 (safety=%g traffic=%g robust=%g)", b.Safety, b.Traffic, b.Robust)
	}
	return nil
}
