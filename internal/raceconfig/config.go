// Package raceconfig provides the RaceConfig struct and loader for
// .pitwall.yaml race-parameter configuration files.
package raceconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/apexbrain/pitwall/internal/params"
)

// ConfigFileName is the file the loader walks up looking for.
const ConfigFileName = ".pitwall.yaml"

// Default values for engine and simulation settings. These are the single
// source of truth — New() references them and no other code should
// duplicate them.
const (
	DefaultCircuit = "Bahrain"

	DefaultDegradationExponent = 1.0
	DefaultAttempts            = 50
	DefaultTopK                = 5

	DefaultTrials  = 1000
	DefaultWorkers = 4
)

// EngineConfig holds settings for the deterministic evaluator and the
// candidate generator.
type EngineConfig struct {
	DegradationExponent float64 `yaml:"degradation_exponent,omitempty"`
	Attempts            int     `yaml:"attempts,omitempty"`
	TopK                int     `yaml:"top_k,omitempty"`
}

// SimulationConfig holds the Monte-Carlo simulator settings.
type SimulationConfig struct {
	BaselineLapTime float64 `yaml:"baseline_lap_time,omitempty"`
	FuelCorrection  float64 `yaml:"fuel_correction,omitempty"`
	PitLoss         float64 `yaml:"pit_loss,omitempty"`
	DriverSigma     float64 `yaml:"driver_sigma,omitempty"`
	Trials          int     `yaml:"trials,omitempty"`
	Workers         int     `yaml:"workers,omitempty"`
}

// RaceConfig is the top-level configuration loaded from .pitwall.yaml.
type RaceConfig struct {
	Circuit     params.CircuitProfile         `yaml:"circuit,omitempty"`
	Car         params.CarProfile             `yaml:"car,omitempty"`
	Environment params.EnvironmentSnapshot    `yaml:"environment,omitempty"`
	Tires       map[string]params.TireProfile `yaml:"tires,omitempty"`
	Bias        params.BiasFactors            `yaml:"bias,omitempty"`
	Engine      EngineConfig                  `yaml:"engine,omitempty"`
	Simulation  SimulationConfig              `yaml:"simulation,omitempty"`
}

// New returns a RaceConfig with all defaults populated: the Bahrain
// preset, the stock car, a dry mid-grid environment, and the default
// compound table.
func New() *RaceConfig {
	tires := map[string]params.TireProfile{}
	for c, t := range params.DefaultTireSet() {
		tires[string(c)] = t
	}
	return &RaceConfig{
		Circuit:     params.CircuitPresets[DefaultCircuit],
		Car:         params.DefaultCar(),
		Environment: params.DefaultEnvironment(),
		Tires:       tires,
		Bias:        params.DefaultBias(),
		Engine: EngineConfig{
			DegradationExponent: DefaultDegradationExponent,
			Attempts:            DefaultAttempts,
			TopK:                DefaultTopK,
		},
		Simulation: SimulationConfig{
			BaselineLapTime: 90.0,
			FuelCorrection:  0.035,
			PitLoss:         22.5,
			DriverSigma:     0.2,
			Trials:          DefaultTrials,
			Workers:         DefaultWorkers,
		},
	}
}

// Load finds .pitwall.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults. If no config
// file is found, returns defaults with a nil error. Real I/O errors
// (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*RaceConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", ConfigFileName, err)
	}

	var fileCfg RaceConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// TireSet converts the configured compound map into a validated TireSet,
// parsing map keys as compound names.
func (c *RaceConfig) TireSet() (params.TireSet, error) {
	ts := make(params.TireSet, len(c.Tires))
	for name, profile := range c.Tires {
		compound, err := params.ParseCompound(name)
		if err != nil {
			return nil, fmt.Errorf("tires: %w", err)
		}
		if profile.Compound == "" {
			profile.Compound = compound
		}
		ts[compound] = profile
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return ts, nil
}

// findConfigFile walks up from dir looking for .pitwall.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found; real I/O
// errors propagate instead of being silently swallowed.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ConfigFileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *RaceConfig) {
	// Circuit
	if src.Circuit.Name != "" {
		// A named circuit replaces the preset wholesale; partial physics
		// from one circuit on top of another would be nonsense.
		dst.Circuit = src.Circuit
		if preset, ok := params.CircuitPresets[src.Circuit.Name]; ok && src.Circuit.TotalLaps == 0 {
			dst.Circuit = preset
		}
	} else {
		if src.Circuit.TotalLaps != 0 {
			dst.Circuit.TotalLaps = src.Circuit.TotalLaps
		}
		if src.Circuit.BaseLapTime != 0 {
			dst.Circuit.BaseLapTime = src.Circuit.BaseLapTime
		}
		if src.Circuit.PitLoss != 0 {
			dst.Circuit.PitLoss = src.Circuit.PitLoss
		}
		if src.Circuit.OvertakeDelta != 0 {
			dst.Circuit.OvertakeDelta = src.Circuit.OvertakeDelta
		}
		if src.Circuit.Abrasivity != 0 {
			dst.Circuit.Abrasivity = src.Circuit.Abrasivity
		}
		if src.Circuit.TrackLengthKm != 0 {
			dst.Circuit.TrackLengthKm = src.Circuit.TrackLengthKm
		}
	}

	// Car
	if src.Car.FuelStartKg != 0 {
		dst.Car.FuelStartKg = src.Car.FuelStartKg
	}
	if src.Car.FuelBurnKgLap != 0 {
		dst.Car.FuelBurnKgLap = src.Car.FuelBurnKgLap
	}
	if src.Car.FuelEffectSKg != 0 {
		dst.Car.FuelEffectSKg = src.Car.FuelEffectSKg
	}
	if src.Car.PitSigma != 0 {
		dst.Car.PitSigma = src.Car.PitSigma
	}

	// Environment
	if src.Environment.TrackTempC != 0 {
		dst.Environment.TrackTempC = src.Environment.TrackTempC
	}
	if src.Environment.RainProb != 0 {
		dst.Environment.RainProb = src.Environment.RainProb
	}
	if src.Environment.SafetyCar != 0 {
		dst.Environment.SafetyCar = src.Environment.SafetyCar
	}
	if src.Environment.VirtualSC != 0 {
		dst.Environment.VirtualSC = src.Environment.VirtualSC
	}
	if src.Environment.GridSize != 0 {
		dst.Environment.GridSize = src.Environment.GridSize
	}
	if src.Environment.GridPosition != 0 {
		dst.Environment.GridPosition = src.Environment.GridPosition
	}

	// Tires: a configured table replaces the defaults wholesale.
	if len(src.Tires) > 0 {
		dst.Tires = src.Tires
	}

	// Bias
	if src.Bias.Safety != 0 {
		dst.Bias.Safety = src.Bias.Safety
	}
	if src.Bias.Traffic != 0 {
		dst.Bias.Traffic = src.Bias.Traffic
	}
	if src.Bias.Robust != 0 {
		dst.Bias.Robust = src.Bias.Robust
	}

	// Engine
	if src.Engine.DegradationExponent != 0 {
		dst.Engine.DegradationExponent = src.Engine.DegradationExponent
	}
	if src.Engine.Attempts != 0 {
		dst.Engine.Attempts = src.Engine.Attempts
	}
	if src.Engine.TopK != 0 {
		dst.Engine.TopK = src.Engine.TopK
	}

	// Simulation
	if src.Simulation.BaselineLapTime != 0 {
		dst.Simulation.BaselineLapTime = src.Simulation.BaselineLapTime
	}
	if src.Simulation.FuelCorrection != 0 {
		dst.Simulation.FuelCorrection = src.Simulation.FuelCorrection
	}
	if src.Simulation.PitLoss != 0 {
		dst.Simulation.PitLoss = src.Simulation.PitLoss
	}
	if src.Simulation.DriverSigma != 0 {
		dst.Simulation.DriverSigma = src.Simulation.DriverSigma
	}
	if src.Simulation.Trials != 0 {
		dst.Simulation.Trials = src.Simulation.Trials
	}
	if src.Simulation.Workers != 0 {
		dst.Simulation.Workers = src.Simulation.Workers
	}
}
