package params

// DefaultTireSet returns the stock compound table used when no tire
// section is configured. Figures are tuned for current-generation cars.
func DefaultTireSet() TireSet {
	return TireSet{
		CompoundSoft:   {Compound: CompoundSoft, BasePace: 0.0, DegPerLap: 0.12, MaxLife: 20, WarmupLoss: 2.0},
		CompoundMedium: {Compound: CompoundMedium, BasePace: 0.5, DegPerLap: 0.08, MaxLife: 30, WarmupLoss: 2.0},
		CompoundHard:   {Compound: CompoundHard, BasePace: 1.1, DegPerLap: 0.04, MaxLife: 45, WarmupLoss: 2.0},
	}
}

// CircuitPresets holds the built-in circuit database. The init scaffold
// offers these as starting points.
var CircuitPresets = map[string]CircuitProfile{
	"Monaco":      {Name: "Monaco", TotalLaps: 78, TrackLengthKm: 3.3, BaseLapTime: 74.0, PitLoss: 24.0, OvertakeDelta: 3.5, Abrasivity: 2.0},
	"Spa":         {Name: "Spa", TotalLaps: 44, TrackLengthKm: 7.0, BaseLapTime: 106.0, PitLoss: 22.0, OvertakeDelta: 0.8, Abrasivity: 4.0},
	"Monza":       {Name: "Monza", TotalLaps: 53, TrackLengthKm: 5.8, BaseLapTime: 81.0, PitLoss: 24.0, OvertakeDelta: 1.2, Abrasivity: 3.0},
	"Silverstone": {Name: "Silverstone", TotalLaps: 52, TrackLengthKm: 5.9, BaseLapTime: 87.0, PitLoss: 20.0, OvertakeDelta: 1.4, Abrasivity: 4.0},
	"Bahrain":     {Name: "Bahrain", TotalLaps: 57, TrackLengthKm: 5.4, BaseLapTime: 92.0, PitLoss: 22.0, OvertakeDelta: 1.5, Abrasivity: 3.0},
}

// DefaultCar returns the stock car profile.
func DefaultCar() CarProfile {
	return CarProfile{FuelStartKg: 110.0, FuelBurnKgLap: 1.8, FuelEffectSKg: 0.035, PitSigma: 0.5}
}

// DefaultEnvironment returns a dry mid-grid baseline.
func DefaultEnvironment() EnvironmentSnapshot {
	return EnvironmentSnapshot{TrackTempC: 35, RainProb: 0.0, SafetyCar: 0.2, VirtualSC: 0.2, GridSize: 20, GridPosition: 10}
}

// DefaultBias returns the stock operator bias factors.
func DefaultBias() BiasFactors {
	return BiasFactors{Safety: 2.0, Traffic: 3.0, Robust: 2.5}
}
