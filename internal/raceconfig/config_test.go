package raceconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexbrain/pitwall/internal/params"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))
}

func TestLoad_NoFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultCircuit, cfg.Circuit.Name)
	assert.Equal(t, 57, cfg.Circuit.TotalLaps)
	assert.Equal(t, DefaultAttempts, cfg.Engine.Attempts)
	assert.Equal(t, DefaultTrials, cfg.Simulation.Trials)
	assert.Len(t, cfg.Tires, 3)
}

func TestLoad_NamedCircuitPreset(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "circuit:\n  name: Monaco\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "Monaco", cfg.Circuit.Name)
	assert.Equal(t, 78, cfg.Circuit.TotalLaps)
	assert.InDelta(t, 24.0, cfg.Circuit.PitLoss, 1e-9)
}

func TestLoad_CustomCircuitOverridesWholesale(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `circuit:
  name: Imola
  laps: 63
  base_lap_time: 78.5
  pit_loss: 26.0
  overtake_delta: 2.8
  abrasivity: 3
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "Imola", cfg.Circuit.Name)
	assert.Equal(t, 63, cfg.Circuit.TotalLaps)
	assert.InDelta(t, 78.5, cfg.Circuit.BaseLapTime, 1e-9)
}

func TestLoad_PartialOverrideKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `environment:
  grid_position: 18
engine:
  attempts: 500
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 18, cfg.Environment.GridPosition)
	assert.Equal(t, 500, cfg.Engine.Attempts)

	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultTopK, cfg.Engine.TopK)
	assert.InDelta(t, 0.2, cfg.Environment.SafetyCar, 1e-9)
	assert.InDelta(t, 0.2, cfg.Simulation.DriverSigma, 1e-9)
}

func TestLoad_WalksUpToParent(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	writeConfig(t, root, "engine:\n  top_k: 8\n")

	cfg, err := Load(nested)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Engine.TopK)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "circuit: [this is not\n  a mapping\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ConfigFileName)
}

func TestLoad_TiresReplaceWholesale(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `tires:
  SOFT:
    base_pace: 0.1
    deg_per_lap: 0.15
    max_life: 18
  HARD:
    base_pace: 1.0
    deg_per_lap: 0.05
    max_life: 50
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, cfg.Tires, 2, "a configured table replaces the defaults, not merges into them")

	ts, err := cfg.TireSet()
	require.NoError(t, err)
	soft, err := ts.Lookup(params.CompoundSoft)
	require.NoError(t, err)
	assert.Equal(t, 18, soft.MaxLife)
	assert.Equal(t, params.CompoundSoft, soft.Compound, "compound is filled in from the map key")
}

func TestTireSet_UnknownCompoundKey(t *testing.T) {
	cfg := New()
	cfg.Tires["INTERMEDIATE"] = params.TireProfile{DegPerLap: 0.2, MaxLife: 30}

	_, err := cfg.TireSet()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown compound")
}
