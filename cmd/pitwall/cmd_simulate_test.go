package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetSimulateGlobals() {
	simulateTrials = 0
	simulateSeed = 0
	simulateWorkers = 0
	simulateDump = ""
	simulateFormat = "table"
}

func TestSimulateCommand_MissingFile(t *testing.T) {
	resetSimulateGlobals()

	cmd := newSimulateCommand()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope.yaml")})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load")
}

func TestSimulateCommand_RunsWithSeed(t *testing.T) {
	resetSimulateGlobals()

	dir := t.TempDir()
	t.Chdir(dir)
	p := writePlansFile(t, dir, "strategies:\n  a: [MEDIUM:25, HARD:32]\n")

	cmd := newSimulateCommand()
	cmd.SetArgs([]string{p, "--trials", "50", "--seed", "42", "--format", "json"})
	require.NoError(t, cmd.Execute())
}

func TestSimulateCommand_DumpWritesCompressedTotals(t *testing.T) {
	resetSimulateGlobals()

	dir := t.TempDir()
	t.Chdir(dir)
	p := writePlansFile(t, dir, "strategies:\n  a: [MEDIUM:25, HARD:32]\n")
	dump := filepath.Join(dir, "trials.json.zst")

	cmd := newSimulateCommand()
	cmd.SetArgs([]string{p, "--trials", "25", "--seed", "1", "--dump", dump})
	require.NoError(t, cmd.Execute())

	f, err := os.Open(dump)
	require.NoError(t, err)
	defer f.Close()

	zr, err := zstd.NewReader(f)
	require.NoError(t, err)
	defer zr.Close()

	var totals map[string][]float64
	require.NoError(t, json.NewDecoder(zr).Decode(&totals))
	require.Len(t, totals["a"], 25)
	assert.Greater(t, totals["a"][0], 0.0)
}
