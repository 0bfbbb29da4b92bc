package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetEvaluateGlobals() {
	evaluateFormat = "table"
}

// writePlansFile writes a strategies document to a temp file.
func writePlansFile(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, "plans.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestEvaluateCommand_RequiresExactlyOneArg(t *testing.T) {
	resetEvaluateGlobals()

	cmd := newEvaluateCommand()
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}

func TestEvaluateCommand_MissingFile(t *testing.T) {
	resetEvaluateGlobals()

	cmd := newEvaluateCommand()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope.yaml")})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load")
}

func TestEvaluateCommand_SchemaViolation(t *testing.T) {
	resetEvaluateGlobals()

	dir := t.TempDir()
	t.Chdir(dir)
	p := writePlansFile(t, dir, "strategies:\n  bad:\n    - compound: MEDIUM\n")

	cmd := newEvaluateCommand()
	cmd.SetArgs([]string{p})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation")
}

func TestEvaluateCommand_InvalidFormat(t *testing.T) {
	resetEvaluateGlobals()

	dir := t.TempDir()
	t.Chdir(dir)
	p := writePlansFile(t, dir, "strategies:\n  a: [MEDIUM:25, HARD:32]\n")

	cmd := newEvaluateCommand()
	cmd.SetArgs([]string{p, "--format", "xml"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestEvaluateCommand_RanksPlansWithDefaults(t *testing.T) {
	resetEvaluateGlobals()

	dir := t.TempDir()
	t.Chdir(dir)
	p := writePlansFile(t, dir, `strategies:
  one-stop: [MEDIUM:25, HARD:32]
  two-stop: [SOFT:19, MEDIUM:19, HARD:19]
`)

	cmd := newEvaluateCommand()
	cmd.SetArgs([]string{p, "--format", "json"})
	require.NoError(t, cmd.Execute())
}

func TestEvaluateCommand_UnknownCompoundInPlan(t *testing.T) {
	resetEvaluateGlobals()

	dir := t.TempDir()
	t.Chdir(dir)
	p := writePlansFile(t, dir, "strategies:\n  w: [\"WET:57\"]\n")

	cmd := newEvaluateCommand()
	cmd.SetArgs([]string{p})
	err := cmd.Execute()
	require.Error(t, err)
}
