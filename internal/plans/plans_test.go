package plans

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexbrain/pitwall/internal/params"
)

func TestParse_CompactForm(t *testing.T) {
	f, err := Parse([]byte(`
strategies:
  "1-Stop (M-H)":
    - MEDIUM:25
    - HARD:32
`))
	require.NoError(t, err)

	plan := f.Strategies["1-Stop (M-H)"]
	require.Len(t, plan, 2)
	assert.Equal(t, params.CompoundMedium, plan[0].Compound)
	assert.Equal(t, 25, plan[0].Laps)
	assert.Equal(t, params.CompoundHard, plan[1].Compound)
	assert.Equal(t, 32, plan[1].Laps)
}

func TestParse_ExplicitForm(t *testing.T) {
	f, err := Parse([]byte(`
strategies:
  aggressive:
    - compound: soft
      laps: 15
    - compound: M
      laps: 42
`))
	require.NoError(t, err)

	plan := f.Strategies["aggressive"]
	require.Len(t, plan, 2)
	assert.Equal(t, params.CompoundSoft, plan[0].Compound, "compound names are case-insensitive")
	assert.Equal(t, params.CompoundMedium, plan[1].Compound, "single-letter abbreviations work")
}

func TestParse_MixedFormsInOnePlan(t *testing.T) {
	f, err := Parse([]byte(`
strategies:
  mixed:
    - S:15
    - compound: HARD
      laps: 42
`))
	require.NoError(t, err)
	require.Len(t, f.Strategies["mixed"], 2)
}

func TestParse_BadEntryFailsWholeFile(t *testing.T) {
	_, err := Parse([]byte(`
strategies:
  good:
    - MEDIUM:25
    - HARD:32
  bad:
    - ULTRASOFT:20
    - HARD:37
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `strategy "bad"`)
	assert.Contains(t, err.Error(), "unknown compound")
}

func TestParse_RejectsZeroLaps(t *testing.T) {
	_, err := Parse([]byte("strategies:\n  z:\n    - MEDIUM:0\n"))
	require.Error(t, err)
}

func TestParse_RejectsEmptyDocument(t *testing.T) {
	_, err := Parse([]byte("strategies: {}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no strategies")
}

func TestParse_RejectsMalformedCompact(t *testing.T) {
	_, err := Parse([]byte("strategies:\n  m:\n    - MEDIUM\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COMPOUND:laps")
}

func TestNames_Sorted(t *testing.T) {
	f, err := Parse([]byte(`
strategies:
  zulu: [MEDIUM:25, HARD:32]
  alpha: [SOFT:15, HARD:42]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zulu"}, f.Names())
}

func TestLoad_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategies:\n  a: [MEDIUM:25, HARD:32]\n"), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Strategies, 1)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
