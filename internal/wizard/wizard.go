// Package wizard collects a race setup interactively and renders it as a
// .pitwall.yaml scaffold.
package wizard

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/apexbrain/pitwall/internal/params"
)

// RaceSpec holds all fields collected during the interactive wizard.
type RaceSpec struct {
	Circuit      string
	GridPosition int
	TrackTempC   float64
	RainProb     float64
	SafetyBias   float64
	TrafficBias  float64
	RobustBias   float64
}

const configTemplate = `# Race setup generated by pitwall init.
circuit:
  name: {{ .Circuit }}
environment:
  track_temp: {{ .TrackTempC }}
  rain_prob: {{ .RainProb }}
  grid_position: {{ .GridPosition }}
bias:
  safety: {{ .SafetyBias }}
  traffic: {{ .TrafficBias }}
  robust: {{ .RobustBias }}
`

// RunRaceWizard runs an interactive huh form to collect the race setup.
func RunRaceWizard(in io.Reader, out io.Writer) (*RaceSpec, error) {
	circuits := make([]string, 0, len(params.CircuitPresets))
	for name := range params.CircuitPresets {
		circuits = append(circuits, name)
	}
	sort.Strings(circuits)

	options := make([]huh.Option[string], 0, len(circuits))
	for _, name := range circuits {
		options = append(options, huh.NewOption(name, name))
	}

	var (
		circuit  string
		gridRaw  = "10"
		tempRaw  = "35"
		rainRaw  = "0.0"
		biasPick = "balanced"
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Circuit").
				Options(options...).
				Value(&circuit),
			huh.NewInput().
				Title("Grid position").
				Description("Expected starting position, 1-20").
				Value(&gridRaw).
				Validate(validateIntRange(1, 20)),
			huh.NewInput().
				Title("Track temperature (°C)").
				Value(&tempRaw).
				Validate(validateFloatRange(-10, 70)),
			huh.NewInput().
				Title("Rain probability").
				Description("0.0 (dry) to 1.0 (certain rain)").
				Value(&rainRaw).
				Validate(validateFloatRange(0, 1)),
			huh.NewSelect[string]().
				Title("Strategy posture").
				Description("How should the engine trade pace against risk?").
				Options(
					huh.NewOption("balanced", "balanced"),
					huh.NewOption("conservative — protect against tire failure", "conservative"),
					huh.NewOption("track-position — minimize time in traffic", "track-position"),
				).
				Value(&biasPick),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	grid, _ := strconv.Atoi(strings.TrimSpace(gridRaw))
	temp, _ := strconv.ParseFloat(strings.TrimSpace(tempRaw), 64)
	rain, _ := strconv.ParseFloat(strings.TrimSpace(rainRaw), 64)

	spec := &RaceSpec{
		Circuit:      circuit,
		GridPosition: grid,
		TrackTempC:   temp,
		RainProb:     rain,
	}
	spec.applyPosture(biasPick)
	return spec, nil
}

// GenerateConfig renders a .pitwall.yaml from the given spec.
func GenerateConfig(spec *RaceSpec) (string, error) {
	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

// applyPosture maps the posture choice to bias factors. The stock factors
// already lean toward traffic avoidance; the postures shift that lean.
func (s *RaceSpec) applyPosture(posture string) {
	stock := params.DefaultBias()
	switch posture {
	case "conservative":
		s.SafetyBias = stock.Safety * 2
		s.TrafficBias = stock.Traffic
		s.RobustBias = stock.Robust * 1.5
	case "track-position":
		s.SafetyBias = stock.Safety
		s.TrafficBias = stock.Traffic * 2
		s.RobustBias = stock.Robust
	default:
		s.SafetyBias = stock.Safety
		s.TrafficBias = stock.Traffic
		s.RobustBias = stock.Robust
	}
}

func validateIntRange(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("must be a whole number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

func validateFloatRange(lo, hi float64) func(string) error {
	return func(s string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("must be a number")
		}
		if f < lo || f > hi {
			return fmt.Errorf("must be between %g and %g", lo, hi)
		}
		return nil
	}
}
