// Package plans loads named strategy-plan files for the evaluate and
// simulate commands. Stint entries come in two interchangeable forms, a
// compact "COMPOUND:laps" string and an explicit mapping, so hand-written
// files stay short while generated ones stay unambiguous.
package plans

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/apexbrain/pitwall/internal/params"
)

// File is the parsed form of a plans YAML document.
type File struct {
	Strategies map[string]params.StrategyPlan
}

// rawFile mirrors the on-disk shape before stint entries are decoded.
type rawFile struct {
	Strategies map[string][]any `yaml:"strategies"`
}

// stintEntry is the explicit mapping form of one stint.
type stintEntry struct {
	Compound string `mapstructure:"compound"`
	Laps     int    `mapstructure:"laps"`
}

// Load reads and parses a plans file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plans file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a plans document. Every plan must be non-empty and every
// stint well-formed; a single bad entry fails the whole file so a typo
// cannot silently drop a strategy from a comparison.
func Parse(data []byte) (*File, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing plans: %w", err)
	}
	if len(raw.Strategies) == 0 {
		return nil, fmt.Errorf("plans: no strategies defined")
	}

	f := &File{Strategies: make(map[string]params.StrategyPlan, len(raw.Strategies))}
	for name, entries := range raw.Strategies {
		plan := make(params.StrategyPlan, 0, len(entries))
		for i, entry := range entries {
			stint, err := decodeStint(entry)
			if err != nil {
				return nil, fmt.Errorf("strategy %q, stint %d: %w", name, i+1, err)
			}
			plan = append(plan, stint)
		}
		if err := plan.Validate(); err != nil {
			return nil, fmt.Errorf("strategy %q: %w", name, err)
		}
		f.Strategies[name] = plan
	}
	return f, nil
}

// Names returns the strategy names in sorted order, for stable output.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Strategies))
	for name := range f.Strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// decodeStint accepts either the compact "MEDIUM:25" string form or an
// explicit {compound: MEDIUM, laps: 25} mapping.
func decodeStint(entry any) (params.Stint, error) {
	switch v := entry.(type) {
	case string:
		return parseCompact(v)
	default:
		var e stintEntry
		if err := mapstructure.Decode(entry, &e); err != nil {
			return params.Stint{}, fmt.Errorf("decoding stint: %w", err)
		}
		compound, err := params.ParseCompound(e.Compound)
		if err != nil {
			return params.Stint{}, err
		}
		if e.Laps <= 0 {
			return params.Stint{}, fmt.Errorf("laps must be > 0, got %d", e.Laps)
		}
		return params.Stint{Compound: compound, Laps: e.Laps}, nil
	}
}

func parseCompact(s string) (params.Stint, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return params.Stint{}, fmt.Errorf("stint %q: want COMPOUND:laps", s)
	}
	compound, err := params.ParseCompound(parts[0])
	if err != nil {
		return params.Stint{}, err
	}
	laps, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return params.Stint{}, fmt.Errorf("stint %q: laps is not a number", s)
	}
	if laps <= 0 {
		return params.Stint{}, fmt.Errorf("stint %q: laps must be > 0", s)
	}
	return params.Stint{Compound: compound, Laps: laps}, nil
}
