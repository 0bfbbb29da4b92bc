package params

import (
	"fmt"
	"strings"
)

// Stint is a contiguous run of laps on one compound without a pit stop.
type Stint struct {
	Compound Compound `yaml:"compound" json:"compound"`
	Laps     int      `yaml:"laps" json:"laps"`
}

func (s Stint) String() string {
	return fmt.Sprintf("%s %s(%d)", s.Compound.Icon(), s.Compound.Short(), s.Laps)
}

// StrategyPlan is an ordered sequence of stints. A finalized plan's lap
// counts sum to the circuit's total laps; the candidate generator enforces
// that at construction time, never afterward.
type StrategyPlan []Stint

// Name renders the plan as a human-readable compound sequence, e.g.
// "🔴 S(20) ➝ ⚪ H(37)". Ranked batches are de-duplicated by this string.
func (p StrategyPlan) Name() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ➝ ")
}

// TotalLaps is the sum of lap counts across all stints.
func (p StrategyPlan) TotalLaps() int {
	total := 0
	for _, s := range p {
		total += s.Laps
	}
	return total
}

// Stops returns the number of pit stops implied by the plan.
func (p StrategyPlan) Stops() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Validate checks the plan is structurally usable: at least one stint,
// every stint with a positive lap count. Lap-sum agreement with a circuit
// is a construction-time concern of the generator, not re-checked here.
func (p StrategyPlan) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("strategy plan is empty")
	}
	for i, s := range p {
		if s.Laps <= 0 {
			return fmt.Errorf("stint %d: laps must be > 0, got %d", i+1, s.Laps)
		}
	}
	return nil
}
