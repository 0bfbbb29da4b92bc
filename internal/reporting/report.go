// Package reporting renders engine and simulator output for humans: padded
// terminal tables, a markdown post-session debrief, and an HTML render of
// the same debrief for sharing.
package reporting

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/apexbrain/pitwall/internal/params"
	"github.com/apexbrain/pitwall/internal/scoring"
	"github.com/apexbrain/pitwall/internal/simulate"
)

// Report collects everything one analysis session produced. Simulation is
// optional; a deterministic-only session leaves it nil.
type Report struct {
	Circuit     params.CircuitProfile
	Environment params.EnvironmentSnapshot
	Weights     scoring.WeightVector
	Ranked      []*scoring.EvaluatedStrategy
	Simulation  map[string]*simulate.Result
	GeneratedAt time.Time
}

// WriteTable prints the ranked strategies as an aligned terminal table.
// Strategy names carry emoji compound markers, so columns are padded by
// display width rather than byte or rune count.
func WriteTable(w io.Writer, ranked []*scoring.EvaluatedStrategy) {
	if len(ranked) == 0 {
		fmt.Fprintln(w, "no viable strategies")
		return
	}

	nameWidth := runewidth.StringWidth("Strategy")
	for _, s := range ranked {
		if sw := runewidth.StringWidth(s.Name); sw > nameWidth {
			nameWidth = sw
		}
	}

	fmt.Fprintf(w, "%s  %s  %9s  %7s  %8s  %5s  %8s\n",
		padRight("#", 3), padRight("Strategy", nameWidth),
		"Time", "Risk", "Traffic", "Flex", "Utility")
	for _, s := range ranked {
		fmt.Fprintf(w, "%s  %s  %9.1f  %6.1f%%  %8.2f  %5.2f  %8.4f\n",
			padRight(fmt.Sprintf("%d", s.Rank), 3),
			padRight(s.Name, nameWidth),
			s.Time, s.Risk, s.Traffic, s.Flexibility, s.Utility)
	}
}

// WriteSimTable prints the Monte-Carlo distribution summaries, best mean
// first, marking the recommended strategy.
func WriteSimTable(w io.Writer, results map[string]*simulate.Result) {
	ordered := orderedResults(results)
	if len(ordered) == 0 {
		fmt.Fprintln(w, "no simulation results")
		return
	}

	nameWidth := runewidth.StringWidth("Strategy")
	for _, r := range ordered {
		if sw := runewidth.StringWidth(r.Name); sw > nameWidth {
			nameWidth = sw
		}
	}

	fmt.Fprintf(w, "%s  %10s  %10s  %10s  %8s  %s\n",
		padRight("Strategy", nameWidth), "Mean", "P25", "P75", "StdDev", "")
	for _, r := range ordered {
		marker := ""
		if r.Recommended {
			marker = "◀ recommended"
		}
		fmt.Fprintf(w, "%s  %10.1f  %10.1f  %10.1f  %8.2f  %s\n",
			padRight(r.Name, nameWidth), r.Mean, r.P25, r.P75, r.StdDev, marker)
	}
}

// Markdown renders the full debrief as a GFM document.
func (r *Report) Markdown() []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# Strategy Debrief — %s\n\n", r.Circuit.Name)
	fmt.Fprintf(&b, "Generated %s\n\n", r.GeneratedAt.Format(time.RFC1123))

	fmt.Fprintf(&b, "## Conditions\n\n")
	fmt.Fprintf(&b, "| Parameter | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Race distance | %d laps |\n", r.Circuit.TotalLaps)
	fmt.Fprintf(&b, "| Base lap time | %.1f s |\n", r.Circuit.BaseLapTime)
	fmt.Fprintf(&b, "| Pit loss | %.1f s |\n", r.Circuit.PitLoss)
	fmt.Fprintf(&b, "| Track temp | %.0f °C |\n", r.Environment.TrackTempC)
	fmt.Fprintf(&b, "| Rain probability | %.0f%% |\n", r.Environment.RainProb*100)
	fmt.Fprintf(&b, "| Grid position | P%d of %d |\n\n", r.Environment.GridPosition, r.Environment.GridSize)

	fmt.Fprintf(&b, "## Decision Weights\n\n")
	fmt.Fprintf(&b, "| Race Time | Tire Risk | Traffic | Flexibility |\n|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %.3f | %.3f | %.3f | %.3f |\n\n",
		r.Weights.Time, r.Weights.Risk, r.Weights.Traffic, r.Weights.Flexibility)

	fmt.Fprintf(&b, "## Ranked Strategies\n\n")
	if len(r.Ranked) == 0 {
		fmt.Fprintf(&b, "No viable strategies under the current constraints.\n\n")
	} else {
		fmt.Fprintf(&b, "| # | Strategy | Time (s) | Peak Risk | Traffic | Flexibility | Utility |\n")
		fmt.Fprintf(&b, "|---|---|---|---|---|---|---|\n")
		for _, s := range r.Ranked {
			fmt.Fprintf(&b, "| %d | %s | %.1f | %.1f%% | %.2f | %.2f | %.4f |\n",
				s.Rank, s.Name, s.Time, s.Risk, s.Traffic, s.Flexibility, s.Utility)
		}
		b.WriteString("\n")
	}

	if len(r.Simulation) > 0 {
		fmt.Fprintf(&b, "## Monte-Carlo Outcomes\n\n")
		fmt.Fprintf(&b, "| Strategy | Mean (s) | P25 | P75 | StdDev | 95%% CI | |\n")
		fmt.Fprintf(&b, "|---|---|---|---|---|---|---|\n")
		for _, res := range orderedResults(r.Simulation) {
			marker := ""
			if res.Recommended {
				marker = "**recommended**"
			}
			fmt.Fprintf(&b, "| %s | %.1f | %.1f | %.1f | %.2f | [%.1f, %.1f] | %s |\n",
				res.Name, res.Mean, res.P25, res.P75, res.StdDev, res.CI.Lower, res.CI.Upper, marker)
		}
		b.WriteString("\n")
	}

	return b.Bytes()
}

// HTML renders the debrief through goldmark with GFM tables enabled and
// wraps it in a minimal standalone page.
func (r *Report) HTML() ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert(r.Markdown(), &body); err != nil {
		return nil, fmt.Errorf("rendering debrief: %w", err)
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Strategy Debrief — %s</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 56rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: left; }
th { background: #f4f4f4; }
</style>
</head>
<body>
`, htmlEscape(r.Circuit.Name))
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// orderedResults sorts by ascending mean, name as tiebreaker.
func orderedResults(results map[string]*simulate.Result) []*simulate.Result {
	ordered := make([]*simulate.Result, 0, len(results))
	for _, r := range results {
		ordered = append(ordered, r)
	}
	sort.Slice(ordered, func(a, b int) bool {
		if ordered[a].Mean != ordered[b].Mean {
			return ordered[a].Mean < ordered[b].Mean
		}
		return ordered[a].Name < ordered[b].Name
	})
	return ordered
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
