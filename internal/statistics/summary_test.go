package statistics

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0.0 {
		t.Errorf("expected 0 for empty input, got %f", got)
	}
	if got := Mean([]float64{5400, 5410, 5420}); math.Abs(got-5410) > 1e-9 {
		t.Errorf("expected 5410, got %f", got)
	}
}

func TestStdDev(t *testing.T) {
	if got := StdDev([]float64{5400}); got != 0.0 {
		t.Errorf("expected 0 for single value, got %f", got)
	}
	// Population stddev of {2,4,4,4,5,5,7,9} is exactly 2.
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(got-2.0) > 1e-9 {
		t.Errorf("expected 2.0, got %f", got)
	}
}

func TestPercentile_LinearInterpolation(t *testing.T) {
	values := []float64{10, 20, 30, 40}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 10},
		{25, 17.5},
		{50, 25},
		{75, 32.5},
		{100, 40},
	}
	for _, tt := range tests {
		if got := Percentile(values, tt.p); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Percentile(%v, %f) = %f, want %f", values, tt.p, got, tt.want)
		}
	}
}

func TestPercentile_Degenerate(t *testing.T) {
	if got := Percentile(nil, 50); got != 0.0 {
		t.Errorf("expected 0 for empty input, got %f", got)
	}
	if got := Percentile([]float64{5432.1}, 75); got != 5432.1 {
		t.Errorf("expected the single value, got %f", got)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{5400, 5410, 5420, 5430})
	if math.Abs(s.Mean-5415) > 1e-9 {
		t.Errorf("mean: got %f", s.Mean)
	}
	if s.P25 >= s.P75 {
		t.Errorf("expected P25 < P75, got [%f, %f]", s.P25, s.P75)
	}
	if s.StdDev <= 0 {
		t.Errorf("expected positive stddev, got %f", s.StdDev)
	}

	empty := Summarize(nil)
	if empty != (Summary{}) {
		t.Errorf("expected zero summary for empty input, got %+v", empty)
	}
}

func TestBootstrapCI_Deterministic(t *testing.T) {
	totals := []float64{5400, 5405, 5410, 5415, 5420}
	ci1 := BootstrapCI(totals, 0.95, 42)
	ci2 := BootstrapCI(totals, 0.95, 42)

	if ci1.Lower != ci2.Lower || ci1.Upper != ci2.Upper {
		t.Errorf("same seed should produce identical CIs: %+v vs %+v", ci1, ci2)
	}
}

func TestBootstrapCI_ContainsMean(t *testing.T) {
	totals := []float64{5400, 5420, 5440, 5410, 5430}
	ci := BootstrapCI(totals, 0.95, 7)

	if ci.Lower > ci.Mean || ci.Upper < ci.Mean {
		t.Errorf("CI [%f, %f] should contain mean %f", ci.Lower, ci.Upper, ci.Mean)
	}
	if ci.NumBootstraps != DefaultBootstrapIterations {
		t.Errorf("expected %d bootstraps, got %d", DefaultBootstrapIterations, ci.NumBootstraps)
	}
}

func TestBootstrapCI_DegenerateInputs(t *testing.T) {
	ci := BootstrapCI(nil, 0.95, 1)
	if ci.Mean != 0 || ci.Lower != 0 || ci.Upper != 0 {
		t.Errorf("expected zero CI for empty input, got %+v", ci)
	}

	ci = BootstrapCI([]float64{5432.1}, 0.95, 1)
	if ci.Lower != 5432.1 || ci.Upper != 5432.1 {
		t.Errorf("expected degenerate CI at the single value, got %+v", ci)
	}
}
