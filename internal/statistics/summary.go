// Package statistics provides the aggregation helpers used to summarize
// simulated race-time distributions.
package statistics

import (
	"math"
	"math/rand"
	"sort"
)

// Summary condenses a set of simulated race totals. P25 approximates the
// best case and P75 the worst case of a strategy's spread.
type Summary struct {
	Mean   float64 `json:"mean"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
	StdDev float64 `json:"std_dev"`
}

// Summarize computes the summary of the given totals. Empty input yields
// a zero summary.
func Summarize(totals []float64) Summary {
	if len(totals) == 0 {
		return Summary{}
	}
	sorted := make([]float64, len(totals))
	copy(sorted, totals)
	sort.Float64s(sorted)

	return Summary{
		Mean:   Mean(totals),
		P25:    percentileSorted(sorted, 25),
		P75:    percentileSorted(sorted, 75),
		StdDev: StdDev(totals),
	}
}

// Mean returns the arithmetic mean, 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation, 0 for fewer than two
// values.
func StdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0.0
	}
	m := Mean(values)
	ss := 0.0
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n))
}

// Percentile returns the p-th percentile (0–100) using linear
// interpolation between closest ranks.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return percentileSorted(sorted, p)
}

func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}
	rank := p / 100.0 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := lo + 1
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// ConfidenceInterval holds a bootstrap confidence interval for the mean
// race time of a strategy.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Mean            float64 `json:"mean"`
	ConfidenceLevel float64 `json:"confidence_level"`
	NumBootstraps   int     `json:"num_bootstraps"`
}

// DefaultBootstrapIterations is the number of bootstrap resamples.
const DefaultBootstrapIterations = 2000

// BootstrapCI computes a percentile-method bootstrap confidence interval
// over the totals, with a seedable source for reproducibility. A negative
// seed uses a non-deterministic source. Fewer than 2 data points yield a
// degenerate interval at the mean.
func BootstrapCI(totals []float64, confidenceLevel float64, seed int64) ConfidenceInterval {
	n := len(totals)
	if n < 2 {
		m := Mean(totals)
		return ConfidenceInterval{Lower: m, Upper: m, Mean: m, ConfidenceLevel: confidenceLevel}
	}

	var rng *rand.Rand
	if seed >= 0 {
		rng = rand.New(rand.NewSource(seed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	iters := DefaultBootstrapIterations
	bootMeans := make([]float64, iters)
	sample := make([]float64, n)
	for i := 0; i < iters; i++ {
		for j := 0; j < n; j++ {
			sample[j] = totals[rng.Intn(n)]
		}
		bootMeans[i] = Mean(sample)
	}
	sort.Float64s(bootMeans)

	alpha := 1.0 - confidenceLevel
	loIdx := int(math.Floor(alpha / 2.0 * float64(iters)))
	hiIdx := int(math.Floor((1.0 - alpha/2.0) * float64(iters)))
	if hiIdx >= iters {
		hiIdx = iters - 1
	}

	return ConfidenceInterval{
		Lower:           bootMeans[loIdx],
		Upper:           bootMeans[hiIdx],
		Mean:            Mean(totals),
		ConfidenceLevel: confidenceLevel,
		NumBootstraps:   iters,
	}
}
