package scoring

import (
	"sort"
)

// Rank fills Utility, Rank and Normalized for every member of the batch
// and returns it sorted ascending by utility (lowest = best). The time
// axis is normalized batch-relative; risk against its fixed 100% ceiling;
// traffic and flexibility already live on 0–10 and pass through.
//
// Flexibility is a benefit criterion and is subtracted in the utility
// sum. That sign asymmetry is deliberate; folding it into a uniform
// normalization helper would invert the intended ranking.
//
// Rank is a pure function of batch membership: an empty batch returns
// empty, and re-ranking an unchanged batch reproduces the same scores.
// Utilities from two different batches are not comparable.
func (e *Engine) Rank(batch []*EvaluatedStrategy) []*EvaluatedStrategy {
	if len(batch) == 0 {
		return batch
	}

	weights := DeriveWeights(e.circuit, e.env, e.bias)

	minT, maxT := batch[0].Time, batch[0].Time
	for _, s := range batch[1:] {
		if s.Time < minT {
			minT = s.Time
		}
		if s.Time > maxT {
			maxT = s.Time
		}
	}
	timeRange := maxT - minT
	if timeRange == 0 {
		timeRange = 1.0 // all equal: every normalized time becomes 0
	}

	for _, s := range batch {
		normTime := (s.Time - minT) / timeRange * 10.0
		normRisk := s.Risk / 10.0
		if normRisk > 10.0 {
			normRisk = 10.0
		}

		s.Normalized = NormalizedScores{
			Time:        normTime,
			Risk:        normRisk,
			Traffic:     s.Traffic,
			Flexibility: s.Flexibility,
		}
		s.Utility = weights.Time*normTime +
			weights.Risk*normRisk +
			weights.Traffic*s.Traffic -
			weights.Flexibility*s.Flexibility
	}

	// Stable sort keeps evaluation order for exact utility ties.
	sort.SliceStable(batch, func(a, b int) bool {
		return batch[a].Utility < batch[b].Utility
	})
	for i, s := range batch {
		s.Rank = i + 1
	}
	return batch
}
