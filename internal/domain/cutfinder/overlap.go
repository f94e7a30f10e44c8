package cutfinder

import (
	"math"
	"sort"

	"github.com/cutoutshort/cutout/internal/types"
)

// overlapFraction is the intersection length divided by the shorter of the
// two segment lengths. Disjoint segments score 0, full containment scores 1.
func overlapFraction(a, b types.CandidateSegment) float64 {
	start := math.Max(a.Start, b.Start)
	end := math.Min(a.End, b.End)
	if start >= end {
		return 0
	}
	minDur := math.Min(a.Duration(), b.Duration())
	if minDur <= 0 {
		return 0
	}
	return (end - start) / minDur
}

// resolveOverlaps drops every segment whose overlap with an already accepted,
// higher-scored segment exceeds threshold. Greedy interval scheduling
// weighted by score with a soft exclusion rule; the sort is stable so
// first-seen order wins on equal scores.
func resolveOverlaps(segs []types.CandidateSegment, threshold float64) []types.CandidateSegment {
	if len(segs) == 0 {
		return nil
	}

	ranked := make([]types.CandidateSegment, len(segs))
	copy(ranked, segs)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	accepted := make([]types.CandidateSegment, 0, len(ranked))
	for _, s := range ranked {
		keep := true
		for _, a := range accepted {
			if overlapFraction(s, a) > threshold {
				keep = false
				break
			}
		}
		if keep {
			accepted = append(accepted, s)
		}
	}
	return accepted
}
