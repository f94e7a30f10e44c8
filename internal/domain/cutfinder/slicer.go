package cutfinder

import (
	"math"

	"github.com/cutoutshort/cutout/internal/types"
)

// fixedSegments slices the timeline into even pieces of (min+max)/2 seconds.
// Last-resort generator: it never fails, but may return fewer than
// targetCount segments, including zero when totalDuration < minSec.
func fixedSegments(totalDuration float64, targetCount, minSec, maxSec int, score float64) []types.CandidateSegment {
	segDur := float64(minSec+maxSec) / 2

	out := make([]types.CandidateSegment, 0, targetCount)
	cur := 0.0
	for i := 0; i < targetCount; i++ {
		end := math.Min(cur+segDur, totalDuration)
		if end-cur >= float64(minSec) {
			out = append(out, types.CandidateSegment{
				Start:  cur,
				End:    end,
				Score:  score,
				Method: types.MethodRule,
				Reason: "fixed-duration split",
			})
		}
		cur = end
		if cur >= totalDuration {
			break
		}
	}
	return out
}
