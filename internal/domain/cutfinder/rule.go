package cutfinder

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/cutoutshort/cutout/internal/types"
)

// pickRuleBased builds segments from sentence/silence boundaries. The silence
// probe is best-effort and its failures never propagate; with no boundaries
// at all, or fewer than MinViable walked segments, the fixed slicer takes
// over.
func (p *Picker) pickRuleBased(ctx context.Context, spans []types.TranscriptSpan, videoPath string, c Constraints) []types.CandidateSegment {
	var silenceEnds []float64
	if p.silence != nil {
		silenceEnds = p.silence.DetectSilence(ctx, videoPath)
	}
	boundaries := detectBoundaries(spans, silenceEnds)
	p.log.Info("boundary candidates collected",
		zap.Int("boundaries", len(boundaries)),
		zap.Int("silence_points", len(silenceEnds)))

	totalDuration := p.tuning.FallbackDurationSec
	if len(spans) > 0 {
		totalDuration = spans[len(spans)-1].End
	}

	if len(boundaries) == 0 {
		p.log.Warn("no cut boundaries found, using fixed-duration split")
		return fixedSegments(totalDuration, c.TargetCount, c.MinSec, c.MaxSec, p.tuning.FixedScore)
	}

	segs := walkBoundaries(boundaries, totalDuration, c, p.tuning.RuleScore)
	if len(segs) < p.tuning.MinViable {
		p.log.Warn("boundary walk produced too few segments, using fixed-duration split",
			zap.Int("segments", len(segs)))
		segs = fixedSegments(totalDuration, c.TargetCount, c.MinSec, c.MaxSec, p.tuning.FixedScore)
	}
	if len(segs) > c.TargetCount {
		segs = segs[:c.TargetCount]
	}
	return segs
}

// walkBoundaries greedily walks the boundary list forward from t=0. Each
// accepted boundary becomes the start of the next search, so rule-based
// segments never overlap by construction. The walk is strictly sequential.
func walkBoundaries(boundaries []float64, totalDuration float64, c Constraints, score float64) []types.CandidateSegment {
	targetSec := float64(c.MinSec+c.MaxSec) / 2
	minSec := float64(c.MinSec)
	maxSec := float64(c.MaxSec)

	var segs []types.CandidateSegment
	cur := 0.0
	// Sparse boundaries near the tail could otherwise stall the walk between
	// the relax and jump steps.
	maxIters := 2*c.TargetCount + len(boundaries)
	for iter := 0; cur < totalDuration && len(segs) < c.TargetCount && iter < maxIters; iter++ {
		targetEnd := cur + targetSec

		end, ok := closestInWindow(boundaries, cur, totalDuration, minSec, maxSec, targetEnd)
		if !ok {
			// Relax to the earliest boundary that still clears the minimum.
			end, ok = firstAtLeast(boundaries, cur, totalDuration, minSec)
		}
		if !ok {
			next, ok := nextAfter(boundaries, cur)
			if !ok {
				break
			}
			cur = next
			continue
		}

		if d := end - cur; d >= minSec && d <= maxSec {
			segs = append(segs, types.CandidateSegment{
				Start:  cur,
				End:    end,
				Score:  score,
				Method: types.MethodRule,
				Reason: "sentence/silence boundary split",
			})
		}
		cur = end
	}
	return segs
}

// closestInWindow picks the boundary whose resulting duration is within
// [minSec, maxSec] and closest to targetEnd. Ties go to the first boundary
// encountered in ascending order.
func closestInWindow(boundaries []float64, cur, total, minSec, maxSec, targetEnd float64) (float64, bool) {
	best, found := 0.0, false
	bestDist := math.Inf(1)
	for _, b := range boundaries {
		if b <= cur || b > total {
			continue
		}
		if d := b - cur; d < minSec || d > maxSec {
			continue
		}
		if dist := math.Abs(b - targetEnd); dist < bestDist {
			best, bestDist, found = b, dist, true
		}
	}
	return best, found
}

func firstAtLeast(boundaries []float64, cur, total, minSec float64) (float64, bool) {
	for _, b := range boundaries {
		if b > cur && b <= total && b-cur >= minSec {
			return b, true
		}
	}
	return 0, false
}

func nextAfter(boundaries []float64, cur float64) (float64, bool) {
	for _, b := range boundaries {
		if b > cur {
			return b, true
		}
	}
	return 0, false
}
