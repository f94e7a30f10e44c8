package cutfinder

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cutoutshort/cutout/internal/metrics"
	"github.com/cutoutshort/cutout/internal/ports"
	"github.com/cutoutshort/cutout/internal/types"
)

// llmCandidate mirrors one object of the JSON array the prompt asks for.
// Pointers distinguish absent or nulled-out values from zeros, which matters
// after truncation repair.
type llmCandidate struct {
	Start  *float64 `json:"start"`
	End    *float64 `json:"end"`
	Reason string   `json:"reason"`
	Score  *float64 `json:"score"`
}

// pickLLM asks the text-generation collaborator for candidate ranges and
// post-processes them: duration filter, overlap resolution, score ranking.
// It may return fewer than the target count (even zero) without an error;
// errors mean transport failure or an irrecoverable response.
func (p *Picker) pickLLM(ctx context.Context, spans []types.TranscriptSpan, c Constraints) ([]types.CandidateSegment, error) {
	prompt := buildSelectionPrompt(spans, c, p.tuning.TranscriptCharBudget)

	out, err := p.gen.Generate(ctx, prompt, ports.GenerationParams{
		Temperature:     p.tuning.Temperature,
		MaxOutputTokens: p.tuning.MaxOutputTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("text generation: %w", err)
	}
	p.log.Debug("model response received", zap.Int("chars", len(out)))

	raw, err := ExtractJSON(out)
	if err != nil {
		metrics.ParseFailures.Inc()
		return nil, fmt.Errorf("extract candidates: %w", err)
	}

	var cands []llmCandidate
	if err := json.Unmarshal(raw, &cands); err != nil {
		metrics.ParseFailures.Inc()
		return nil, fmt.Errorf("decode candidates: %w", err)
	}

	segs := make([]types.CandidateSegment, 0, len(cands))
	for _, cand := range cands {
		if cand.Start == nil || cand.End == nil {
			continue
		}
		duration := *cand.End - *cand.Start
		if duration < float64(c.MinSec) || duration > float64(c.MaxSec) {
			continue
		}
		score := p.tuning.DefaultLLMScore
		if cand.Score != nil {
			score = *cand.Score
		}
		segs = append(segs, types.CandidateSegment{
			Start:  *cand.Start,
			End:    *cand.End,
			Score:  score,
			Method: types.MethodLLM,
			Reason: cand.Reason,
		})
	}

	// The prompt's no-overlap instruction is advisory only; generative output
	// is not trusted, enforcement happens here.
	segs = resolveOverlaps(segs, p.tuning.OverlapThreshold)

	sort.SliceStable(segs, func(i, j int) bool { return segs[i].Score > segs[j].Score })
	if len(segs) > c.TargetCount {
		segs = segs[:c.TargetCount]
	}
	return segs, nil
}

// buildSelectionPrompt renders the transcript within the character budget and
// wraps it in the selection instruction. Truncation drops trailing content,
// never reorders.
func buildSelectionPrompt(spans []types.TranscriptSpan, c Constraints, charBudget int) string {
	var b strings.Builder
	for i, s := range spans {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[%.1fs - %.1fs] %s", s.Start, s.End, s.Text)
	}
	transcript := truncateRunes(b.String(), charBudget)

	hint := strings.TrimSpace(c.TitleHint)
	if hint == "" {
		hint = "unknown"
	}

	return fmt.Sprintf(`You are an editor for short vertical videos.
From the transcript below, select %d ranges of %d-%d seconds that work as standalone highlight clips with strong viewer retention.

Selection criteria:
1. Prefer ranges containing a conclusion, a surprise, or the key point of a how-to.
2. The first 3 seconds of a range should carry a hook.
3. Do not cut sentences mid-thought; end on a natural break.
4. The viewer should either want to know what comes next or feel a payoff.

Video title: %s

Transcript:
%s

Return only the following JSON array (no explanation text):
[
  {
    "start": start time in seconds (number),
    "end": end time in seconds (number),
    "reason": "why this range was chosen (under 80 characters)",
    "score": score from 0.0 to 1.0 (number)
  }
]

Pick start/end from the transcript timestamps. Every range must be between %d and %d seconds long. Avoid overlapping ranges.`,
		c.TargetCount, c.MinSec, c.MaxSec, hint, transcript, c.MinSec, c.MaxSec)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
