// Package cutfinder selects highlight sub-ranges of a source video from its
// time-stamped transcript. It prefers a generative-model proposal and
// degrades through a sentence/silence boundary walk down to a fixed-duration
// split, so every call returns a usable, duration-valid segment list.
package cutfinder

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cutoutshort/cutout/internal/metrics"
	"github.com/cutoutshort/cutout/internal/ports"
	"github.com/cutoutshort/cutout/internal/types"
)

// SelectionError is the only error kind PickSegments surfaces to callers.
type SelectionError struct {
	Err error
}

func (e *SelectionError) Error() string { return fmt.Sprintf("segment selection: %v", e.Err) }
func (e *SelectionError) Unwrap() error { return e.Err }

// Picker is the segment selection engine. Safe for concurrent use: a call
// holds no state beyond its own inputs.
type Picker struct {
	gen     ports.TextGenerator // nil when no generator is configured
	silence ports.SilenceDetector
	tuning  Tuning
	log     *zap.Logger
}

// NewPicker wires the selection engine. gen may be nil, which disables the
// model path entirely; silence may be nil, which leaves the rule path with
// punctuation boundaries only.
func NewPicker(gen ports.TextGenerator, silence ports.SilenceDetector, tuning Tuning, log *zap.Logger) *Picker {
	if log == nil {
		log = zap.NewNop()
	}
	if tuning.MinViable <= 0 {
		tuning = DefaultTuning()
	}
	return &Picker{gen: gen, silence: silence, tuning: tuning, log: log}
}

// PickSegments chooses up to c.TargetCount non-overlapping sub-ranges of the
// source video. The model path runs first unless disabled or unconfigured
// and must deliver at least MinViable segments to win; otherwise the
// rule-based path decides. The result is never empty as long as the video is
// at least MinSec long.
func (p *Picker) PickSegments(ctx context.Context, spans []types.TranscriptSpan, videoPath string, c Constraints) ([]types.CandidateSegment, error) {
	c = c.withDefaults()
	if err := c.validate(); err != nil {
		return nil, &SelectionError{Err: err}
	}

	p.log.Info("selecting segments",
		zap.Int("target", c.TargetCount),
		zap.Int("min_sec", c.MinSec),
		zap.Int("max_sec", c.MaxSec),
		zap.Int("spans", len(spans)))

	if !c.ForceRuleBased && p.gen != nil {
		segs, err := p.pickLLM(ctx, spans, c)
		switch {
		case err != nil:
			p.log.Warn("model selection failed, falling back to rule-based", zap.Error(err))
			metrics.SelectionFallbacks.WithLabelValues("llm_error").Inc()
		case len(segs) < p.tuning.MinViable:
			p.log.Warn("model selection returned too few segments, falling back to rule-based",
				zap.Int("segments", len(segs)))
			metrics.SelectionFallbacks.WithLabelValues("llm_insufficient").Inc()
		default:
			p.log.Info("model selection succeeded", zap.Int("segments", len(segs)))
			metrics.SelectionOutcomes.WithLabelValues(string(types.MethodLLM)).Inc()
			return segs, nil
		}
	}

	segs := p.pickRuleBased(ctx, spans, videoPath, c)
	p.log.Info("rule-based selection completed", zap.Int("segments", len(segs)))
	metrics.SelectionOutcomes.WithLabelValues(string(types.MethodRule)).Inc()
	return segs, nil
}
