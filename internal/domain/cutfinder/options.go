package cutfinder

import "fmt"

const (
	defaultTargetCount = 5
	minTargetCount     = 3
	maxTargetCount     = 8
	defaultMinSec      = 25
	defaultMaxSec      = 45
)

// Constraints are the per-call selection inputs supplied by the caller.
// Zero values are replaced by defaults before selection runs.
type Constraints struct {
	TargetCount    int
	MinSec         int
	MaxSec         int
	TitleHint      string
	ForceRuleBased bool
}

func (c Constraints) withDefaults() Constraints {
	if c.TargetCount == 0 {
		c.TargetCount = defaultTargetCount
	}
	if c.TargetCount < minTargetCount {
		c.TargetCount = minTargetCount
	}
	if c.TargetCount > maxTargetCount {
		c.TargetCount = maxTargetCount
	}
	if c.MinSec == 0 {
		c.MinSec = defaultMinSec
	}
	if c.MaxSec == 0 {
		c.MaxSec = defaultMaxSec
	}
	return c
}

func (c Constraints) validate() error {
	if c.MinSec <= 0 {
		return fmt.Errorf("min_sec must be > 0, got %d", c.MinSec)
	}
	if c.MaxSec <= c.MinSec {
		return fmt.Errorf("max_sec must be > min_sec, got %d <= %d", c.MaxSec, c.MinSec)
	}
	return nil
}

// Tuning holds the thresholds and score defaults of the selection engine.
// It is passed in explicitly so behavior is deterministic per call instead of
// depending on package-level state.
type Tuning struct {
	// OverlapThreshold is the maximum tolerated overlap fraction between two
	// accepted segments.
	OverlapThreshold float64
	// DefaultLLMScore is assumed when a model candidate carries no score.
	DefaultLLMScore float64
	// RuleScore and FixedScore are the scores stamped on rule-path segments.
	RuleScore  float64
	FixedScore float64
	// MinViable is the segment-count floor below which the next fallback runs.
	MinViable int
	// TranscriptCharBudget caps the transcript text sent to the generator.
	TranscriptCharBudget int
	// FallbackDurationSec stands in for the total duration when the
	// transcript is empty.
	FallbackDurationSec float64
	Temperature         float64
	MaxOutputTokens     int
}

func DefaultTuning() Tuning {
	return Tuning{
		OverlapThreshold:     0.3,
		DefaultLLMScore:      0.7,
		RuleScore:            0.6,
		FixedScore:           0.5,
		MinViable:            3,
		TranscriptCharBudget: 4000,
		FallbackDurationSec:  60.0,
		Temperature:          0.7,
		MaxOutputTokens:      3000,
	}
}
