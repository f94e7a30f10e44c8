// Package ports declares the interfaces this service expects from its
// external collaborators. Adapters live under ports/adapters.
package ports

import (
	"context"

	"github.com/cutoutshort/cutout/internal/types"
)

// Transcriber turns a media file into time-stamped transcript spans.
type Transcriber interface {
	Transcribe(ctx context.Context, wavPath, cacheDir string) ([]types.TranscriptSpan, error)
}

// SilenceDetector probes a media file for quiet stretches. Implementations
// return silence-end timestamps in seconds and never fail: any probe error
// yields an empty list.
type SilenceDetector interface {
	DetectSilence(ctx context.Context, mediaPath string) []float64
}

// GenerationParams bound a single text-generation request.
type GenerationParams struct {
	Temperature     float64
	MaxOutputTokens int
}

// TextGenerator asks an external generative model for raw text. No output
// schema is enforced by the collaborator; callers own extraction.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}

// VideoTool wraps the media toolchain used for audio extraction, clip
// rendering and probing.
type VideoTool interface {
	ExtractAudioMono16k(ctx context.Context, inMP4, outWav string) error
	RenderClip(ctx context.Context, inMP4 string, startSec, endSec float64, outMP4, burnSRT, title string) error
	ProbeDuration(ctx context.Context, inMP4 string) (float64, error)
}
