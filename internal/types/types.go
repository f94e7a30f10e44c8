package types

// TranscriptSpan is one time-stamped piece of transcribed speech. Spans are
// produced by the transcription collaborator and are read-only here; they are
// expected, but not guaranteed, to arrive in non-decreasing start order.
type TranscriptSpan struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Duration returns the span length in seconds.
func (s TranscriptSpan) Duration() float64 { return s.End - s.Start }

// Method identifies which selector produced a segment.
type Method string

const (
	MethodLLM  Method = "llm"
	MethodRule Method = "rule"
)

// CandidateSegment is a selected [start,end] range of the source video
// intended to become one output clip. Immutable once emitted: the overlap
// resolver removes segments but never edits them in place.
type CandidateSegment struct {
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Score  float64 `json:"score"`
	Method Method  `json:"method"`
	Reason string  `json:"reason,omitempty"`
}

// Duration returns the segment length in seconds.
func (s CandidateSegment) Duration() float64 { return s.End - s.Start }

type Manifest struct {
	Input string         `json:"input"`
	Clips []ManifestClip `json:"clips"`
}

type ManifestClip struct {
	ID          string  `json:"id"`
	StartSec    float64 `json:"start_sec"`
	EndSec      float64 `json:"end_sec"`
	Score       float64 `json:"score"`
	Method      Method  `json:"method"`
	Reason      string  `json:"reason,omitempty"`
	File        string  `json:"file"`
	Subtitles   string  `json:"subtitles,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
}
