package cutfinder

import (
	"testing"

	"github.com/cutoutshort/cutout/internal/types"
)

func TestFixedSegments_ShortVideo(t *testing.T) {
	// 60s total, slice duration (25+45)/2 = 35: [0,35] then [35,60] (25s).
	got := fixedSegments(60, 2, 25, 45, 0.5)

	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %d: %v", len(got), got)
	}
	if got[0].Start != 0 || got[0].End != 35 {
		t.Fatalf("unexpected first segment: %+v", got[0])
	}
	if got[1].Start != 35 || got[1].End != 60 {
		t.Fatalf("unexpected second segment: %+v", got[1])
	}
	for _, s := range got {
		if s.Method != types.MethodRule {
			t.Fatalf("expected rule method, got %q", s.Method)
		}
		if s.Score != 0.5 {
			t.Fatalf("expected score 0.5, got %v", s.Score)
		}
		if s.Reason != "fixed-duration split" {
			t.Fatalf("unexpected reason: %q", s.Reason)
		}
	}
}

func TestFixedSegments_TooShortForAnySegment(t *testing.T) {
	if got := fixedSegments(20, 5, 25, 45, 0.5); len(got) != 0 {
		t.Fatalf("expected no segments for 20s video, got %v", got)
	}
}

func TestFixedSegments_StopsAtTargetCount(t *testing.T) {
	got := fixedSegments(1000, 3, 25, 45, 0.5)
	if len(got) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(got))
	}
	for i, s := range got {
		if s.Duration() != 35 {
			t.Fatalf("segment %d: expected 35s, got %v", i, s.Duration())
		}
	}
	// Contiguous by construction.
	for i := 1; i < len(got); i++ {
		if got[i].Start != got[i-1].End {
			t.Fatalf("segments not contiguous: %v", got)
		}
	}
}
