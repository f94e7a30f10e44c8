package cutfinder

import (
	"testing"

	"github.com/cutoutshort/cutout/internal/types"
)

func TestDetectBoundaries_PunctuationAndSilence(t *testing.T) {
	spans := []types.TranscriptSpan{
		{Start: 0, End: 12, Text: "これで結論が出ました。"},
		{Start: 12, End: 20, Text: "but then we kept going"},
		{Start: 20, End: 28, Text: "and it worked!"},
		{Start: 28, End: 40, Text: "どう思いますか？"},
		{Start: 40, End: 50, Text: "The end."},
	}
	got := detectBoundaries(spans, []float64{12.0, 33.5})

	want := []float64{12, 28, 33.5, 40, 50}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestDetectBoundaries_SortedAndDeduped(t *testing.T) {
	spans := []types.TranscriptSpan{
		{Start: 10, End: 30, Text: "Second."},
		{Start: 0, End: 10, Text: "First."},
	}
	got := detectBoundaries(spans, []float64{30, 10, 5})

	want := []float64{5, 10, 30}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("not strictly ascending: %v", got)
		}
	}
}

func TestDetectBoundaries_Empty(t *testing.T) {
	if got := detectBoundaries(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
}

func TestEndsWithSentenceTerminal(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"done.", true},
		{"done!", true},
		{"really?", true},
		{"終わりです。", true},
		{"すごい！", true},
		{"なぜ？", true},
		{"trailing comma,", false},
		{"no punctuation", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := endsWithSentenceTerminal(tt.text); got != tt.want {
				t.Fatalf("endsWithSentenceTerminal(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
