package cutfinder

import (
	"sort"
	"strings"

	"github.com/cutoutshort/cutout/internal/types"
)

// sentenceTerminals mark a transcript span as ending a sentence. Both CJK and
// latin terminators count since source videos mix languages.
const sentenceTerminals = "。！？.!?"

// detectBoundaries merges sentence-terminal span ends with silence-end
// timestamps into a sorted, deduplicated list of candidate cut points.
// An empty transcript yields an empty list.
func detectBoundaries(spans []types.TranscriptSpan, silenceEnds []float64) []float64 {
	seen := make(map[float64]struct{}, len(spans)+len(silenceEnds))
	for _, s := range spans {
		if endsWithSentenceTerminal(s.Text) {
			seen[s.End] = struct{}{}
		}
	}
	for _, t := range silenceEnds {
		seen[t] = struct{}{}
	}

	out := make([]float64, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Float64s(out)
	return out
}

func endsWithSentenceTerminal(text string) bool {
	r := []rune(text)
	if len(r) == 0 {
		return false
	}
	return strings.ContainsRune(sentenceTerminals, r[len(r)-1])
}
