// Package subtitles renders per-clip SRT files from transcript spans.
package subtitles

import (
	"fmt"
	"math"
	"strings"

	"github.com/cutoutshort/cutout/internal/types"
)

// RenderClipSRT writes the spans intersecting [startSec, endSec] as an SRT
// document with clip-local timestamps, because the renderer burns subtitles
// into clips cut from the full timeline. Spans are clamped to the window;
// empty-text spans are skipped.
func RenderClipSRT(spans []types.TranscriptSpan, startSec, endSec float64) string {
	var b strings.Builder
	idx := 0
	for _, s := range spans {
		if s.End <= startSec || s.Start >= endSec {
			continue
		}
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}

		from := math.Max(s.Start, startSec) - startSec
		to := math.Min(s.End, endSec) - startSec
		if to <= from {
			continue
		}

		idx++
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", idx, formatSRTTime(from), formatSRTTime(to), text)
	}
	return b.String()
}

// formatSRTTime converts seconds to the SRT time format HH:MM:SS,mmm.
func formatSRTTime(seconds float64) string {
	total := math.Abs(seconds)
	hours := int(total / 3600)
	remainder := math.Mod(total, 3600)
	minutes := int(remainder / 60)
	secs := math.Mod(remainder, 60)
	millis := int(math.Round(math.Mod(secs, 1) * 1000))
	if millis >= 1000 {
		millis = 999
	}
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, int(secs), millis)
}
