package ffmpeg

import (
	"context"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// silencedetect filter settings: stretches quieter than -30dB lasting at
// least half a second count as silence.
const silenceFilter = "silencedetect=noise=-30dB:d=0.5"

// DetectSilence probes the media file and returns silence-end timestamps in
// seconds. Best-effort: any failure is logged and yields an empty list, never
// an error, because boundary detection must keep working without it.
func (a *Adapter) DetectSilence(ctx context.Context, mediaPath string) []float64 {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-i", mediaPath,
		"-af", silenceFilter,
		"-f", "null",
		"-",
	)
	// silencedetect reports on stderr; the exit code is irrelevant as long as
	// some output came through.
	out, err := cmd.CombinedOutput()
	points := parseSilenceEnds(string(out))
	if err != nil && len(points) == 0 {
		a.log.Warn("silence detection failed, using empty list", zap.Error(err))
		return nil
	}
	a.log.Info("silence detection completed", zap.Int("points", len(points)))
	return points
}

// parseSilenceEnds extracts timestamps from lines like
//
//	[silencedetect @ 0x...] silence_end: 12.345 | silence_duration: 1.234
func parseSilenceEnds(out string) []float64 {
	var points []float64
	for _, line := range strings.Split(out, "\n") {
		i := strings.Index(line, "silence_end:")
		if i < 0 {
			continue
		}
		rest := line[i+len("silence_end:"):]
		if j := strings.Index(rest, "|"); j >= 0 {
			rest = rest[:j]
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
		if err != nil {
			continue
		}
		points = append(points, v)
	}
	return points
}
