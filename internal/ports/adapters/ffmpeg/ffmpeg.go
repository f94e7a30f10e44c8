// Package ffmpeg shells out to ffmpeg/ffprobe for audio extraction, silence
// probing and clip rendering.
package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
	log     *zap.Logger
}

func New(ffmpegPath, ffprobePath string, log *zap.Logger) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath, log: log}
}

func (a *Adapter) ExtractAudioMono16k(ctx context.Context, inMP4, outWav string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", inMP4,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		outWav,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w\n%s", err, string(b))
	}
	return nil
}

// RenderClip cuts [startSec, endSec] into a 9:16 1080x1920 letterboxed clip
// with loudness normalization, optionally burning SRT subtitles and drawing a
// title overlay.
func (a *Adapter) RenderClip(ctx context.Context, inMP4 string, startSec, endSec float64, outMP4, burnSRT, title string) error {
	duration := endSec - startSec
	if duration <= 0 {
		return fmt.Errorf("ffmpeg render clip: non-positive duration %v", duration)
	}

	vf := "scale=iw*min(1080/iw\\,1920/ih):ih*min(1080/iw\\,1920/ih)," +
		"pad=1080:1920:(1080-iw)/2:(1920-ih)/2," +
		"setsar=1"
	if burnSRT != "" {
		vf += ",subtitles=" + escapeFilterPath(burnSRT)
	}
	if title != "" {
		vf += ",drawtext=text='" + escapeDrawText(title) + "'" +
			":fontsize=48" +
			":fontcolor=white" +
			":borderw=3" +
			":bordercolor=black" +
			":x=(w-text_w)/2" +
			":y=(h/2)-100"
	}

	args := []string{
		"-y",
		"-ss", fmtSeconds(startSec),
		"-t", fmtSeconds(duration),
		"-i", inMP4,
		"-vf", vf,
		"-af", "loudnorm=I=-16:TP=-1.5:LRA=11",
		"-c:v", "libx264",
		"-crf", "18",
		"-preset", "medium",
		"-pix_fmt", "yuv420p",
		"-r", "30",
		"-c:a", "aac",
		"-b:a", "160k",
		"-ar", "48000",
		"-movflags", "+faststart",
		outMP4,
	}
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg render clip: %w\n%s", err, tail(string(b), 500))
	}

	// Catch silent encoder failures before the file moves downstream.
	info, err := os.Stat(outMP4)
	if err != nil {
		return fmt.Errorf("ffmpeg render clip: output missing: %w", err)
	}
	if info.Size() < 1000 {
		return fmt.Errorf("ffmpeg render clip: output too small: %d bytes", info.Size())
	}
	return nil
}

func (a *Adapter) ProbeDuration(ctx context.Context, inMP4 string) (float64, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inMP4,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return sec, nil
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}

func escapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "\\\\")
	p = strings.ReplaceAll(p, ":", "\\:")
	return p
}

func escapeDrawText(s string) string {
	s = strings.ReplaceAll(s, "'", "\\'")
	s = strings.ReplaceAll(s, ":", "\\:")
	return s
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
