// Package pipeline runs one clip-production job end to end: extract audio,
// transcribe, pick segments, render each segment vertically with burned
// subtitles and generated copy, and write a manifest describing the run.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/cutoutshort/cutout/internal/domain/copygen"
	"github.com/cutoutshort/cutout/internal/domain/cutfinder"
	"github.com/cutoutshort/cutout/internal/domain/subtitles"
	"github.com/cutoutshort/cutout/internal/metrics"
	"github.com/cutoutshort/cutout/internal/ports"
	"github.com/cutoutshort/cutout/internal/ports/adapters/ffmpeg"
	"github.com/cutoutshort/cutout/internal/ports/adapters/gemini"
	"github.com/cutoutshort/cutout/internal/ports/adapters/whisper"
	"github.com/cutoutshort/cutout/internal/types"
)

type Config struct {
	InputMP4 string
	OutDir   string

	// CacheDir is the base directory for local artifacts (audio, transcripts).
	// If empty, defaults to ".cache".
	CacheDir string

	TargetCount    int
	MinSec         int
	MaxSec         int
	TitleHint      string
	ForceRuleBased bool

	// DryRun stops after segment selection; nothing is rendered.
	DryRun bool

	BurnSubtitles bool

	TranscribeTimeout time.Duration
	RenderTimeout     time.Duration

	// OnProgress, when set, receives coarse stage updates as the run advances.
	// Progress is in [0,1].
	OnProgress func(stage string, progress float64)
}

func (c Config) progress(stage string, p float64) {
	if c.OnProgress != nil {
		c.OnProgress(stage, p)
	}
}

func (c Config) Validate() error {
	if c.InputMP4 == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.InputMP4); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.TargetCount < 0 {
		return fmt.Errorf("clips must be >= 0")
	}
	if c.MinSec < 0 || c.MaxSec < 0 {
		return fmt.Errorf("clip bounds must be >= 0")
	}
	if c.MinSec > 0 && c.MaxSec > 0 && c.MinSec >= c.MaxSec {
		return fmt.Errorf("min clip must be < max clip")
	}
	return nil
}

// Deps are the external collaborators a run needs. Gen may be nil; selection
// and copy generation then use their rule-based paths.
type Deps struct {
	Video   ports.VideoTool
	ASR     ports.Transcriber
	Silence ports.SilenceDetector
	Gen     ports.TextGenerator
}

// ToolConfig locates the external binaries and the generation API.
type ToolConfig struct {
	FFmpegPath  string
	FFprobePath string

	WhisperBin   string
	WhisperModel string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
}

// BuildDeps wires the real adapters. The generator is omitted when no API key
// is configured.
func BuildDeps(tc ToolConfig, log *zap.Logger) Deps {
	v := ffmpeg.New(tc.FFmpegPath, tc.FFprobePath, log)
	d := Deps{
		Video:   v,
		ASR:     whisper.New(tc.WhisperBin, tc.WhisperModel, log),
		Silence: v,
	}
	if tc.GeminiAPIKey != "" {
		d.Gen = gemini.New(tc.GeminiAPIKey, tc.GeminiModel, tc.GeminiBaseURL, log)
	}
	return d
}

type Result struct {
	Segments []types.CandidateSegment
	Manifest types.Manifest

	// RunDir is the per-run output directory; empty on dry runs.
	RunDir string
}

func Run(ctx context.Context, cfg Config, deps Deps, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	jobID := hash(cfg.InputMP4)
	baseCache := cfg.CacheDir
	if baseCache == "" {
		baseCache = ".cache"
	}
	cacheDir := filepath.Join(baseCache, "runs", jobID)
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return Result{}, err
	}
	log.Info("workspace ready", zap.String("cache", cacheDir))

	cfg.progress("transcribing", 0.05)
	wav := filepath.Join(cacheDir, "audio.wav")
	if err := deps.Video.ExtractAudioMono16k(ctx, cfg.InputMP4, wav); err != nil {
		return Result{}, fmt.Errorf("extract audio: %w", err)
	}

	spans, err := timedPhase(ctx, "transcribe", cfg.TranscribeTimeout, func(ctx context.Context) ([]types.TranscriptSpan, error) {
		return deps.ASR.Transcribe(ctx, wav, cacheDir)
	})
	if err != nil {
		return Result{}, fmt.Errorf("transcribe: %w", err)
	}
	log.Info("transcription done", zap.Int("spans", len(spans)))

	cfg.progress("cut_selecting", 0.4)
	picker := cutfinder.NewPicker(deps.Gen, deps.Silence, cutfinder.DefaultTuning(), log)
	segs, err := timedPhase(ctx, "select", 0, func(ctx context.Context) ([]types.CandidateSegment, error) {
		return picker.PickSegments(ctx, spans, cfg.InputMP4, cutfinder.Constraints{
			TargetCount:    cfg.TargetCount,
			MinSec:         cfg.MinSec,
			MaxSec:         cfg.MaxSec,
			TitleHint:      cfg.TitleHint,
			ForceRuleBased: cfg.ForceRuleBased,
		})
	})
	if err != nil {
		return Result{}, err
	}
	log.Info("segments selected", zap.Int("count", len(segs)))

	if cfg.DryRun {
		return Result{Segments: segs}, nil
	}

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	runOutDir := buildRunOutDir(outDir, cfg.InputMP4, time.Now().UTC())
	clipsDir := filepath.Join(runOutDir, "clips")
	subtitlesDir := filepath.Join(runOutDir, "subtitles")
	if err := os.MkdirAll(clipsDir, 0o755); err != nil {
		return Result{}, err
	}
	if cfg.BurnSubtitles {
		if err := os.MkdirAll(subtitlesDir, 0o755); err != nil {
			return Result{}, err
		}
	}
	log.Info("output run dir", zap.String("dir", runOutDir))

	copyGen := copygen.New(deps.Gen, log)

	m := types.Manifest{Input: cfg.InputMP4}
	for i, seg := range segs {
		cfg.progress("rendering", 0.5+0.5*float64(i)/float64(len(segs)))
		clip, err := renderOne(ctx, cfg, deps, copyGen, spans, seg, i+1, runOutDir, log)
		if err != nil {
			// Keep going: one broken clip should not sink the whole run.
			log.Warn("clip render failed",
				zap.Int("clip", i+1),
				zap.Float64("start", seg.Start),
				zap.Float64("end", seg.End),
				zap.Error(err))
			continue
		}
		m.Clips = append(m.Clips, clip)
	}
	if len(segs) > 0 && len(m.Clips) == 0 {
		return Result{}, errors.New("all clip renders failed")
	}

	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("marshal manifest: %w", err)
	}
	manifestPath := filepath.Join(runOutDir, "manifest.json")
	if err := os.WriteFile(manifestPath, b, 0o644); err != nil {
		return Result{}, err
	}
	log.Info("manifest written", zap.Int("clips", len(m.Clips)), zap.String("path", manifestPath))

	return Result{Segments: segs, Manifest: m, RunDir: runOutDir}, nil
}

func renderOne(
	ctx context.Context,
	cfg Config,
	deps Deps,
	copyGen *copygen.Generator,
	spans []types.TranscriptSpan,
	seg types.CandidateSegment,
	n int,
	runOutDir string,
	log *zap.Logger,
) (types.ManifestClip, error) {
	id := fmt.Sprintf("%03d", n)
	clipPath := filepath.Join(runOutDir, "clips", id+".mp4")

	text := segmentText(spans, seg.Start, seg.End)
	cp := copyGen.TitleAndDescription(ctx, text, filepath.Base(cfg.InputMP4))

	srtRel := ""
	srtPath := ""
	if cfg.BurnSubtitles {
		srt := subtitles.RenderClipSRT(spans, seg.Start, seg.End)
		if srt != "" {
			srtPath = filepath.Join(runOutDir, "subtitles", id+".srt")
			if err := os.WriteFile(srtPath, []byte(srt), 0o644); err != nil {
				return types.ManifestClip{}, err
			}
			srtRel = filepath.ToSlash(filepath.Join("subtitles", id+".srt"))
		}
	}

	_, err := timedPhase(ctx, "render", cfg.RenderTimeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, deps.Video.RenderClip(ctx, cfg.InputMP4, seg.Start, seg.End, clipPath, srtPath, cp.Title)
	})
	if err != nil {
		return types.ManifestClip{}, err
	}
	log.Info("clip rendered", zap.String("id", id), zap.String("file", clipPath))

	return types.ManifestClip{
		ID:          id,
		StartSec:    seg.Start,
		EndSec:      seg.End,
		Score:       seg.Score,
		Method:      seg.Method,
		Reason:      seg.Reason,
		File:        filepath.ToSlash(filepath.Join("clips", id+".mp4")),
		Subtitles:   srtRel,
		Title:       cp.Title,
		Description: cp.Description,
	}, nil
}

// segmentText joins the text of every span overlapping [startSec, endSec].
func segmentText(spans []types.TranscriptSpan, startSec, endSec float64) string {
	var parts []string
	for _, sp := range spans {
		if sp.End <= startSec || sp.Start >= endSec {
			continue
		}
		if t := strings.TrimSpace(sp.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// timedPhase runs fn under the optional timeout and records its duration.
func timedPhase[T any](ctx context.Context, phase string, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	start := time.Now()
	v, err := fn(ctx)
	metrics.PhaseDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
	return v, err
}

func buildRunOutDir(outRoot, inputMP4 string, now time.Time) string {
	name := strings.TrimSuffix(filepath.Base(inputMP4), filepath.Ext(inputMP4))
	name = normalizePathSegment(name)
	if name == "" {
		name = "input"
	}
	ts := now.UTC().Format("20060102-150405Z")
	runSeed := fmt.Sprintf("%s|%d", inputMP4, now.UTC().UnixNano())
	suffix := hash(runSeed)[:6]
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, suffix))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.SilenceDetector = (*ffmpeg.Adapter)(nil)
var _ ports.Transcriber = (*whisper.Adapter)(nil)
var _ ports.TextGenerator = (*gemini.Adapter)(nil)
