// Package whisper runs a whisper.cpp-style binary as the transcription
// collaborator.
package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cutoutshort/cutout/internal/types"
)

type Adapter struct {
	bin   string
	model string
	log   *zap.Logger
}

func New(binPath, modelPath string, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{bin: binPath, model: modelPath, log: log}
}

// transcriptFile is the JSON document the binary writes with -oj.
type transcriptFile struct {
	Segments []types.TranscriptSpan `json:"segments"`
}

// Transcribe runs the binary against a mono 16k wav and reads back its JSON
// output from cacheDir.
func (a *Adapter) Transcribe(ctx context.Context, wavPath, cacheDir string) ([]types.TranscriptSpan, error) {
	outPrefix := filepath.Join(cacheDir, "whisper")
	args := []string{
		"-m", a.model,
		"-f", wavPath,
		"-oj",
		"-of", outPrefix,
	}
	a.log.Info("running transcription", zap.String("wav", wavPath))
	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("whisper failed: %w\n%s", err, string(b))
	}

	jb, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	var tf transcriptFile
	if err := json.Unmarshal(jb, &tf); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}

	spans := make([]types.TranscriptSpan, 0, len(tf.Segments))
	for _, s := range tf.Segments {
		s.Text = strings.TrimSpace(s.Text)
		if s.End <= s.Start {
			continue
		}
		spans = append(spans, s)
	}
	a.log.Info("transcription completed", zap.Int("spans", len(spans)))
	return spans, nil
}
