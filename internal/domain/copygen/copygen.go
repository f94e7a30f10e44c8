// Package copygen produces the title and description for a rendered clip.
// Generation goes through the text-generation collaborator when one is
// configured; a deterministic rule-based fallback means the package never
// fails to return usable copy.
package copygen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cutoutshort/cutout/internal/domain/cutfinder"
	"github.com/cutoutshort/cutout/internal/ports"
)

const (
	titleRuneBudget      = 40
	transcriptCharBudget = 1000

	temperature     = 0.7
	maxOutputTokens = 500
)

// Copy is the marketing text attached to one clip.
type Copy struct {
	Title       string
	Description string
}

type Generator struct {
	gen ports.TextGenerator // nil disables model generation
	log *zap.Logger
}

func New(gen ports.TextGenerator, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{gen: gen, log: log}
}

// TitleAndDescription builds copy for a clip from its transcript text. Model
// failures degrade to the rule-based fallback; this method never errors.
func (g *Generator) TitleAndDescription(ctx context.Context, transcriptText, fallbackTitle string) Copy {
	if g.gen != nil {
		c, err := g.generate(ctx, transcriptText)
		if err == nil {
			return c
		}
		g.log.Warn("copy generation failed, using fallback", zap.Error(err))
	}
	return fallbackCopy(transcriptText, fallbackTitle)
}

func (g *Generator) generate(ctx context.Context, transcriptText string) (Copy, error) {
	prompt := buildCopyPrompt(transcriptText)

	out, err := g.gen.Generate(ctx, prompt, ports.GenerationParams{
		Temperature:     temperature,
		MaxOutputTokens: maxOutputTokens,
	})
	if err != nil {
		return Copy{}, fmt.Errorf("text generation: %w", err)
	}

	raw, err := cutfinder.ExtractJSON(out)
	if err != nil {
		return Copy{}, fmt.Errorf("extract copy: %w", err)
	}

	var parsed struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Copy{}, fmt.Errorf("decode copy: %w", err)
	}
	if strings.TrimSpace(parsed.Title) == "" {
		return Copy{}, fmt.Errorf("generated copy has empty title")
	}
	return Copy{
		Title:       truncateRunes(strings.TrimSpace(parsed.Title), titleRuneBudget),
		Description: strings.TrimSpace(parsed.Description),
	}, nil
}

func buildCopyPrompt(transcriptText string) string {
	return fmt.Sprintf(`Write a title and description for a short vertical video from this transcript excerpt.

Transcript:
%s

Requirements:
1. The title is a hook of at most %d characters, no quotes around it.
2. The description is 1-2 sentences summarizing the payoff.
3. Return only this JSON object (no explanation text):
{"title": "...", "description": "..."}`,
		truncateRunes(transcriptText, transcriptCharBudget), titleRuneBudget)
}

// fallbackCopy derives a title from the first sentence of the transcript.
func fallbackCopy(transcriptText, fallbackTitle string) Copy {
	text := strings.TrimSpace(transcriptText)
	title := firstSentence(text)
	if title == "" {
		title = fallbackTitle
	}
	title = truncateRunes(title, titleRuneBudget)

	desc := truncateRunes(text, 200)
	if desc == "" {
		desc = title
	}
	return Copy{Title: title, Description: desc}
}

func firstSentence(text string) string {
	if text == "" {
		return ""
	}
	end := len(text)
	for i, r := range text {
		if strings.ContainsRune("。！？.!?\n", r) {
			end = i
			break
		}
	}
	return strings.TrimSpace(text[:end])
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
