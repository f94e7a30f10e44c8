package copygen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cutoutshort/cutout/internal/ports"
)

type fakeGenerator struct {
	response string
	err      error
}

func (f *fakeGenerator) Generate(context.Context, string, ports.GenerationParams) (string, error) {
	return f.response, f.err
}

func TestTitleAndDescription_FromModel(t *testing.T) {
	gen := &fakeGenerator{response: "```json\n{\"title\": \"The one trick\", \"description\": \"Why it works.\"}\n```"}
	g := New(gen, nil)

	got := g.TitleAndDescription(context.Background(), "some transcript text.", "fallback")
	if got.Title != "The one trick" {
		t.Fatalf("unexpected title: %q", got.Title)
	}
	if got.Description != "Why it works." {
		t.Fatalf("unexpected description: %q", got.Description)
	}
}

func TestTitleAndDescription_ModelFailureFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("offline")}
	g := New(gen, nil)

	got := g.TitleAndDescription(context.Background(), "The key point is this. And then more detail follows.", "fallback")
	if got.Title != "The key point is this" {
		t.Fatalf("expected first-sentence title, got %q", got.Title)
	}
	if got.Description == "" {
		t.Fatalf("expected non-empty description")
	}
}

func TestTitleAndDescription_NilGeneratorUsesFallback(t *testing.T) {
	g := New(nil, nil)

	got := g.TitleAndDescription(context.Background(), "", "fallback title")
	if got.Title != "fallback title" {
		t.Fatalf("expected fallback title, got %q", got.Title)
	}
}

func TestTitleAndDescription_TitleBudget(t *testing.T) {
	long := strings.Repeat("long ", 30) + "."
	g := New(&fakeGenerator{err: errors.New("offline")}, nil)

	got := g.TitleAndDescription(context.Background(), long, "fallback")
	if n := len([]rune(got.Title)); n > titleRuneBudget {
		t.Fatalf("title exceeds budget: %d runes", n)
	}
}

func TestTitleAndDescription_EmptyModelTitleFallsBack(t *testing.T) {
	gen := &fakeGenerator{response: `{"title": "", "description": "d"}`}
	g := New(gen, nil)

	got := g.TitleAndDescription(context.Background(), "Some text here.", "fallback")
	if got.Title != "Some text here" {
		t.Fatalf("expected fallback title, got %q", got.Title)
	}
}
