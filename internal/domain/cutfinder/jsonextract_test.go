package cutfinder

import (
	"encoding/json"
	"testing"
)

const cleanArray = `[{"start": 5.0, "end": 35.0, "reason": "hook", "score": 0.8}, {"start": 40.0, "end": 70.0, "reason": "payoff", "score": 0.6}]`

func decodeCandidates(t *testing.T, raw json.RawMessage) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode extracted JSON: %v", err)
	}
	return out
}

func TestExtractJSON_RepairedInputsMatchClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"clean", cleanArray},
		{"fenced", "```json\n" + cleanArray + "\n```"},
		{"bare_fence", "```\n" + cleanArray + "\n```"},
		{"prose_around", "Sure, here are the picks:\n" + cleanArray + "\nLet me know!"},
		{"truncated_mid_object", `[{"start": 5.0, "end": 35.0, "reason": "hook", "score": 0.8}, {"start": 40.0, "end": 70.0, "reason": "payoff", "score": 0.6`},
		{"trailing_comma", `[{"start": 5.0, "end": 35.0, "reason": "hook", "score": 0.8}, {"start": 40.0, "end": 70.0, "reason": "payoff", "score": 0.6},]`},
	}

	wantFirst := map[string]float64{"start": 5.0, "end": 35.0, "score": 0.8}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := ExtractJSON(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := decodeCandidates(t, raw)
			if len(got) == 0 {
				t.Fatalf("expected at least one candidate")
			}
			for k, want := range wantFirst {
				v, ok := got[0][k].(float64)
				if !ok || v != want {
					t.Fatalf("first candidate %s = %v, want %v", k, got[0][k], want)
				}
			}
		})
	}
}

func TestExtractJSON_TruncatedKeepsBothObjects(t *testing.T) {
	in := `[{"start": 5.0, "end": 35.0, "score": 0.8}, {"start": 40.0, "end": 70.0, "score": 0.6`
	raw, err := ExtractJSON(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := decodeCandidates(t, raw); len(got) != 2 {
		t.Fatalf("expected 2 candidates after repair, got %d", len(got))
	}
}

func TestExtractJSON_EmptyValuePatched(t *testing.T) {
	in := `[{"start": 5.0, "end": 35.0, "reason": "ok", "score":}]`
	raw, err := ExtractJSON(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := decodeCandidates(t, raw)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0]["score"] != nil {
		t.Fatalf("expected null score, got %v", got[0]["score"])
	}
}

func TestExtractJSON_ObjectFallback(t *testing.T) {
	raw, err := ExtractJSON(`The answer is {"title": "a", "description": "b"} as requested.`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var obj map[string]string
	if err := json.Unmarshal(raw, &obj); err != nil {
		t.Fatalf("decode object: %v", err)
	}
	if obj["title"] != "a" || obj["description"] != "b" {
		t.Fatalf("unexpected object: %v", obj)
	}
}

func TestExtractJSON_TruncatedObject(t *testing.T) {
	raw, err := ExtractJSON(`{"title": "a", "description": "b"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var obj map[string]string
	if err := json.Unmarshal(raw, &obj); err != nil {
		t.Fatalf("decode object: %v", err)
	}
	if obj["title"] != "a" {
		t.Fatalf("unexpected object: %v", obj)
	}
}

func TestExtractJSON_NoStructure(t *testing.T) {
	for _, in := range []string{"", "sorry, I cannot help with that", "1, 2, 3"} {
		if _, err := ExtractJSON(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestOffsetToLineCol(t *testing.T) {
	line, col := offsetToLineCol("ab\ncd\nef", 4)
	if line != 2 || col != 2 {
		t.Fatalf("expected line 2 col 2, got line %d col %d", line, col)
	}
}
