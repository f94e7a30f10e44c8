package ffmpeg

import "testing"

func TestParseSilenceEnds(t *testing.T) {
	out := `frame=  100 fps= 50 q=-0.0 size=N/A
[silencedetect @ 0x55d] silence_start: 11.2
[silencedetect @ 0x55d] silence_end: 12.345 | silence_duration: 1.145
some unrelated line
[silencedetect @ 0x55d] silence_end: 28.5 | silence_duration: 0.7
[silencedetect @ 0x55d] silence_end: garbage | silence_duration: 0.7
[silencedetect @ 0x55d] silence_end: 50
`
	got := parseSilenceEnds(out)
	want := []float64{12.345, 28.5, 50}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestParseSilenceEnds_Empty(t *testing.T) {
	if got := parseSilenceEnds(""); len(got) != 0 {
		t.Fatalf("expected no points, got %v", got)
	}
}

func TestFmtSeconds(t *testing.T) {
	if got := fmtSeconds(12.5); got != "12.500" {
		t.Fatalf("unexpected format: %q", got)
	}
}

func TestEscapeDrawText(t *testing.T) {
	if got := escapeDrawText("it's 10:30"); got != "it\\'s 10\\:30" {
		t.Fatalf("unexpected escape: %q", got)
	}
}
