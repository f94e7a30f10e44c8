//go:build integration

package itest

import (
	"os/exec"
	"path/filepath"
	"testing"
)

func mustRepoRoot(t *testing.T) string {
	t.Helper()
	root, err := findRepoRoot()
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}
	return root
}

// makeSpeechFixture synthesizes a short talking-head mp4 with espeak-ng and
// ffmpeg and returns its path.
func makeSpeechFixture(t *testing.T, dir string) string {
	t.Helper()

	wav := filepath.Join(dir, "speech.wav")
	text := "Here is the key idea. Step one: do this. Step two: measure results. This is important."
	if b, err := exec.Command("espeak-ng", "-w", wav, text).CombinedOutput(); err != nil {
		t.Fatalf("espeak-ng failed: %v\n%s", err, string(b))
	}

	in := filepath.Join(dir, "input.mp4")
	ff := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", "color=c=black:s=1280x720:d=15",
		"-i", wav,
		"-shortest",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		in,
	)
	if b, err := ff.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg fixture failed: %v\n%s", err, string(b))
	}
	return in
}
