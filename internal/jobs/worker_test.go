package jobs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cutoutshort/cutout/internal/pipeline"
	"github.com/cutoutshort/cutout/internal/types"
)

type fakeVideo struct{}

func (fakeVideo) ExtractAudioMono16k(_ context.Context, _, outWav string) error {
	return os.WriteFile(outWav, []byte("wav"), 0o644)
}

func (fakeVideo) RenderClip(_ context.Context, _ string, _, _ float64, outMP4, _, _ string) error {
	return os.WriteFile(outMP4, []byte("mp4"), 0o644)
}

func (fakeVideo) ProbeDuration(context.Context, string) (float64, error) { return 100, nil }

type fakeASR struct {
	err error

	mu      sync.Mutex
	active  int32
	maxSeen int32
}

func (f *fakeASR) Transcribe(context.Context, string, string) ([]types.TranscriptSpan, error) {
	cur := atomic.AddInt32(&f.active, 1)
	defer atomic.AddInt32(&f.active, -1)
	f.mu.Lock()
	if cur > f.maxSeen {
		f.maxSeen = cur
	}
	f.mu.Unlock()
	time.Sleep(20 * time.Millisecond)

	if f.err != nil {
		return nil, f.err
	}
	return []types.TranscriptSpan{
		{Start: 0, End: 30, Text: "First part of the talk."},
		{Start: 30, End: 65, Text: "Second part with more detail."},
		{Start: 65, End: 100, Text: "Closing thoughts."},
	}, nil
}

type fakeSilence struct{}

func (fakeSilence) DetectSilence(context.Context, string) []float64 { return nil }

func workerFixture(t *testing.T, asr *fakeASR, maxConcurrent int) (*Worker, pipeline.Config) {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "talk.mp4")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0o644))

	store := NewStore(time.Minute)
	t.Cleanup(store.Stop)

	deps := pipeline.Deps{Video: fakeVideo{}, ASR: asr, Silence: fakeSilence{}}
	w := NewWorker(store, deps, maxConcurrent, nil)
	cfg := pipeline.Config{
		InputMP4:    input,
		OutDir:      filepath.Join(dir, "out"),
		CacheDir:    filepath.Join(dir, "cache"),
		TargetCount: 3,
		MinSec:      25,
		MaxSec:      45,
	}
	return w, cfg
}

func TestWorkerRunsJobToDone(t *testing.T) {
	w, cfg := workerFixture(t, &fakeASR{}, 2)

	j := w.Submit(context.Background(), cfg)
	w.Wait()

	snap := j.Snapshot()
	assert.Equal(t, StatusDone, snap.Status)
	assert.Equal(t, 1.0, snap.Progress)
	require.NotEmpty(t, snap.RunDir)
	_, err := os.Stat(filepath.Join(snap.RunDir, "manifest.json"))
	assert.NoError(t, err)
}

func TestWorkerRecordsFailure(t *testing.T) {
	w, cfg := workerFixture(t, &fakeASR{err: errors.New("whisper exploded")}, 2)

	j := w.Submit(context.Background(), cfg)
	w.Wait()

	snap := j.Snapshot()
	assert.Equal(t, StatusError, snap.Status)
	assert.Contains(t, snap.Message, "whisper exploded")
}

func TestWorkerBoundsConcurrency(t *testing.T) {
	asr := &fakeASR{}
	w, cfg := workerFixture(t, asr, 1)

	for i := 0; i < 3; i++ {
		w.Submit(context.Background(), cfg)
	}
	w.Wait()

	assert.LessOrEqual(t, asr.maxSeen, int32(1))
}

func TestWorkerReportsStageProgress(t *testing.T) {
	w, cfg := workerFixture(t, &fakeASR{}, 1)

	j := w.Submit(context.Background(), cfg)

	// The job passes through the transcribing stage before finishing.
	deadline := time.After(5 * time.Second)
	for {
		snap := j.Snapshot()
		if snap.Status == StatusTranscribing || snap.Status == StatusDone {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("job stuck in status %q", snap.Status)
		case <-time.After(time.Millisecond):
		}
	}
	w.Wait()
	assert.Equal(t, StatusDone, j.Snapshot().Status)
}
