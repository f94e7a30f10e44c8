package jobs

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/cutoutshort/cutout/internal/metrics"
	"github.com/cutoutshort/cutout/internal/pipeline"
)

// Worker runs jobs through the pipeline with at most maxConcurrent running
// at once. Submissions beyond the bound wait for a slot.
type Worker struct {
	store *Store
	deps  pipeline.Deps
	sem   *semaphore.Weighted
	log   *zap.Logger
	wg    sync.WaitGroup
}

func NewWorker(store *Store, deps pipeline.Deps, maxConcurrent int, log *zap.Logger) *Worker {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Worker{
		store: store,
		deps:  deps,
		sem:   semaphore.NewWeighted(int64(maxConcurrent)),
		log:   log,
	}
}

// Submit registers a job for cfg and starts it as soon as a slot frees up.
// The returned job can be polled via Snapshot.
func (w *Worker) Submit(ctx context.Context, cfg pipeline.Config) *Job {
	j := w.store.Create(cfg.InputMP4)
	cfg.OnProgress = func(stage string, progress float64) {
		j.update(Status(stage), progress, "")
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if err := w.sem.Acquire(ctx, 1); err != nil {
			j.update(StatusError, 0, err.Error())
			metrics.JobsFinished.WithLabelValues(string(StatusError)).Inc()
			return
		}
		defer w.sem.Release(1)
		w.run(ctx, j, cfg)
	}()
	return j
}

func (w *Worker) run(ctx context.Context, j *Job, cfg pipeline.Config) {
	metrics.JobsStarted.Inc()
	log := w.log.With(zap.String("job_id", j.ID), zap.String("input", cfg.InputMP4))
	log.Info("job started")

	res, err := pipeline.Run(ctx, cfg, w.deps, log)
	if err != nil {
		j.update(StatusError, 0, err.Error())
		metrics.JobsFinished.WithLabelValues(string(StatusError)).Inc()
		log.Error("job failed", zap.Error(err))
		return
	}

	j.setRunDir(res.RunDir)
	j.update(StatusDone, 1, "")
	metrics.JobsFinished.WithLabelValues(string(StatusDone)).Inc()
	log.Info("job done", zap.Int("clips", len(res.Manifest.Clips)))
}

// Wait blocks until every submitted job has finished.
func (w *Worker) Wait() {
	w.wg.Wait()
}
