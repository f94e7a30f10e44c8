// Package jobs tracks in-process clip-production jobs: an expiring record
// store plus a worker that runs jobs under a concurrency bound. It is
// process-local bookkeeping, not a durable queue.
package jobs

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
)

// Status is the lifecycle state of one job.
type Status string

const (
	StatusQueued       Status = "queued"
	StatusTranscribing Status = "transcribing"
	StatusCutSelecting Status = "cut_selecting"
	StatusRendering    Status = "rendering"
	StatusDone         Status = "done"
	StatusError        Status = "error"
)

// Job is one tracked run. Fields are guarded by mu; use Snapshot for reads.
type Job struct {
	mu sync.Mutex

	ID        string
	Input     string
	Status    Status
	Progress  float64
	Message   string
	RunDir    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot is a copyable view of a job's state.
type Snapshot struct {
	ID        string
	Input     string
	Status    Status
	Progress  float64
	Message   string
	RunDir    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (j *Job) Snapshot() Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return Snapshot{
		ID:        j.ID,
		Input:     j.Input,
		Status:    j.Status,
		Progress:  j.Progress,
		Message:   j.Message,
		RunDir:    j.RunDir,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

func (j *Job) update(st Status, progress float64, message string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = st
	if progress > j.Progress {
		j.Progress = progress
	}
	if message != "" {
		j.Message = message
	}
	j.UpdatedAt = time.Now()
}

func (j *Job) setRunDir(dir string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.RunDir = dir
	j.UpdatedAt = time.Now()
}

// Store holds job records with a retention TTL. Finished jobs stay readable
// until they expire.
type Store struct {
	cache *ttlcache.Cache[string, *Job]
}

func NewStore(retention time.Duration) *Store {
	ttl := ttlcache.NoTTL
	if retention > 0 {
		ttl = retention
	}
	c := ttlcache.New(
		ttlcache.WithTTL[string, *Job](ttl),
	)
	go c.Start()
	return &Store{cache: c}
}

// Create registers a new queued job and returns it.
func (s *Store) Create(input string) *Job {
	now := time.Now()
	j := &Job{
		ID:        uuid.NewString(),
		Input:     input,
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.cache.Set(j.ID, j, ttlcache.DefaultTTL)
	return j
}

// Get returns the job with the given ID, or nil if unknown or expired.
func (s *Store) Get(id string) *Job {
	item := s.cache.Get(id)
	if item == nil {
		return nil
	}
	return item.Value()
}

// List returns a snapshot of every live job.
func (s *Store) List() []Snapshot {
	var out []Snapshot
	for _, item := range s.cache.Items() {
		out = append(out, item.Value().Snapshot())
	}
	return out
}

// Stop shuts down the expiry loop.
func (s *Store) Stop() {
	s.cache.Stop()
}
