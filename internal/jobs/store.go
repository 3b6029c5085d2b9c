package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/nikhilbhutani/ttshub/internal/backend"
	"github.com/nikhilbhutani/ttshub/internal/cache"
	"github.com/nikhilbhutani/ttshub/internal/orchestrator"
)

const (
	StatusQueued  = "queued"
	StatusRunning = "running"
	StatusDone    = "done"

	keyPrefix = "synthesis:job:"
	jobTTL    = time.Hour
)

// Job tracks one async synthesis request through the queue. Completed
// jobs carry the same normalized result a synchronous call returns.
type Job struct {
	ID        string               `json:"id"`
	Status    string               `json:"status"`
	Request   backend.Request      `json:"request"`
	Result    *orchestrator.Result `json:"result,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// Store keeps job state in Redis with a fixed TTL.
type Store struct {
	cache *cache.Cache
}

func NewStore(c *cache.Cache) *Store {
	return &Store{cache: c}
}

func (s *Store) Put(ctx context.Context, job Job) error {
	job.UpdatedAt = time.Now().UTC()
	if err := s.cache.Set(ctx, keyPrefix+job.ID, job, jobTTL); err != nil {
		return fmt.Errorf("store job %s: %w", job.ID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (Job, error) {
	var job Job
	if err := s.cache.Get(ctx, keyPrefix+id, &job); err != nil {
		return Job{}, fmt.Errorf("load job %s: %w", id, err)
	}
	return job, nil
}
