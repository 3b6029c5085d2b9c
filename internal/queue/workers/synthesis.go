package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/nikhilbhutani/ttshub/internal/jobs"
	"github.com/nikhilbhutani/ttshub/internal/orchestrator"
	"github.com/nikhilbhutani/ttshub/internal/queue"
)

// JobStore is the slice of the job store the worker needs.
type JobStore interface {
	Put(ctx context.Context, job jobs.Job) error
	Get(ctx context.Context, id string) (jobs.Job, error)
}

// SynthesisWorker drains the synthesis queue through the same
// orchestrator the synchronous API uses, recording outcomes in the job
// store.
type SynthesisWorker struct {
	orch *orchestrator.Orchestrator
	jobs JobStore
}

func NewSynthesisWorker(orch *orchestrator.Orchestrator, jobStore JobStore) *SynthesisWorker {
	return &SynthesisWorker{orch: orch, jobs: jobStore}
}

func (w *SynthesisWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.SynthesisRunPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal synthesis payload: %w", err)
	}

	job, err := w.jobs.Get(ctx, payload.JobID)
	if err != nil {
		// The TTL expired or the enqueue never recorded the job; run
		// anyway so the synthesis is not lost, but nothing to update.
		slog.Warn("job record missing", "job_id", payload.JobID, "error", err)
		job = jobs.Job{ID: payload.JobID, Request: payload.Request}
	}

	job.Status = jobs.StatusRunning
	if err := w.jobs.Put(ctx, job); err != nil {
		slog.Warn("job status update failed", "job_id", job.ID, "error", err)
	}

	result, err := w.orch.Synthesize(ctx, payload.Request)
	if err != nil {
		// Unsupported backend slipped past the boundary check; surface
		// it as a failed result rather than retrying a hopeless task.
		result = &orchestrator.Result{Success: false, Message: err.Error()}
	}

	job.Status = jobs.StatusDone
	job.Result = result
	if err := w.jobs.Put(ctx, job); err != nil {
		slog.Warn("job result update failed", "job_id", job.ID, "error", err)
	}

	slog.Info("synthesis job finished", "job_id", job.ID, "backend", payload.Request.Backend, "success", result.Success)
	return nil
}
