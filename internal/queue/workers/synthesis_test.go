package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/hibiken/asynq"

	"github.com/nikhilbhutani/ttshub/internal/audio"
	"github.com/nikhilbhutani/ttshub/internal/backend"
	"github.com/nikhilbhutani/ttshub/internal/jobs"
	"github.com/nikhilbhutani/ttshub/internal/orchestrator"
	"github.com/nikhilbhutani/ttshub/internal/queue"
)

type fakeAdapter struct {
	id       backend.ID
	synthErr error
}

func (f *fakeAdapter) ID() backend.ID                  { return f.id }
func (f *fakeAdapter) FileExt() string                 { return "wav" }
func (f *fakeAdapter) Probe(ctx context.Context) error { return nil }

func (f *fakeAdapter) ListVoices(ctx context.Context) ([]backend.Voice, error) {
	return []backend.Voice{}, nil
}

func (f *fakeAdapter) Synthesize(ctx context.Context, req backend.Request, outPath string) error {
	if f.synthErr != nil {
		return f.synthErr
	}
	return os.WriteFile(outPath, []byte("audio"), 0o644)
}

type fakeJobStore struct {
	mu       sync.Mutex
	jobs     map[string]jobs.Job
	getErr   error
	statuses []string
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[string]jobs.Job)}
}

func (f *fakeJobStore) Put(ctx context.Context, job jobs.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, job.Status)
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobStore) Get(ctx context.Context, id string) (jobs.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return jobs.Job{}, f.getErr
	}
	job, ok := f.jobs[id]
	if !ok {
		return jobs.Job{}, fmt.Errorf("load job %s: not found", id)
	}
	return job, nil
}

func newTestWorker(t *testing.T, store JobStore, adapter backend.Adapter) *SynthesisWorker {
	t.Helper()
	audioStore, err := audio.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	registry := backend.NewRegistry(adapter)
	registry.Init(context.Background())
	orch := orchestrator.New(registry, audioStore, nil, 5*time.Second).WithProbe(
		func(ctx context.Context, path string) (float64, error) { return 1.5, nil },
	)
	return NewSynthesisWorker(orch, store)
}

func synthesisTask(t *testing.T, payload queue.SynthesisRunPayload) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return asynq.NewTask(queue.TypeSynthesisRun, data)
}

func TestProcessTaskLifecycle(t *testing.T) {
	store := newFakeJobStore()
	worker := newTestWorker(t, store, &fakeAdapter{id: backend.LocalEngine})

	req := backend.Request{Backend: backend.LocalEngine, Text: "Hello"}
	store.Put(context.Background(), jobs.Job{ID: "job-1", Status: jobs.StatusQueued, Request: req})

	task := synthesisTask(t, queue.SynthesisRunPayload{JobID: "job-1", Request: req})
	if err := worker.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("ProcessTask() error = %v", err)
	}

	want := []string{jobs.StatusQueued, jobs.StatusRunning, jobs.StatusDone}
	if len(store.statuses) != len(want) {
		t.Fatalf("statuses = %v, want %v", store.statuses, want)
	}
	for i := range want {
		if store.statuses[i] != want[i] {
			t.Fatalf("statuses = %v, want %v", store.statuses, want)
		}
	}

	job := store.jobs["job-1"]
	if job.Result == nil || !job.Result.Success {
		t.Fatalf("final job result = %+v, want success", job.Result)
	}
	if job.Result.ArtifactPath == "" {
		t.Error("final job result has no artifact path")
	}
}

func TestProcessTaskExpiredJobStillRuns(t *testing.T) {
	store := newFakeJobStore()
	store.getErr = fmt.Errorf("load job job-2: %w", fmt.Errorf("cache miss"))
	worker := newTestWorker(t, store, &fakeAdapter{id: backend.LocalEngine})

	req := backend.Request{Backend: backend.LocalEngine, Text: "Hello"}
	task := synthesisTask(t, queue.SynthesisRunPayload{JobID: "job-2", Request: req})
	if err := worker.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("ProcessTask() error = %v", err)
	}

	job := store.jobs["job-2"]
	if job.ID != "job-2" || job.Status != jobs.StatusDone {
		t.Fatalf("final job = %+v, want done under the payload's id", job)
	}
	if job.Result == nil || !job.Result.Success {
		t.Errorf("final job result = %+v, want success", job.Result)
	}
}

func TestProcessTaskFailedSynthesisIsTerminal(t *testing.T) {
	store := newFakeJobStore()
	worker := newTestWorker(t, store, &fakeAdapter{id: backend.CloudBasic, synthErr: fmt.Errorf("network unreachable")})

	req := backend.Request{Backend: backend.CloudBasic, Text: "Hello"}
	store.Put(context.Background(), jobs.Job{ID: "job-3", Status: jobs.StatusQueued, Request: req})

	task := synthesisTask(t, queue.SynthesisRunPayload{JobID: "job-3", Request: req})
	if err := worker.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("failed synthesis must not requeue the task, got error %v", err)
	}

	job := store.jobs["job-3"]
	if job.Status != jobs.StatusDone {
		t.Errorf("final status = %q, want done", job.Status)
	}
	if job.Result == nil || job.Result.Success {
		t.Errorf("final job result = %+v, want failure recorded", job.Result)
	}
}

func TestProcessTaskRejectsBadPayload(t *testing.T) {
	store := newFakeJobStore()
	worker := newTestWorker(t, store, &fakeAdapter{id: backend.LocalEngine})

	task := asynq.NewTask(queue.TypeSynthesisRun, []byte("{not json"))
	if err := worker.ProcessTask(context.Background(), task); err == nil {
		t.Fatal("ProcessTask() accepted a malformed payload")
	}
}
