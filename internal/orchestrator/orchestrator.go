package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/nikhilbhutani/ttshub/internal/audio"
	"github.com/nikhilbhutani/ttshub/internal/backend"
	"github.com/nikhilbhutani/ttshub/internal/history"
)

// Result is the normalized outcome of one synthesis call, regardless of
// which backend produced it.
type Result struct {
	Success         bool    `json:"success"`
	ArtifactPath    string  `json:"artifact_path,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	Message         string  `json:"message"`
}

// History is the slice of the history store the orchestrator needs.
type History interface {
	Append(ctx context.Context, rec history.Record) error
}

// DurationFunc probes an artifact's playback length.
type DurationFunc func(ctx context.Context, path string) (float64, error)

// Orchestrator routes synthesis requests to backend adapters and
// normalizes their outcomes. It holds only read-only or internally
// synchronized state and is safe for concurrent use.
type Orchestrator struct {
	registry *backend.Registry
	store    *audio.Store
	history  History // nil disables persistence
	probe    DurationFunc
	timeout  time.Duration
}

func New(registry *backend.Registry, store *audio.Store, hist History, timeout time.Duration) *Orchestrator {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Orchestrator{
		registry: registry,
		store:    store,
		history:  hist,
		probe:    audio.Duration,
		timeout:  timeout,
	}
}

// WithProbe overrides the duration probe. Used by tests.
func (o *Orchestrator) WithProbe(probe DurationFunc) *Orchestrator {
	o.probe = probe
	return o
}

// Synthesize runs the full pipeline: validate, resolve, synthesize under
// the per-call timeout, probe duration, persist, respond.
//
// Empty text and unknown backend ids are malformed requests, surfaced
// as errors (ErrEmptyText, ErrUnsupportedBackend). Every runtime
// failure past that point is converted into a Result with
// Success=false; adapter errors never propagate to the caller.
func (o *Orchestrator) Synthesize(ctx context.Context, req backend.Request) (*Result, error) {
	if req.Text == "" {
		return nil, backend.ErrEmptyText
	}
	if !req.Backend.Known() {
		return nil, fmt.Errorf("%w: %q", backend.ErrUnsupportedBackend, req.Backend)
	}
	req = req.Normalized()

	adapter, err := o.registry.Resolve(req.Backend)
	if err != nil {
		return &Result{Success: false, Message: err.Error()}, nil
	}

	outPath := o.store.NextPath(req.Backend, adapter.FileExt())

	synthCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	if err := adapter.Synthesize(synthCtx, req, outPath); err != nil {
		serr := &backend.SynthesisError{Backend: req.Backend, Cause: err}
		slog.Error("synthesis failed", "backend", req.Backend, "error", err)
		os.Remove(outPath) // no artifact survives a failed call
		return &Result{Success: false, Message: serr.Error()}, nil
	}

	// Duration is best-effort: a probe failure degrades to zero rather
	// than failing the call.
	duration, err := o.probe(ctx, outPath)
	if err != nil {
		slog.Warn("duration probe failed", "path", outPath, "error", err)
		duration = 0
	}

	result := &Result{
		Success:         true,
		ArtifactPath:    outPath,
		DurationSeconds: duration,
		Message:         fmt.Sprintf("speech synthesized with %s", req.Backend),
	}

	o.record(ctx, req, result)
	return result, nil
}

// record appends the outcome to history. Persistence is a side effect of
// a successful synthesis, never part of it: failures are logged and the
// already-built result stands.
func (o *Orchestrator) record(ctx context.Context, req backend.Request, res *Result) {
	if o.history == nil || !res.Success {
		return
	}
	rec := history.Record{
		Text:            req.Text,
		Backend:         req.Backend,
		VoiceName:       req.Voice,
		ArtifactPath:    res.ArtifactPath,
		DurationSeconds: res.DurationSeconds,
		Settings: history.Settings{
			Rate:     req.Rate,
			Volume:   req.VolumeOrDefault(),
			Language: req.Language,
		},
	}
	if err := o.history.Append(ctx, rec); err != nil {
		slog.Warn("history append failed", "backend", req.Backend, "error", err)
	}
}
