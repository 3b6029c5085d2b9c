package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nikhilbhutani/ttshub/internal/backend"
	"github.com/nikhilbhutani/ttshub/internal/catalog"
	"github.com/nikhilbhutani/ttshub/internal/history"
	"github.com/nikhilbhutani/ttshub/internal/jobs"
	"github.com/nikhilbhutani/ttshub/internal/orchestrator"
	"github.com/nikhilbhutani/ttshub/internal/queue"
)

type SynthesisHandler struct {
	orch        *orchestrator.Orchestrator
	catalog     *catalog.Service
	registry    *backend.Registry
	history     *history.Store // nil when the database is absent
	queueClient *queue.Client  // nil when Redis is absent
	jobs        *jobs.Store    // nil when Redis is absent
	historyPage int
}

func NewSynthesisHandler(
	orch *orchestrator.Orchestrator,
	cat *catalog.Service,
	registry *backend.Registry,
	hist *history.Store,
	qc *queue.Client,
	jobStore *jobs.Store,
	historyPage int,
) *SynthesisHandler {
	if historyPage <= 0 {
		historyPage = 50
	}
	return &SynthesisHandler{
		orch:        orch,
		catalog:     cat,
		registry:    registry,
		history:     hist,
		queueClient: qc,
		jobs:        jobStore,
		historyPage: historyPage,
	}
}

func (h *SynthesisHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (backend.Request, bool) {
	var req backend.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return req, false
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text required"})
		return req, false
	}
	// Unknown ids are malformed requests, rejected before any adapter
	// is touched — distinct from a failed synthesis.
	if !req.Backend.Known() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported backend: " + string(req.Backend)})
		return req, false
	}
	return req, true
}

// Synthesize runs one synchronous synthesis call.
func (h *SynthesisHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.orch.Synthesize(r.Context(), req)
	if err != nil {
		if errors.Is(err, backend.ErrUnsupportedBackend) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// SynthesizeAsync enqueues a synthesis job and returns its id.
func (h *SynthesisHandler) SynthesizeAsync(w http.ResponseWriter, r *http.Request) {
	if h.queueClient == nil || h.jobs == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "async synthesis requires redis"})
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	job := jobs.Job{
		ID:        uuid.NewString(),
		Status:    jobs.StatusQueued,
		Request:   req,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.jobs.Put(r.Context(), job); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if err := h.queueClient.EnqueueSynthesisRun(queue.SynthesisRunPayload{JobID: job.ID, Request: req}); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": job.ID, "status": job.Status})
}

// JobStatus reports the state of an async synthesis job.
func (h *SynthesisHandler) JobStatus(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "async synthesis requires redis"})
		return
	}

	id := chi.URLParam(r, "id")
	job, err := h.jobs.Get(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// Voices returns the merged catalog across all available backends.
func (h *SynthesisHandler) Voices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.ListAll(r.Context()))
}

type historyItem struct {
	ID              int64   `json:"id"`
	Text            string  `json:"text"`
	BackendID       string  `json:"backend_id"`
	VoiceName       string  `json:"voice_name,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// History lists recent syntheses, newest first, with display truncation
// applied to the text field.
func (h *SynthesisHandler) History(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "history requires a database"})
		return
	}

	records, err := h.history.Recent(r.Context(), h.historyPage)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	items := make([]historyItem, 0, len(records))
	for _, rec := range records {
		items = append(items, historyItem{
			ID:              rec.ID,
			Text:            history.DisplayText(rec.Text),
			BackendID:       string(rec.Backend),
			VoiceName:       rec.VoiceName,
			DurationSeconds: rec.DurationSeconds,
			CreatedAt:       rec.CreatedAt.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, items)
}

// Backends reports the probe outcome for every known backend.
func (h *SynthesisHandler) Backends(w http.ResponseWriter, r *http.Request) {
	type item struct {
		ID        string `json:"backend_id"`
		Available bool   `json:"available"`
		Reason    string `json:"reason,omitempty"`
	}
	descriptors := h.registry.Descriptors()
	items := make([]item, 0, len(descriptors))
	for _, d := range descriptors {
		items = append(items, item{ID: string(d.ID), Available: d.Available, Reason: d.Reason})
	}
	writeJSON(w, http.StatusOK, items)
}
