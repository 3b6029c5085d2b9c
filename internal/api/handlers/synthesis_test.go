package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/nikhilbhutani/ttshub/internal/audio"
	"github.com/nikhilbhutani/ttshub/internal/backend"
	"github.com/nikhilbhutani/ttshub/internal/catalog"
	"github.com/nikhilbhutani/ttshub/internal/orchestrator"
)

type fakeAdapter struct {
	id       backend.ID
	probeErr error
	voices   []backend.Voice
}

func (f *fakeAdapter) ID() backend.ID                  { return f.id }
func (f *fakeAdapter) FileExt() string                 { return "wav" }
func (f *fakeAdapter) Probe(ctx context.Context) error { return f.probeErr }

func (f *fakeAdapter) ListVoices(ctx context.Context) ([]backend.Voice, error) {
	return f.voices, nil
}

func (f *fakeAdapter) Synthesize(ctx context.Context, req backend.Request, outPath string) error {
	return os.WriteFile(outPath, []byte("audio"), 0o644)
}

func newTestHandler(t *testing.T) *SynthesisHandler {
	t.Helper()
	registry := backend.NewRegistry(&fakeAdapter{
		id:     backend.LocalEngine,
		voices: []backend.Voice{{Backend: backend.LocalEngine, Name: "alpha", Language: "en"}},
	})
	registry.Init(context.Background())

	store, err := audio.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	orch := orchestrator.New(registry, store, nil, time.Second).WithProbe(
		func(ctx context.Context, path string) (float64, error) { return 0.5, nil },
	)
	cat := catalog.NewService(registry, nil)
	return NewSynthesisHandler(orch, cat, registry, nil, nil, nil, 50)
}

func TestSynthesizeEndpoint(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantOK     bool
	}{
		{"valid request", `{"text":"Hello","backend_id":"local-engine","rate":150,"volume":1.0}`, http.StatusOK, true},
		{"unknown backend", `{"text":"Hello","backend_id":"nonexistent"}`, http.StatusBadRequest, false},
		{"empty text", `{"text":"","backend_id":"local-engine"}`, http.StatusBadRequest, false},
		{"malformed body", `{not json`, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/synthesize", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Synthesize(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantOK {
				var res orchestrator.Result
				if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
					t.Fatalf("unmarshal response: %v", err)
				}
				if !res.Success || res.ArtifactPath == "" {
					t.Errorf("result = %+v, want success with artifact", res)
				}
			}
		})
	}
}

func TestVoicesEndpoint(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/voices", nil)
	rec := httptest.NewRecorder()
	h.Voices(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var voices []backend.Voice
	if err := json.Unmarshal(rec.Body.Bytes(), &voices); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(voices) != 1 || voices[0].Name != "alpha" {
		t.Errorf("voices = %v", voices)
	}
}

func TestHistoryEndpointWithoutDatabase(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	rec := httptest.NewRecorder()
	h.History(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 without a database", rec.Code)
	}
}

func TestBackendsEndpoint(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/backends", nil)
	rec := httptest.NewRecorder()
	h.Backends(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "local-engine") {
		t.Errorf("body %q missing backend id", rec.Body.String())
	}
}
