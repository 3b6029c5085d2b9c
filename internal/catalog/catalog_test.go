package catalog

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/nikhilbhutani/ttshub/internal/backend"
)

type fakeAdapter struct {
	id       backend.ID
	probeErr error
	voices   []backend.Voice
	listErr  error
}

func (f *fakeAdapter) ID() backend.ID                  { return f.id }
func (f *fakeAdapter) FileExt() string                 { return "wav" }
func (f *fakeAdapter) Probe(ctx context.Context) error { return f.probeErr }

func (f *fakeAdapter) ListVoices(ctx context.Context) ([]backend.Voice, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.voices, nil
}

func (f *fakeAdapter) Synthesize(ctx context.Context, req backend.Request, outPath string) error {
	return nil
}

func voice(id backend.ID, name string) backend.Voice {
	return backend.Voice{Backend: id, Name: name, Language: "en"}
}

func TestListAllPreservesRegistryOrder(t *testing.T) {
	registry := backend.NewRegistry(
		&fakeAdapter{id: backend.LocalEngine, voices: []backend.Voice{voice(backend.LocalEngine, "alpha"), voice(backend.LocalEngine, "beta")}},
		&fakeAdapter{id: backend.CloudPremiumA, voices: []backend.Voice{voice(backend.CloudPremiumA, "gamma")}},
	)
	registry.Init(context.Background())
	svc := NewService(registry, nil)

	got := svc.ListAll(context.Background())
	want := []backend.Voice{
		voice(backend.LocalEngine, "alpha"),
		voice(backend.LocalEngine, "beta"),
		voice(backend.CloudPremiumA, "gamma"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListAll() = %v, want %v", got, want)
	}
}

func TestListAllToleratesListingFailure(t *testing.T) {
	registry := backend.NewRegistry(
		&fakeAdapter{id: backend.LocalEngine, listErr: fmt.Errorf("engine crashed")},
		&fakeAdapter{id: backend.CloudPremiumA, voices: []backend.Voice{voice(backend.CloudPremiumA, "gamma")}},
	)
	registry.Init(context.Background())
	svc := NewService(registry, nil)

	got := svc.ListAll(context.Background())
	if len(got) != 1 || got[0].Name != "gamma" {
		t.Errorf("ListAll() = %v, want just gamma", got)
	}
}

func TestListAllSkipsUnavailableBackends(t *testing.T) {
	registry := backend.NewRegistry(
		&fakeAdapter{id: backend.LocalEngine, voices: []backend.Voice{voice(backend.LocalEngine, "alpha")}},
		&fakeAdapter{id: backend.CloudPremiumB, probeErr: fmt.Errorf("no credentials"), voices: []backend.Voice{voice(backend.CloudPremiumB, "hidden")}},
	)
	registry.Init(context.Background())
	svc := NewService(registry, nil)

	got := svc.ListAll(context.Background())
	if len(got) != 1 || got[0].Name != "alpha" {
		t.Errorf("ListAll() = %v, want just alpha", got)
	}
}

func TestListAllIdempotent(t *testing.T) {
	registry := backend.NewRegistry(
		&fakeAdapter{id: backend.LocalEngine, voices: []backend.Voice{voice(backend.LocalEngine, "alpha")}},
		&fakeAdapter{id: backend.CloudBasic},
	)
	registry.Init(context.Background())
	svc := NewService(registry, nil)

	first := svc.ListAll(context.Background())
	second := svc.ListAll(context.Background())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("consecutive ListAll() calls differ: %v vs %v", first, second)
	}
}

func TestListAllEmptyWhenNothingAvailable(t *testing.T) {
	registry := backend.NewRegistry(
		&fakeAdapter{id: backend.LocalEngine, probeErr: fmt.Errorf("not installed")},
	)
	registry.Init(context.Background())
	svc := NewService(registry, nil)

	got := svc.ListAll(context.Background())
	if got == nil {
		t.Fatal("ListAll() = nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("ListAll() = %v, want empty", got)
	}
}
