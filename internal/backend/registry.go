package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nikhilbhutani/ttshub/internal/config"
)

// Descriptor records the probe outcome for one backend.
type Descriptor struct {
	ID        ID
	Available bool
	Reason    string // probe failure, empty when available

	adapter Adapter
}

// Registry holds the probed set of backend adapters. It is built once at
// startup and read-only afterwards, so concurrent lookups need no locking.
type Registry struct {
	order       []ID
	descriptors map[ID]*Descriptor
}

// NewRegistry registers adapters in the given order. Call Init before use.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{descriptors: make(map[ID]*Descriptor, len(adapters))}
	for _, a := range adapters {
		r.order = append(r.order, a.ID())
		r.descriptors[a.ID()] = &Descriptor{ID: a.ID(), adapter: a}
	}
	return r
}

// NewRegistryFromConfig builds the full adapter set in canonical order.
func NewRegistryFromConfig(cfg config.BackendsConfig) *Registry {
	return NewRegistry(
		NewEspeakAdapter(cfg.Espeak),
		NewGTTSAdapter(cfg.GTTS),
		NewOpenAIAdapter(cfg.OpenAI),
		NewElevenLabsAdapter(cfg.ElevenLabs),
		NewCoquiAdapter(cfg.Coqui),
	)
}

// Init probes every registered backend. A failed probe marks that backend
// unavailable and never aborts initialization of the others.
func (r *Registry) Init(ctx context.Context) {
	for _, id := range r.order {
		d := r.descriptors[id]
		if err := d.adapter.Probe(ctx); err != nil {
			d.Available = false
			d.Reason = err.Error()
			slog.Warn("backend unavailable", "backend", id, "reason", err)
			continue
		}
		d.Available = true
		slog.Info("backend initialized", "backend", id)
	}
}

// Resolve returns the adapter for id. Unknown ids fail with
// ErrUnsupportedBackend, known-but-unprobed or unavailable ones with
// ErrBackendUnavailable.
func (r *Registry) Resolve(id ID) (Adapter, error) {
	d, ok := r.descriptors[id]
	if !ok {
		if !id.Known() {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, id)
		}
		return nil, fmt.Errorf("%w: %s not registered", ErrBackendUnavailable, id)
	}
	if !d.Available {
		if d.Reason != "" {
			return nil, fmt.Errorf("%w: %s: %s", ErrBackendUnavailable, id, d.Reason)
		}
		return nil, fmt.Errorf("%w: %s", ErrBackendUnavailable, id)
	}
	return d.adapter, nil
}

// AvailableIDs returns the available backend ids in registration order.
func (r *Registry) AvailableIDs() []ID {
	ids := make([]ID, 0, len(r.order))
	for _, id := range r.order {
		if r.descriptors[id].Available {
			ids = append(ids, id)
		}
	}
	return ids
}

// Descriptors returns a snapshot of every probe outcome in registration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.descriptors[id])
	}
	return out
}
