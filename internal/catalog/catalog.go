package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/nikhilbhutani/ttshub/internal/backend"
	"github.com/nikhilbhutani/ttshub/internal/cache"
)

const (
	cacheKey = "catalog:voices"
	cacheTTL = 5 * time.Minute
)

// Service merges every available backend's voice list into one catalog,
// preserving registry order. A Redis cache is optional; without it every
// call aggregates directly.
type Service struct {
	registry *backend.Registry
	cache    *cache.Cache
}

func NewService(registry *backend.Registry, c *cache.Cache) *Service {
	return &Service{registry: registry, cache: c}
}

// ListAll concatenates voices from each available backend in
// registration order. A single backend's listing failure contributes
// zero voices instead of failing the whole catalog.
func (s *Service) ListAll(ctx context.Context) []backend.Voice {
	if s.cache != nil {
		var cached []backend.Voice
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached
		}
	}

	voices := make([]backend.Voice, 0)
	for _, id := range s.registry.AvailableIDs() {
		adapter, err := s.registry.Resolve(id)
		if err != nil {
			continue
		}
		list, err := adapter.ListVoices(ctx)
		if err != nil {
			slog.Warn("voice listing failed", "backend", id, "error", err)
			continue
		}
		voices = append(voices, list...)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, voices, cacheTTL); err != nil {
			slog.Warn("catalog cache write failed", "error", err)
		}
	}
	return voices
}
