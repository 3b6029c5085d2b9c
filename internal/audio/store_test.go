package audio

import (
	"strings"
	"sync"
	"testing"

	"github.com/nikhilbhutani/ttshub/internal/backend"
)

func TestNextPathEncodesBackend(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	path := s.NextPath(backend.LocalEngine, "wav")
	if !strings.Contains(path, "tts_local-engine_") {
		t.Errorf("path %q does not encode backend id", path)
	}
	if !strings.HasSuffix(path, ".wav") {
		t.Errorf("path %q does not carry the extension", path)
	}
}

func TestNextPathUniqueUnderConcurrency(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	const n = 100
	paths := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			paths[i] = s.NextPath(backend.CloudBasic, "mp3")
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, p := range paths {
		if seen[p] {
			t.Fatalf("duplicate artifact path %q", p)
		}
		seen[p] = true
	}
}
