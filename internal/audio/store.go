package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/nikhilbhutani/ttshub/internal/backend"
)

// Store manages the shared artifact directory. Paths it hands out are
// unique within the process even for calls landing in the same second,
// because a monotonic counter disambiguates the timestamp.
type Store struct {
	dir string
	seq atomic.Uint64
}

func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = "audio_outputs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// NextPath derives a fresh artifact path encoding the backend id, a
// timestamp and the per-process sequence number.
func (s *Store) NextPath(id backend.ID, ext string) string {
	name := fmt.Sprintf("tts_%s_%s_%04d.%s",
		id,
		time.Now().Format("20060102_150405"),
		s.seq.Add(1),
		ext,
	)
	return filepath.Join(s.dir, name)
}
