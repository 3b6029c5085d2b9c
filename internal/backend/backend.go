package backend

import (
	"context"
	"strings"
)

// ID identifies one of the supported synthesis backends.
type ID string

const (
	LocalEngine   ID = "local-engine"
	CloudBasic    ID = "cloud-basic"
	CloudPremiumA ID = "cloud-premium-a"
	CloudPremiumB ID = "cloud-premium-b"
	NeuralCloning ID = "neural-cloning"
)

// KnownIDs returns every supported backend id in canonical order.
func KnownIDs() []ID {
	return []ID{LocalEngine, CloudBasic, CloudPremiumA, CloudPremiumB, NeuralCloning}
}

// Known reports whether id is one of the supported backends.
func (id ID) Known() bool {
	switch id {
	case LocalEngine, CloudBasic, CloudPremiumA, CloudPremiumB, NeuralCloning:
		return true
	}
	return false
}

const (
	DefaultRate   = 150
	DefaultVolume = 1.0

	minRate = 50
	maxRate = 300
)

// Request holds the normalized parameters for one synthesis call.
// Volume is a pointer because 0.0 (mute) is a valid value: nil means
// the caller left it unset and the default applies.
type Request struct {
	Backend  ID       `json:"backend_id"`
	Text     string   `json:"text"`
	Voice    string   `json:"voice_name,omitempty"`
	Rate     int      `json:"rate,omitempty"`     // words per minute
	Volume   *float64 `json:"volume,omitempty"`   // 0.0 to 1.0
	Language string   `json:"language,omitempty"` // BCP-47-ish code, e.g. "en"
}

// Normalized returns a copy with defaults filled in and rate/volume
// clamped to the supported ranges. Volume is non-nil afterwards.
func (r Request) Normalized() Request {
	if r.Rate == 0 {
		r.Rate = DefaultRate
	}
	if r.Rate < minRate {
		r.Rate = minRate
	}
	if r.Rate > maxRate {
		r.Rate = maxRate
	}
	volume := DefaultVolume
	if r.Volume != nil {
		volume = *r.Volume
		if volume < 0 {
			volume = 0
		}
		if volume > 1 {
			volume = 1
		}
	}
	r.Volume = &volume
	if r.Language == "" {
		r.Language = "en"
	}
	return r
}

// VolumeOrDefault returns the volume, or DefaultVolume when unset.
func (r Request) VolumeOrDefault() float64 {
	if r.Volume == nil {
		return DefaultVolume
	}
	return *r.Volume
}

// Voice describes one selectable voice offered by a backend.
type Voice struct {
	Backend  ID     `json:"backend_id"`
	Name     string `json:"name"`
	Language string `json:"language"`
	Gender   string `json:"gender,omitempty"`
}

// Adapter is the interface every synthesis backend implements.
type Adapter interface {
	ID() ID

	// Probe checks the backend's prerequisites (binary on PATH, API key
	// present). A non-nil error marks the backend unavailable.
	Probe(ctx context.Context) error

	// ListVoices enumerates the backend's voices. Backends without a
	// queryable catalog return an empty slice, never an error for that.
	ListVoices(ctx context.Context) ([]Voice, error)

	// Synthesize writes the audio artifact for req to outPath.
	Synthesize(ctx context.Context, req Request, outPath string) error

	// FileExt is the artifact extension this backend produces ("wav", "mp3").
	FileExt() string
}

// MatchVoice returns the first voice whose name contains want as a
// case-sensitive substring. Callers fall back to the backend's default
// voice on a miss instead of failing.
func MatchVoice(voices []Voice, want string) (Voice, bool) {
	if want == "" {
		return Voice{}, false
	}
	for _, v := range voices {
		if strings.Contains(v.Name, want) {
			return v, true
		}
	}
	return Voice{}, false
}
