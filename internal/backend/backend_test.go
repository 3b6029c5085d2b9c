package backend

import "testing"

func TestMatchVoice(t *testing.T) {
	voices := []Voice{
		{Backend: LocalEngine, Name: "English (Great Britain)", Language: "en-gb"},
		{Backend: LocalEngine, Name: "English (America)", Language: "en-us"},
		{Backend: LocalEngine, Name: "French (France)", Language: "fr"},
	}

	tests := []struct {
		name     string
		want     string
		matched  bool
		expected string
	}{
		{"exact name", "English (America)", true, "English (America)"},
		{"substring", "French", true, "French (France)"},
		{"first of several matches", "English", true, "English (Great Britain)"},
		{"case sensitive miss", "english", false, ""},
		{"no match", "Klingon", false, ""},
		{"empty query", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := MatchVoice(voices, tt.want)
			if ok != tt.matched {
				t.Fatalf("MatchVoice(%q) matched=%v, want %v", tt.want, ok, tt.matched)
			}
			if ok && v.Name != tt.expected {
				t.Errorf("MatchVoice(%q) = %q, want %q", tt.want, v.Name, tt.expected)
			}
		})
	}
}

func vol(v float64) *float64 { return &v }

func TestRequestNormalized(t *testing.T) {
	tests := []struct {
		name       string
		in         Request
		wantRate   int
		wantVolume float64
		wantLang   string
	}{
		{"defaults", Request{}, 150, 1.0, "en"},
		{"rate below range", Request{Rate: 10, Volume: vol(0.5), Language: "fr"}, 50, 0.5, "fr"},
		{"rate above range", Request{Rate: 900, Volume: vol(0.5)}, 300, 0.5, "en"},
		{"volume above range", Request{Rate: 200, Volume: vol(3.0)}, 200, 1.0, "en"},
		{"volume below range", Request{Rate: 200, Volume: vol(-1.0)}, 200, 0, "en"},
		{"explicit zero volume is mute, not unset", Request{Rate: 150, Volume: vol(0.0)}, 150, 0, "en"},
		{"in range untouched", Request{Rate: 220, Volume: vol(0.7), Language: "de"}, 220, 0.7, "de"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalized()
			if got.Rate != tt.wantRate {
				t.Errorf("Rate = %d, want %d", got.Rate, tt.wantRate)
			}
			if got.Volume == nil {
				t.Fatal("Volume is nil after Normalized()")
			}
			if *got.Volume != tt.wantVolume {
				t.Errorf("Volume = %v, want %v", *got.Volume, tt.wantVolume)
			}
			if got.Language != tt.wantLang {
				t.Errorf("Language = %q, want %q", got.Language, tt.wantLang)
			}
		})
	}
}

func TestVolumeOrDefault(t *testing.T) {
	if got := (Request{}).VolumeOrDefault(); got != DefaultVolume {
		t.Errorf("unset volume = %v, want %v", got, DefaultVolume)
	}
	if got := (Request{Volume: vol(0.0)}).VolumeOrDefault(); got != 0 {
		t.Errorf("explicit zero volume = %v, want 0 (mute)", got)
	}
}

func TestIDKnown(t *testing.T) {
	for _, id := range KnownIDs() {
		if !id.Known() {
			t.Errorf("%q should be known", id)
		}
	}
	for _, id := range []ID{"", "nonexistent", "Local-Engine", "pyttsx3"} {
		if id.Known() {
			t.Errorf("%q should not be known", id)
		}
	}
}
