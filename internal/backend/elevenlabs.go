package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/nikhilbhutani/ttshub/internal/config"
)

// elevenVoice pairs a premade voice with the id the API addresses it by.
type elevenVoice struct {
	id    string
	voice Voice
}

var elevenVoices = []elevenVoice{
	{"21m00Tcm4TlvDq8ikWAM", Voice{Backend: CloudPremiumB, Name: "Rachel", Language: "en", Gender: "female"}},
	{"AZnzlk1XvdvUeBnXmlld", Voice{Backend: CloudPremiumB, Name: "Domi", Language: "en", Gender: "female"}},
	{"EXAVITQu4vr4xnSDxMaL", Voice{Backend: CloudPremiumB, Name: "Bella", Language: "en", Gender: "female"}},
	{"ErXwobaYiN019PkySvjV", Voice{Backend: CloudPremiumB, Name: "Antoni", Language: "en", Gender: "male"}},
	{"TxGEqnHWrfWFTfGW9XjX", Voice{Backend: CloudPremiumB, Name: "Josh", Language: "en", Gender: "male"}},
	{"pNInz6obpgDQGcFmaJgB", Voice{Backend: CloudPremiumB, Name: "Adam", Language: "en", Gender: "male"}},
}

// ElevenLabsAdapter synthesizes speech through the ElevenLabs API. The
// voice style fully determines prosody, so rate and volume are ignored.
type ElevenLabsAdapter struct {
	apiKey     string
	baseURL    string
	modelID    string
	httpClient *http.Client
}

func NewElevenLabsAdapter(cfg config.ElevenLabsConfig) *ElevenLabsAdapter {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io"
	}
	modelID := cfg.ModelID
	if modelID == "" {
		modelID = "eleven_multilingual_v2"
	}
	return &ElevenLabsAdapter{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		modelID: modelID,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (a *ElevenLabsAdapter) ID() ID          { return CloudPremiumB }
func (a *ElevenLabsAdapter) FileExt() string { return "mp3" }

func (a *ElevenLabsAdapter) Probe(ctx context.Context) error {
	if a.apiKey == "" {
		return fmt.Errorf("ELEVENLABS_API_KEY not set")
	}
	return nil
}

func (a *ElevenLabsAdapter) ListVoices(ctx context.Context) ([]Voice, error) {
	voices := make([]Voice, 0, len(elevenVoices))
	for _, v := range elevenVoices {
		voices = append(voices, v.voice)
	}
	return voices, nil
}

// resolveVoiceID maps a requested voice name onto a premade voice id,
// defaulting to the first catalog entry on no match.
func resolveVoiceID(want string) string {
	if want != "" {
		catalog := make([]Voice, 0, len(elevenVoices))
		for _, v := range elevenVoices {
			catalog = append(catalog, v.voice)
		}
		if match, ok := MatchVoice(catalog, want); ok {
			for _, v := range elevenVoices {
				if v.voice.Name == match.Name {
					return v.id
				}
			}
		}
	}
	return elevenVoices[0].id
}

func (a *ElevenLabsAdapter) Synthesize(ctx context.Context, req Request, outPath string) error {
	payload, err := json.Marshal(map[string]string{
		"text":     req.Text,
		"model_id": a.modelID,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", a.baseURL, resolveVoiceID(req.Voice))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("xi-api-key", a.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/mpeg")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tts failed (status %d): %s", resp.StatusCode, string(body))
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}
