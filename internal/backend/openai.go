package backend

import (
	"context"
	"fmt"
	"io"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nikhilbhutani/ttshub/internal/config"
)

// openaiVoices is the fixed catalog the speech API offers.
var openaiVoices = []Voice{
	{Backend: CloudPremiumA, Name: "alloy", Language: "en", Gender: "neutral"},
	{Backend: CloudPremiumA, Name: "echo", Language: "en", Gender: "neutral"},
	{Backend: CloudPremiumA, Name: "fable", Language: "en", Gender: "neutral"},
	{Backend: CloudPremiumA, Name: "onyx", Language: "en", Gender: "neutral"},
	{Backend: CloudPremiumA, Name: "nova", Language: "en", Gender: "neutral"},
	{Backend: CloudPremiumA, Name: "shimmer", Language: "en", Gender: "neutral"},
}

// OpenAIAdapter synthesizes speech through the OpenAI audio API.
type OpenAIAdapter struct {
	client *openai.Client
	apiKey string
	model  string
}

func NewOpenAIAdapter(cfg config.OpenAIConfig) *OpenAIAdapter {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = string(openai.TTSModel1)
	}
	return &OpenAIAdapter{
		client: openai.NewClientWithConfig(clientCfg),
		apiKey: cfg.APIKey,
		model:  model,
	}
}

func (a *OpenAIAdapter) ID() ID          { return CloudPremiumA }
func (a *OpenAIAdapter) FileExt() string { return "mp3" }

func (a *OpenAIAdapter) Probe(ctx context.Context) error {
	if a.apiKey == "" {
		return fmt.Errorf("OPENAI_API_KEY not set")
	}
	return nil
}

func (a *OpenAIAdapter) ListVoices(ctx context.Context) ([]Voice, error) {
	voices := make([]Voice, len(openaiVoices))
	copy(voices, openaiVoices)
	return voices, nil
}

// Synthesize maps the request rate onto the API's speed multiplier,
// where the default 150 wpm is 1.0. Volume is not supported and ignored.
func (a *OpenAIAdapter) Synthesize(ctx context.Context, req Request, outPath string) error {
	voice := string(openai.VoiceAlloy)
	if match, ok := MatchVoice(openaiVoices, req.Voice); ok {
		voice = match.Name
	}

	speed := float64(req.Rate) / float64(DefaultRate)
	if speed < 0.25 {
		speed = 0.25
	}
	if speed > 4.0 {
		speed = 4.0
	}

	resp, err := a.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(a.model),
		Input:          req.Text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          speed,
	})
	if err != nil {
		return fmt.Errorf("create speech: %w", err)
	}
	defer resp.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}
