package backend

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path"

	"github.com/nikhilbhutani/ttshub/internal/config"
)

// CoquiAdapter runs the Coqui TTS CLI for local neural synthesis. When a
// speaker reference clip is configured the model clones that voice;
// otherwise the model's built-in speaker is used. Rate and volume are
// properties of the model, not runtime flags, and are ignored.
type CoquiAdapter struct {
	bin        string
	modelName  string
	speakerWav string
}

func NewCoquiAdapter(cfg config.CoquiConfig) *CoquiAdapter {
	bin := cfg.BinPath
	if bin == "" {
		bin = "tts"
	}
	modelName := cfg.ModelName
	if modelName == "" {
		modelName = "tts_models/en/ljspeech/tacotron2-DDC"
	}
	return &CoquiAdapter{
		bin:        bin,
		modelName:  modelName,
		speakerWav: cfg.SpeakerWav,
	}
}

func (a *CoquiAdapter) ID() ID          { return NeuralCloning }
func (a *CoquiAdapter) FileExt() string { return "wav" }

func (a *CoquiAdapter) Probe(ctx context.Context) error {
	if _, err := exec.LookPath(a.bin); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", a.bin, err)
	}
	return nil
}

// ListVoices reports the configured model as the single selectable voice.
func (a *CoquiAdapter) ListVoices(ctx context.Context) ([]Voice, error) {
	return []Voice{
		{Backend: NeuralCloning, Name: path.Base(a.modelName), Language: "en"},
	}, nil
}

func (a *CoquiAdapter) Synthesize(ctx context.Context, req Request, outPath string) error {
	args := []string{
		"--text", req.Text,
		"--model_name", a.modelName,
		"--out_path", outPath,
	}
	if a.speakerWav != "" {
		args = append(args, "--speaker_wav", a.speakerWav)
	}

	cmd := exec.CommandContext(ctx, a.bin, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w (stderr: %s)", a.bin, err, stderr.String())
	}
	return nil
}
