package backend

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/nikhilbhutani/ttshub/internal/config"
)

// GTTSAdapter wraps gtts-cli, the free Google Translate TTS frontend.
// It honors only the language field; rate and volume are not supported
// by the service and are ignored.
type GTTSAdapter struct {
	bin string
}

func NewGTTSAdapter(cfg config.GTTSConfig) *GTTSAdapter {
	bin := cfg.BinPath
	if bin == "" {
		bin = "gtts-cli"
	}
	return &GTTSAdapter{bin: bin}
}

func (a *GTTSAdapter) ID() ID          { return CloudBasic }
func (a *GTTSAdapter) FileExt() string { return "mp3" }

func (a *GTTSAdapter) Probe(ctx context.Context) error {
	if _, err := exec.LookPath(a.bin); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", a.bin, err)
	}
	return nil
}

// ListVoices returns an empty catalog: the service exposes languages,
// not named voices.
func (a *GTTSAdapter) ListVoices(ctx context.Context) ([]Voice, error) {
	return []Voice{}, nil
}

// gttsArgs places the text after a "--" terminator so text starting
// with a dash is never parsed as an option.
func gttsArgs(req Request, outPath string) []string {
	return []string{
		"-l", req.Language,
		"-o", outPath,
		"--", req.Text,
	}
}

func (a *GTTSAdapter) Synthesize(ctx context.Context, req Request, outPath string) error {
	cmd := exec.CommandContext(ctx, a.bin, gttsArgs(req, outPath)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w (stderr: %s)", a.bin, err, stderr.String())
	}
	return nil
}
