package backend

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/nikhilbhutani/ttshub/internal/config"
)

// EspeakAdapter drives the local espeak-ng engine via subprocess. It is
// the only backend with no network or credential prerequisites.
type EspeakAdapter struct {
	bin string
}

func NewEspeakAdapter(cfg config.EspeakConfig) *EspeakAdapter {
	bin := cfg.BinPath
	if bin == "" {
		bin = "espeak-ng"
	}
	return &EspeakAdapter{bin: bin}
}

func (a *EspeakAdapter) ID() ID          { return LocalEngine }
func (a *EspeakAdapter) FileExt() string { return "wav" }

func (a *EspeakAdapter) Probe(ctx context.Context) error {
	if _, err := exec.LookPath(a.bin); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", a.bin, err)
	}
	return nil
}

// espeakVoice keeps the selector (the language column) alongside the
// human-readable name, since -v takes the selector, not the name.
type espeakVoice struct {
	selector string
	name     string
	language string
	gender   string
}

func (a *EspeakAdapter) ListVoices(ctx context.Context) ([]Voice, error) {
	installed, err := a.installedVoices(ctx)
	if err != nil {
		return nil, err
	}
	voices := make([]Voice, 0, len(installed))
	for _, v := range installed {
		voices = append(voices, Voice{
			Backend:  LocalEngine,
			Name:     v.name,
			Language: v.language,
			Gender:   v.gender,
		})
	}
	return voices, nil
}

func (a *EspeakAdapter) installedVoices(ctx context.Context) ([]espeakVoice, error) {
	cmd := exec.CommandContext(ctx, a.bin, "--voices")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s --voices: %w (stderr: %s)", a.bin, err, stderr.String())
	}

	return parseEspeakVoices(stdout.String()), nil
}

// parseEspeakVoices reads the tabular output of `espeak-ng --voices`:
//
//	Pty Language       Age/Gender VoiceName          File
//	 5  en-gb           --/M      English (Great Britain) gmw/en
//
// The voice name may contain spaces; the file column is always last.
func parseEspeakVoices(out string) []espeakVoice {
	var voices []espeakVoice
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if i == 0 { // header row
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		gender := ""
		if parts := strings.SplitN(fields[2], "/", 2); len(parts) == 2 {
			switch parts[1] {
			case "M":
				gender = "male"
			case "F":
				gender = "female"
			}
		}
		voices = append(voices, espeakVoice{
			selector: fields[1],
			name:     strings.Join(fields[3:len(fields)-1], " "),
			language: fields[1],
			gender:   gender,
		})
	}
	return voices
}

// Synthesize pipes text into espeak-ng and writes a WAV to outPath.
// Rate maps straight to -s (words per minute); volume maps to the -a
// amplitude scale where 1.0 is the engine default of 100.
func (a *EspeakAdapter) Synthesize(ctx context.Context, req Request, outPath string) error {
	args := []string{
		"-s", strconv.Itoa(req.Rate),
		"-a", strconv.Itoa(int(req.VolumeOrDefault() * 100)),
		"-w", outPath,
	}

	if req.Voice != "" {
		installed, err := a.installedVoices(ctx)
		if err != nil {
			return err
		}
		for _, v := range installed {
			if strings.Contains(v.name, req.Voice) {
				args = append(args, "-v", v.selector)
				break
			}
		}
		// no match: proceed with the default voice
	}

	cmd := exec.CommandContext(ctx, a.bin, args...)
	cmd.Stdin = strings.NewReader(req.Text)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w (stderr: %s)", a.bin, err, stderr.String())
	}
	return nil
}
