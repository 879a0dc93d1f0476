package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// espeakVoices maps language codes to espeak-ng voice names
var espeakVoices = map[string]string{
	"en":    "en-us",
	"zh-TW": "cmn",
	"zh-CN": "cmn",
	"ja":    "ja",
	"ko":    "ko",
	"de":    "de",
	"fr":    "fr-fr",
	"es":    "es",
	"th":    "th",
	"vi":    "vi",
}

// ESpeakVoice returns the espeak-ng voice for a language code
func ESpeakVoice(language string) (string, bool) {
	voice, ok := espeakVoices[language]
	return voice, ok
}

// ESpeakProvider implements Synthesizer with the local espeak-ng binary
type ESpeakProvider struct {
	path  string
	speed int
	pitch int
}

// NewESpeakProvider creates a new espeak-ng provider
func NewESpeakProvider(config *Config) (*ESpeakProvider, error) {
	p := &ESpeakProvider{
		path:  config.ESpeakPath,
		speed: clamp(config.ESpeakSpeed, 80, 450, 150),
		pitch: clamp(config.ESpeakPitch, 0, 99, 50),
	}
	if p.path == "" {
		p.path = "espeak-ng"
	}

	if err := p.IsAvailable(); err != nil {
		return nil, err
	}
	return p, nil
}

// Synthesize speaks text with espeak-ng and returns the WAV it writes to stdout
func (p *ESpeakProvider) Synthesize(ctx context.Context, text, language string) (*Artifact, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)

	voice, ok := ESpeakVoice(language)
	if !ok {
		return nil, fmt.Errorf("espeak-ng has no voice for language %s", language)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.path, p.args(voice)...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, stderr.String())
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("no audio data received from espeak-ng")
	}

	return NewArtifact(text, language, FormatWAV, stdout.Bytes()), nil
}

// args never carries the text itself; it goes in on stdin so that a
// term starting with "-" cannot be read as an option.
func (p *ESpeakProvider) args(voice string) []string {
	return []string{
		"-v", voice,
		"-s", strconv.Itoa(p.speed),
		"-p", strconv.Itoa(p.pitch),
		"--stdout",
		"--stdin",
	}
}

// Name returns the provider name
func (p *ESpeakProvider) Name() string {
	return "espeak-ng"
}

// IsAvailable checks if espeak-ng is installed
func (p *ESpeakProvider) IsAvailable() error {
	if _, err := exec.LookPath(p.path); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

// clamp bounds v to [lo, hi]; zero means "use def"
func clamp(v, lo, hi, def int) int {
	switch {
	case v == 0:
		return def
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
