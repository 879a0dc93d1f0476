package audio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"codeberg.org/snonux/bilinguo/internal/lang"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Synthesizer for OpenAI TTS
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(config *Config) (*OpenAIProvider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Synthesize generates speech using OpenAI TTS
func (p *OpenAIProvider) Synthesize(ctx context.Context, text, language string) (*Artifact, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)

	format := p.config.Format
	if format == "" {
		format = FormatMP3
	}

	req := openai.CreateSpeechRequest{
		Model: openai.SpeechModel(p.config.OpenAIModel),
		Input: text,
		Voice: openai.SpeechVoice(p.config.OpenAIVoice),
		Speed: p.config.OpenAISpeed,
	}

	if format == FormatWAV {
		req.ResponseFormat = openai.SpeechResponseFormatWav
	} else {
		req.ResponseFormat = openai.SpeechResponseFormatMp3
	}

	if p.supportsInstructions() {
		req.Instructions = p.instruction(language)
	}

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		if strings.Contains(err.Error(), "does not have access to model") && p.supportsInstructions() {
			return nil, fmt.Errorf("OpenAI TTS API error: %w\nNote: The %s model requires access. Try using --openai-model tts-1-hd instead", err, p.config.OpenAIModel)
		}
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data received from OpenAI")
	}

	return NewArtifact(text, language, format, data), nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the OpenAI API is configured. It does not call the
// API because that would use credits.
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}

func (p *OpenAIProvider) supportsInstructions() bool {
	return p.config.OpenAIModel == "gpt-4o-mini-tts"
}

// instruction tells the model which language the input is in, so short
// words shared between languages get the right pronunciation
func (p *OpenAIProvider) instruction(language string) string {
	s := fmt.Sprintf("The text is in %s (%s). Pronounce it the way a native speaker would, slowly and clearly for language learners.",
		lang.Name(language), lang.Locale(language))
	if p.config.OpenAIInstruction != "" {
		s += " " + p.config.OpenAIInstruction
	}
	return s
}
