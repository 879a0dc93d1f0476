package audio

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/snonux/bilinguo/internal/lang"
	"google.golang.org/genai"
)

// GeminiProvider implements Synthesizer using the Gemini speech models
type GeminiProvider struct {
	client *genai.Client
	config *Config
}

// NewGeminiProvider creates a new Gemini TTS provider
func NewGeminiProvider(ctx context.Context, config *Config) (*GeminiProvider, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		config: config,
	}, nil
}

// Synthesize generates speech with Gemini. The model returns raw PCM, so
// the artifact is always WAV.
func (p *GeminiProvider) Synthesize(ctx context.Context, text, language string) (*Artifact, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)

	prompt := fmt.Sprintf("Say clearly in %s: %s", lang.Name(language), text)

	resp, err := p.client.Models.GenerateContent(ctx, p.config.GeminiModel, genai.Text(prompt), p.generateConfig(language))
	if err != nil {
		return nil, fmt.Errorf("Gemini TTS API error: %w", err)
	}

	data, err := audioFromResponse(resp)
	if err != nil {
		return nil, err
	}

	return NewArtifact(text, language, FormatWAV, data), nil
}

func (p *GeminiProvider) generateConfig(language string) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			LanguageCode: lang.Locale(language),
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: p.config.GeminiVoice,
				},
			},
		},
	}
}

// audioFromResponse extracts the first inline audio part as WAV
func audioFromResponse(resp *genai.GenerateContentResponse) ([]byte, error) {
	if resp == nil {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			data := part.InlineData.Data
			if isWAV(data) {
				return data, nil
			}
			return pcmToWAV(data, sampleRateFromMIME(part.InlineData.MIMEType)), nil
		}
	}

	return nil, fmt.Errorf("no audio data received from Gemini")
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks if the Gemini API is configured
func (p *GeminiProvider) IsAvailable() error {
	if p.config.GeminiKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}
	return nil
}
