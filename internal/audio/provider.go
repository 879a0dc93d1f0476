package audio

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"
)

var logger = log.New(os.Stderr, "[audio] ", log.LstdFlags)

// Synthesizer turns text into speech in a given language
type Synthesizer interface {
	// Synthesize speaks text in the language identified by code and
	// returns the audio as a fresh artifact
	Synthesize(ctx context.Context, text, language string) (*Artifact, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds the configuration for all speech providers
type Config struct {
	Provider string        // "openai", "gemini" or "espeak"
	Fallback string        // optional provider tried when the primary fails
	Format   Format        // requested output format, providers may ignore it
	Timeout  time.Duration // per request

	// OpenAI-specific settings
	OpenAIKey         string
	OpenAIBaseURL     string  // empty for the public API
	OpenAIModel       string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice       string  // "alloy", "ash", "coral", "echo", "fable", "nova", "onyx", "sage", "shimmer"
	OpenAISpeed       float64 // 0.25 to 4.0
	OpenAIInstruction string  // extra voice instructions for gpt-4o-mini-tts

	// Gemini-specific settings
	GeminiKey   string
	GeminiModel string
	GeminiVoice string

	// espeak-ng settings
	ESpeakPath  string
	ESpeakSpeed int // words per minute
	ESpeakPitch int // 0 to 99

	// Circuit breaker, disabled when BreakerFailures is 0
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:        "openai",
		Format:          FormatMP3,
		Timeout:         30 * time.Second,
		OpenAIModel:     "gpt-4o-mini-tts",
		OpenAIVoice:     "alloy",
		OpenAISpeed:     1.0,
		GeminiModel:     "gemini-2.5-flash-preview-tts",
		GeminiVoice:     "Kore",
		ESpeakPath:      "espeak-ng",
		ESpeakSpeed:     150,
		ESpeakPitch:     50,
		BreakerFailures: 3,
		BreakerCooldown: time.Minute,
	}
}

// NewProvider creates the provider named by name
func NewProvider(name string, config *Config) (Synthesizer, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	var (
		synth Synthesizer
		err   error
	)

	switch name {
	case "openai":
		synth, err = NewOpenAIProvider(config)
	case "gemini":
		synth, err = NewGeminiProvider(context.Background(), config)
	case "espeak", "espeak-ng":
		synth, err = NewESpeakProvider(config)
	default:
		return nil, fmt.Errorf("unknown audio provider: %s", name)
	}

	if err != nil {
		return nil, err
	}
	return synth, nil
}

// NewSynthesizer builds the configured provider chain: the primary
// provider, an optional fallback and the circuit breaker around both.
func NewSynthesizer(config *Config) (Synthesizer, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	synth, err := NewProvider(config.Provider, config)
	if err != nil {
		return nil, err
	}

	if config.Fallback != "" && config.Fallback != config.Provider {
		fallback, err := NewProvider(config.Fallback, config)
		if err != nil {
			logger.Printf("Warning: fallback provider %s disabled: %v", config.Fallback, err)
		} else {
			synth = NewProviderWithFallback(synth, fallback)
		}
	}

	if config.BreakerFailures > 0 {
		synth = NewBreaker(synth, config.BreakerFailures, config.BreakerCooldown)
	}

	return synth, nil
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Synthesizer
	fallback Synthesizer
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Synthesizer) Synthesizer {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// Synthesize tries the primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Synthesize(ctx context.Context, text, language string) (*Artifact, error) {
	artifact, err := p.primary.Synthesize(ctx, text, language)
	if err == nil {
		return artifact, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	logger.Printf("Primary provider (%s) failed: %v. Falling back to %s",
		p.primary.Name(), err, p.fallback.Name())

	return p.fallback.Synthesize(ctx, text, language)
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
