package models

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIVoices are the voices accepted by the OpenAI speech endpoint
var OpenAIVoices = []string{"alloy", "ash", "ballad", "coral", "echo", "fable", "nova", "onyx", "sage", "shimmer", "verse"}

// Lister handles listing the speech models available to an API key
type Lister struct {
	apiKey string
	client *openai.Client
	out    io.Writer
}

// NewLister creates a new model lister printing to stdout
func NewLister(apiKey string) *Lister {
	return NewListerWithConfig(apiKey, "", os.Stdout)
}

// NewListerWithConfig creates a lister against baseURL (empty for the
// public API) printing to out
func NewListerWithConfig(apiKey, baseURL string, out io.Writer) *Lister {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
		out:    out,
	}
}

// SpeechModels returns the sorted IDs of the models that can speak
func (l *Lister) SpeechModels(ctx context.Context) ([]string, error) {
	if l.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .bilinguo.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var ids []string
	for _, model := range models.Models {
		if strings.Contains(model.ID, "tts") {
			ids = append(ids, model.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// ListAvailableModels prints the speech models and voices
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	ids, err := l.SpeechModels(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(l.out, "Available OpenAI Text-to-Speech Models:")
	if len(ids) == 0 {
		fmt.Fprintln(l.out, "  No TTS models found")
	}
	for _, id := range ids {
		note := ""
		if id == "gpt-4o-mini-tts" {
			note = " (supports language instructions)"
		}
		fmt.Fprintf(l.out, "  %s%s\n", id, note)
	}

	fmt.Fprintf(l.out, "\nVoices:\n  %s\n", strings.Join(OpenAIVoices, ", "))
	return nil
}
