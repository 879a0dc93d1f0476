package testutil

import (
	"context"
	"fmt"
	"sync"

	"codeberg.org/snonux/bilinguo/internal/audio"
)

// MockSynthesizer implements audio.Synthesizer for tests. It records every
// request and returns fake audio unless an error is configured for the
// text or for all requests.
type MockSynthesizer struct {
	mu sync.Mutex

	Errors   map[string]error // per text
	Err      error            // for every request
	Calls    []string
	NotReady error // returned by IsAvailable
}

// Synthesize records the request and returns fake MP3 bytes
func (m *MockSynthesizer) Synthesize(ctx context.Context, text, language string) (*audio.Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, fmt.Sprintf("%s:%s", language, text))

	if m.Err != nil {
		return nil, m.Err
	}
	if err, ok := m.Errors[text]; ok {
		return nil, err
	}

	return audio.NewArtifact(text, language, audio.FormatMP3, MockAudio()), nil
}

// Name returns the provider name
func (m *MockSynthesizer) Name() string {
	return "mock"
}

// IsAvailable returns NotReady
func (m *MockSynthesizer) IsAvailable() error {
	return m.NotReady
}

// CallCount returns the number of synthesis requests
func (m *MockSynthesizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the last "language:text" request, or ""
func (m *MockSynthesizer) LastCall() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return ""
	}
	return m.Calls[len(m.Calls)-1]
}

// MockAudio returns a few bytes with an MP3 frame header
func MockAudio() []byte {
	return []byte{0xFF, 0xFB, 0x90, 0x00}
}
