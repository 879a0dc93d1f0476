package audio

import (
	"fmt"

	"github.com/google/uuid"
)

// Format is an audio container format
type Format string

const (
	FormatMP3 Format = "mp3"
	FormatWAV Format = "wav"
)

// ParseFormat validates a format name from configuration
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMP3, FormatWAV:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported audio format: %s (use mp3 or wav)", s)
	}
}

// MimeType returns the content type used when serving the format
func (f Format) MimeType() string {
	if f == FormatWAV {
		return "audio/wav"
	}
	return "audio/mpeg"
}

// Extension returns the file extension including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// Artifact is the audio produced by one synthesis request. It is returned
// by value and never shared between requests.
type Artifact struct {
	ID       string // fresh for every request
	Text     string
	Language string // language code the text was spoken in
	Format   Format
	Data     []byte
}

// NewArtifact wraps synthesized bytes with a fresh identifier
func NewArtifact(text, language string, format Format, data []byte) *Artifact {
	return &Artifact{
		ID:       uuid.NewString(),
		Text:     text,
		Language: language,
		Format:   format,
		Data:     data,
	}
}

// FileName returns a file name unique to this artifact
func (a *Artifact) FileName() string {
	return a.ID + a.Format.Extension()
}
