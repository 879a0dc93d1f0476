package audio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codeberg.org/snonux/bilinguo/internal/lang"
)

// ErrNoSynthesizer is reported when no speech provider is configured
var ErrNoSynthesizer = errors.New("no speech provider configured")

// SynthesisUnavailable records that audio could not be produced for a
// request. It is carried as a value next to the lookup result, never
// returned as a fatal error.
type SynthesisUnavailable struct {
	Language string
	Err      error
}

func (e *SynthesisUnavailable) Error() string {
	return fmt.Sprintf("speech unavailable for %s: %v", e.Language, e.Err)
}

func (e *SynthesisUnavailable) Unwrap() error {
	return e.Err
}

// Speech is the outcome of one speech request. Exactly one of Artifact
// and Err is set.
type Speech struct {
	Artifact *Artifact
	Err      *SynthesisUnavailable
}

// Available reports whether audio was produced
func (s Speech) Available() bool {
	return s.Artifact != nil
}

// Speaker builds speech requests for a language pair
type Speaker struct {
	synth   Synthesizer
	pair    lang.Pair
	timeout time.Duration
}

// NewSpeaker creates a speaker. A nil synth yields a speaker whose every
// request is unavailable. A zero timeout means no per-request timeout.
func NewSpeaker(synth Synthesizer, pair lang.Pair, timeout time.Duration) *Speaker {
	return &Speaker{
		synth:   synth,
		pair:    pair,
		timeout: timeout,
	}
}

// Speak speaks a translation. source is the side the query matched, so
// the translation is spoken in the other side's language.
func (s *Speaker) Speak(ctx context.Context, translation string, source lang.Side) Speech {
	return s.SpeakIn(ctx, translation, source.Other())
}

// SpeakIn speaks text in the language of side
func (s *Speaker) SpeakIn(ctx context.Context, text string, side lang.Side) Speech {
	language := s.pair.Code(side)

	if s.synth == nil {
		return unavailable(language, ErrNoSynthesizer)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	artifact, err := s.synth.Synthesize(ctx, text, language)
	if err != nil {
		logger.Printf("Warning: %s could not speak %q in %s: %v", s.synth.Name(), text, language, err)
		return unavailable(language, err)
	}
	if artifact == nil {
		return unavailable(language, errors.New("provider returned no audio"))
	}

	return Speech{Artifact: artifact}
}

// Pair returns the language pair requests are built for
func (s *Speaker) Pair() lang.Pair {
	return s.pair
}

func unavailable(language string, err error) Speech {
	return Speech{Err: &SynthesisUnavailable{Language: language, Err: err}}
}
