package audio

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// Breaker stops calling a failing provider for a cooldown period. While
// open, requests fail immediately with gobreaker.ErrOpenState.
type Breaker struct {
	synth Synthesizer
	cb    *gobreaker.CircuitBreaker
}

// NewBreaker trips after failures consecutive errors and probes the
// provider again after cooldown
func NewBreaker(synth Synthesizer, failures uint32, cooldown time.Duration) *Breaker {
	settings := gobreaker.Settings{
		Name:        synth.Name(),
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			// A cancelled request says nothing about the provider
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Printf("circuit %s: %s -> %s", name, from, to)
		},
	}

	return &Breaker{
		synth: synth,
		cb:    gobreaker.NewCircuitBreaker(settings),
	}
}

// Synthesize runs the wrapped provider through the circuit breaker
func (b *Breaker) Synthesize(ctx context.Context, text, language string) (*Artifact, error) {
	// Invalid input is rejected before it can count as a provider failure
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.synth.Synthesize(ctx, text, language)
	})
	if err != nil {
		return nil, err
	}
	return result.(*Artifact), nil
}

// Name returns the wrapped provider name
func (b *Breaker) Name() string {
	return b.synth.Name()
}

// IsAvailable reports an open circuit as unavailable
func (b *Breaker) IsAvailable() error {
	if b.cb.State() == gobreaker.StateOpen {
		return gobreaker.ErrOpenState
	}
	return b.synth.IsAvailable()
}

// State returns the current circuit state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
