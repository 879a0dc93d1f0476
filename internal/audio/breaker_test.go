package audio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func TestBreaker_TripsAfterFailures(t *testing.T) {
	mock := &mockProvider{name: "flaky", synthErr: errors.New("503")}
	b := NewBreaker(mock, 2, time.Hour)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := b.Synthesize(ctx, "dog", "en"); err == nil {
			t.Fatal("expected provider error")
		}
	}

	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %s, want open", b.State())
	}

	_, err := b.Synthesize(ctx, "dog", "en")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
	if mock.calls != 2 {
		t.Errorf("provider called %d times, want 2", mock.calls)
	}
	if err := b.IsAvailable(); err == nil {
		t.Error("open breaker should be unavailable")
	}
}

func TestBreaker_Success(t *testing.T) {
	mock := &mockProvider{name: "ok"}
	b := NewBreaker(mock, 1, time.Minute)

	artifact, err := b.Synthesize(context.Background(), "貓", "zh-TW")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if artifact.Text != "貓" {
		t.Errorf("Text = %s", artifact.Text)
	}
	if b.Name() != "ok" {
		t.Errorf("Name() = %s", b.Name())
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %s", b.State())
	}
}

func TestBreaker_IgnoresInvalidInputAndCancellation(t *testing.T) {
	mock := &mockProvider{name: "mock", synthErr: context.Canceled}
	b := NewBreaker(mock, 1, time.Hour)

	if _, err := b.Synthesize(context.Background(), "   ", "en"); err == nil {
		t.Error("expected validation error")
	}
	if mock.calls != 0 {
		t.Error("invalid text must not reach the provider")
	}

	b.Synthesize(context.Background(), "dog", "en")
	if b.State() != gobreaker.StateClosed {
		t.Errorf("cancellation tripped the breaker: %s", b.State())
	}
}
