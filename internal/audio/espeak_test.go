package audio

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"codeberg.org/snonux/bilinguo/internal/lang"
)

func TestESpeakVoice_AllLanguages(t *testing.T) {
	for _, code := range lang.Supported() {
		if _, ok := ESpeakVoice(code); !ok {
			t.Errorf("no espeak-ng voice for supported language %s", code)
		}
	}

	if _, ok := ESpeakVoice("bg"); ok {
		t.Error("unexpected voice for unsupported language")
	}
}

func TestESpeakArgs(t *testing.T) {
	p := &ESpeakProvider{path: "espeak-ng", speed: 140, pitch: 40}

	got := p.args("cmn")
	want := []string{"-v", "cmn", "-s", "140", "-p", "40", "--stdout", "--stdin"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("args() = %v, want %v", got, want)
	}
}

// fakeESpeak installs a script that records its arguments and stdin
func fakeESpeak(t *testing.T) (path, dir string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs a POSIX shell")
	}

	dir = t.TempDir()
	path = filepath.Join(dir, "espeak-ng")
	script := "#!/bin/sh\n" +
		"printf '%s\\n' \"$@\" > \"" + filepath.Join(dir, "args") + "\"\n" +
		"cat > \"" + filepath.Join(dir, "stdin") + "\"\n" +
		"printf 'RIFF'\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path, dir
}

func TestESpeakSynthesize_LeadingDash(t *testing.T) {
	path, dir := fakeESpeak(t)

	config := DefaultProviderConfig()
	config.ESpeakPath = path
	p, err := NewESpeakProvider(config)
	if err != nil {
		t.Fatalf("NewESpeakProvider() error = %v", err)
	}

	term := "-w" + filepath.Join(dir, "written.wav")
	if _, err := p.Synthesize(context.Background(), term, "en"); err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	args, err := os.ReadFile(filepath.Join(dir, "args"))
	if err != nil {
		t.Fatal(err)
	}
	for _, arg := range strings.Split(strings.TrimSpace(string(args)), "\n") {
		if arg == term {
			t.Errorf("term passed as argument: %q", args)
		}
	}

	stdin, err := os.ReadFile(filepath.Join(dir, "stdin"))
	if err != nil {
		t.Fatal(err)
	}
	if string(stdin) != term {
		t.Errorf("stdin = %q, want %q", stdin, term)
	}
	if _, err := os.Stat(filepath.Join(dir, "written.wav")); err == nil {
		t.Error("term was interpreted as an option")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{150, 150}, // normal speed
		{0, 150},   // unset uses default
		{50, 80},   // below minimum
		{500, 450}, // above maximum
		{200, 200},
	}

	for _, tt := range tests {
		if got := clamp(tt.input, 80, 450, 150); got != tt.expected {
			t.Errorf("clamp(%d) = %d, want %d", tt.input, got, tt.expected)
		}
	}
}

func TestNewESpeakProvider_Missing(t *testing.T) {
	config := DefaultProviderConfig()
	config.ESpeakPath = "espeak-ng-does-not-exist"

	if _, err := NewESpeakProvider(config); err == nil {
		t.Error("expected an error for a missing binary")
	}
}

func TestESpeakSynthesize(t *testing.T) {
	p, err := NewESpeakProvider(DefaultProviderConfig())
	if err != nil {
		t.Skip("espeak-ng not installed, skipping test")
	}

	artifact, err := p.Synthesize(context.Background(), "hello", "en")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if artifact.Format != FormatWAV {
		t.Errorf("Format = %s, want wav", artifact.Format)
	}
	if !isWAV(artifact.Data) {
		t.Error("espeak-ng output is not a WAV file")
	}

	if _, err := p.Synthesize(context.Background(), "hello", "xx"); err == nil {
		t.Error("expected error for unknown language")
	}
	if _, err := p.Synthesize(context.Background(), "", "en"); err == nil {
		t.Error("expected error for empty text")
	}
}
