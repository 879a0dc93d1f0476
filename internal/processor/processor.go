package processor

import (
	"context"
	"fmt"
	"io"
	"os"

	"codeberg.org/snonux/bilinguo/internal/anki"
	"codeberg.org/snonux/bilinguo/internal/audio"
	"codeberg.org/snonux/bilinguo/internal/cli"
	"codeberg.org/snonux/bilinguo/internal/gui"
	"codeberg.org/snonux/bilinguo/internal/lang"
	"codeberg.org/snonux/bilinguo/internal/server"
	"codeberg.org/snonux/bilinguo/internal/session"
)

// Processor runs one front-end over a glossary session
type Processor struct {
	flags   *cli.Flags
	session *session.Session
	synth   audio.Synthesizer // nil when no provider could be set up
}

// NewProcessor validates the configuration and creates the session.
// A speech provider that cannot be set up only disables audio.
func NewProcessor(flags *cli.Flags) (*Processor, error) {
	audioConfig, err := cli.AudioConfig(flags)
	if err != nil {
		return nil, err
	}

	synth, err := audio.NewSynthesizer(audioConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: speech disabled: %v\n", err)
		synth = nil
	}

	return newProcessor(flags, synth)
}

func newProcessor(flags *cli.Flags, synth audio.Synthesizer) (*Processor, error) {
	config, err := cli.SessionConfig(flags)
	if err != nil {
		return nil, err
	}

	return &Processor{
		flags:   flags,
		session: session.New(config, synth),
		synth:   synth,
	}, nil
}

// Session returns the glossary session
func (p *Processor) Session() *session.Session {
	return p.session
}

// LoadGlossary loads the glossary table at path and prints the status
func (p *Processor) LoadGlossary(path string) error {
	status, err := p.session.Load(path)
	fmt.Println(status.Message)
	return err
}

// Lookup searches query and prints both result fields. With --audio-out
// the spoken translation is written to that file.
func (p *Processor) Lookup(ctx context.Context, query string, out io.Writer) error {
	view := p.session.Search(ctx, query)
	pair := p.session.Config().Pair

	fmt.Fprintf(out, "%s: %s\n", pair.Name(lang.SideA), view.ResultA)
	fmt.Fprintf(out, "%s: %s\n", pair.Name(lang.SideB), view.ResultB)

	if view.Speech.Err != nil {
		fmt.Fprintf(out, "Warning: %v\n", view.Speech.Err)
	}

	if p.flags.AudioOut == "" || !view.Lookup.Hit() {
		return nil
	}
	if !view.Speech.Available() {
		return fmt.Errorf("no audio to write to %s", p.flags.AudioOut)
	}

	if err := os.WriteFile(p.flags.AudioOut, view.Speech.Artifact.Data, 0644); err != nil {
		return fmt.Errorf("failed to write audio: %w", err)
	}
	fmt.Fprintf(out, "Audio saved to: %s\n", p.flags.AudioOut)
	return nil
}

// ExportAnki writes the loaded glossary to the --anki package
func (p *Processor) ExportAnki(ctx context.Context) error {
	exporter := &anki.Exporter{
		DeckName: p.flags.DeckName,
		Progress: os.Stdout,
	}
	if p.synth != nil {
		exporter.Speaker = p.session.Speaker()
	}

	fmt.Printf("\nGenerating Anki package...\n")
	summary, err := exporter.Export(ctx, p.session.Entries(), p.session.Config().Pair, p.flags.AnkiFile)
	if err != nil {
		return fmt.Errorf("failed to export Anki package: %w", err)
	}

	fmt.Printf("  Generated %d cards (%d with audio)\n", summary.Cards, summary.WithAudio)
	fmt.Printf("Anki package created: %s\n", p.flags.AnkiFile)
	return nil
}

// Serve runs the HTTP front-end until ctx is cancelled
func (p *Processor) Serve(ctx context.Context) error {
	return server.New(p.session).Run(ctx, p.flags.Serve)
}

// RunGUIMode launches the GUI application. glossary is loaded at
// startup when not empty.
func (p *Processor) RunGUIMode(glossary string) error {
	guiConfig := &gui.Config{
		AutoPlay: !p.flags.NoAutoPlay, // Invert the flag (--no-auto-play disables auto-play)
		Glossary: glossary,
		DeckName: p.flags.DeckName,
	}

	app := gui.New(p.session, guiConfig)
	app.Run()

	return nil
}
