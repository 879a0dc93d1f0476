package anki

import (
	"context"
	"fmt"
	"io"

	"codeberg.org/snonux/bilinguo/internal/audio"
	"codeberg.org/snonux/bilinguo/internal/glossary"
	"codeberg.org/snonux/bilinguo/internal/lang"
	"github.com/schollz/progressbar/v3"
)

// Summary reports what an export wrote
type Summary struct {
	Cards     int
	WithAudio int
}

// Exporter turns glossary entries into a deck, speaking every language-B
// term on the way
type Exporter struct {
	DeckName string
	Speaker  *audio.Speaker // nil exports without audio
	Progress io.Writer      // nil disables the progress bar
}

// Export writes entries to outputPath. A failed synthesis leaves the audio
// field of that card empty and does not stop the export.
func (e *Exporter) Export(ctx context.Context, entries []glossary.Entry, pair lang.Pair, outputPath string) (Summary, error) {
	if len(entries) == 0 {
		return Summary{}, fmt.Errorf("nothing to export: the glossary is empty")
	}

	deckName := e.DeckName
	if deckName == "" {
		deckName = "Bilinguo " + pair.String()
	}
	deck := NewDeck(deckName, pair)

	var bar *progressbar.ProgressBar
	if e.Progress != nil && e.Speaker != nil {
		bar = progressbar.NewOptions(len(entries),
			progressbar.OptionSetWriter(e.Progress),
			progressbar.OptionShowBytes(false),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription("Synthesizing"),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(e.Progress)
			}),
		)
	}

	var summary Summary
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		card := Card{TermA: entry.TermA, TermB: entry.TermB}
		if e.Speaker != nil {
			speech := e.Speaker.SpeakIn(ctx, entry.TermB, lang.SideB)
			if speech.Available() {
				card.Audio = speech.Artifact
				summary.WithAudio++
			}
		}
		deck.AddCard(card)
		summary.Cards++

		if bar != nil {
			bar.Add(1)
		}
	}

	if err := deck.Write(outputPath); err != nil {
		return summary, err
	}
	return summary, nil
}
