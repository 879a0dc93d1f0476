package gui

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/bilinguo/internal/audio"
	"codeberg.org/snonux/bilinguo/internal/lang"
)

// AudioPlayer is a custom widget for playing synthesized speech
type AudioPlayer struct {
	widget.BaseWidget

	container   *fyne.Container
	playButton  *ttwidget.Button
	stopButton  *ttwidget.Button
	statusLabel *widget.Label

	artifact  *audio.Artifact
	audioFile string // temp file holding the artifact bytes
	isPlaying bool
	playCmd   *exec.Cmd
}

// NewAudioPlayer creates a new audio player widget
func NewAudioPlayer() *AudioPlayer {
	p := &AudioPlayer{}

	// Create controls with tooltips
	p.playButton = ttwidget.NewButton("", p.onPlay)
	p.playButton.Icon = theme.MediaPlayIcon()
	p.playButton.SetToolTip("Play audio (Ctrl+P)")

	p.stopButton = ttwidget.NewButton("", p.onStop)
	p.stopButton.Icon = theme.MediaStopIcon()
	p.stopButton.SetToolTip("Stop audio")

	p.statusLabel = widget.NewLabel("No audio loaded")

	// Initially disable controls
	p.playButton.Disable()
	p.stopButton.Disable()

	p.container = container.NewHBox(
		p.playButton,
		p.stopButton,
		layout.NewSpacer(),
		p.statusLabel,
	)

	p.ExtendBaseWidget(p)
	return p
}

// CreateRenderer implements fyne.Widget
func (p *AudioPlayer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.container)
}

// SetSpeech loads the outcome of a speech request. Every artifact gets
// its own temp file, so a slow player never reads bytes of a later one.
func (p *AudioPlayer) SetSpeech(speech audio.Speech) {
	if !speech.Available() {
		p.Clear()
		if speech.Err != nil {
			p.statusLabel.SetText(fmt.Sprintf("No audio: %s", lang.Name(speech.Err.Language)))
		}
		return
	}

	file, err := writeTempArtifact(speech.Artifact)
	if err != nil {
		p.Clear()
		p.statusLabel.SetText(fmt.Sprintf("Error: %v", err))
		return
	}

	p.Clear()
	p.artifact = speech.Artifact
	p.audioFile = file
	p.playButton.Enable()
	p.statusLabel.SetText(fmt.Sprintf("Audio: %s (%s)", p.artifact.Text, lang.Name(p.artifact.Language)))
}

func writeTempArtifact(artifact *audio.Artifact) (string, error) {
	f, err := os.CreateTemp("", "bilinguo-*"+artifact.Format.Extension())
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(artifact.Data); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	return f.Name(), nil
}

// Clear stops playback and removes the current temp file
func (p *AudioPlayer) Clear() {
	p.onStop()
	if p.audioFile != "" {
		os.Remove(p.audioFile)
	}
	p.artifact = nil
	p.audioFile = ""
	p.isPlaying = false
	p.playButton.Disable()
	p.stopButton.Disable()
	p.statusLabel.SetText("No audio loaded")
}

// onPlay handles play button click
func (p *AudioPlayer) onPlay() {
	if p.audioFile == "" {
		return
	}

	if p.isPlaying {
		p.onStop()
		return
	}

	if err := p.startPlayback(); err != nil {
		p.statusLabel.SetText(fmt.Sprintf("Error: %v", err))
		return
	}

	p.isPlaying = true
	p.playButton.SetIcon(theme.MediaPauseIcon())
	p.stopButton.Enable()
	p.statusLabel.SetText(fmt.Sprintf("Playing: %s", p.artifact.Text))
}

// onStop handles stop button click
func (p *AudioPlayer) onStop() {
	if p.playCmd != nil && p.playCmd.Process != nil {
		p.playCmd.Process.Kill()
	}
	p.playCmd = nil

	if !p.isPlaying {
		return
	}
	p.isPlaying = false
	p.playButton.SetIcon(theme.MediaPlayIcon())
	p.stopButton.Disable()
	p.statusLabel.SetText(fmt.Sprintf("Stopped: %s", p.artifact.Text))
}

// Play triggers audio playback
func (p *AudioPlayer) Play() {
	if !p.playButton.Disabled() {
		p.onPlay()
	}
}

// newPlayerCommand builds the player process for a file
var newPlayerCommand = playerCommand

// playerCommand picks the platform audio player for file
func playerCommand(file string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin": // macOS
		return exec.Command("afplay", file), nil
	case "linux":
		// mpg123 first since it handles MP3 files best
		if _, err := exec.LookPath("mpg123"); err == nil {
			return exec.Command("mpg123", "-q", file), nil
		} else if _, err := exec.LookPath("ffplay"); err == nil {
			return exec.Command("ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", file), nil
		} else if _, err := exec.LookPath("paplay"); err == nil {
			return exec.Command("paplay", file), nil
		} else if _, err := exec.LookPath("aplay"); err == nil {
			return exec.Command("aplay", "-q", file), nil
		}
		return nil, fmt.Errorf("no audio player found. Install mpg123, ffplay, paplay, or aplay")
	case "windows":
		return exec.Command("cmd", "/c", "start", "/min", file), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// startPlayback starts the player and waits for it in the background.
// The process is started here so onStop always has one to kill.
func (p *AudioPlayer) startPlayback() error {
	cmd, err := newPlayerCommand(p.audioFile)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start audio player: %w", err)
	}

	p.playCmd = cmd
	text := p.artifact.Text

	go func() {
		if err := cmd.Wait(); err != nil {
			return
		}
		fyne.Do(func() {
			if p.playCmd != cmd {
				return
			}
			p.playCmd = nil
			p.isPlaying = false
			p.playButton.SetIcon(theme.MediaPlayIcon())
			p.stopButton.Disable()
			p.statusLabel.SetText(fmt.Sprintf("Finished: %s", text))
		})
	}()

	return nil
}
