package gui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"

	"codeberg.org/snonux/bilinguo/internal/session"
	"codeberg.org/snonux/bilinguo/internal/testutil"
)

func newTestApplication(t *testing.T, synth *testutil.MockSynthesizer) (*Application, *session.Session) {
	t.Helper()

	sess := session.New(session.DefaultConfig(), synth)
	a := newWithApp(test.NewTempApp(t), sess, &Config{AutoPlay: false})
	t.Cleanup(func() {
		a.audioPlayer.Clear()
		a.cancel()
	})
	return a, sess
}

func TestNew_Header(t *testing.T) {
	a, _ := newTestApplication(t, &testutil.MockSynthesizer{})

	if !strings.HasPrefix(a.window.Title(), "Bilinguo v") {
		t.Errorf("window title = %q", a.window.Title())
	}
	if a.statusLabel.Text != session.MsgNotLoaded {
		t.Errorf("status = %q, want %q", a.statusLabel.Text, session.MsgNotLoaded)
	}
	if !a.exportButton.Disabled() {
		t.Error("export should be disabled before a glossary is loaded")
	}
}

func TestLoadFile(t *testing.T) {
	a, _ := newTestApplication(t, &testutil.MockSynthesizer{})

	a.loadFile(testutil.CreateSampleGlossary(t))

	if a.statusLabel.Text != "✓ 已載入 Loaded 4 術語 terms" {
		t.Errorf("status = %q", a.statusLabel.Text)
	}
	if len(a.labels) != 4 {
		t.Errorf("list shows %d labels, want 4", len(a.labels))
	}
	if a.exportButton.Disabled() {
		t.Error("export should be enabled after a load")
	}
}

func TestLoadFile_FailureKeepsList(t *testing.T) {
	a, _ := newTestApplication(t, &testutil.MockSynthesizer{})
	a.loadFile(testutil.CreateSampleGlossary(t))

	a.loadFile(filepath.Join(t.TempDir(), "missing.csv"))

	testutil.AssertContains(t, a.statusLabel.Text, "載入失敗 Load failed")
	if len(a.labels) != 4 {
		t.Errorf("failed load should keep the list, got %d labels", len(a.labels))
	}
}

func TestFilter(t *testing.T) {
	a, _ := newTestApplication(t, &testutil.MockSynthesizer{})
	a.loadFile(testutil.CreateSampleGlossary(t))

	a.onFilterChanged("CAT")
	if len(a.labels) != 1 || !strings.Contains(a.labels[0], "貓") {
		t.Errorf("labels = %v", a.labels)
	}

	a.onFilterChanged("")
	if len(a.labels) != 4 {
		t.Errorf("empty filter should show all labels, got %d", len(a.labels))
	}
}

func TestShowView(t *testing.T) {
	synth := &testutil.MockSynthesizer{}
	a, sess := newTestApplication(t, synth)
	a.loadFile(testutil.CreateSampleGlossary(t))

	a.request++
	view := sess.Search(context.Background(), "貓")
	a.showView(a.request, view)

	if a.resultA.Text != "cat" || a.resultB.Text != "貓" {
		t.Errorf("results = %q / %q, want cat / 貓", a.resultA.Text, a.resultB.Text)
	}
	if a.audioPlayer.artifact == nil {
		t.Fatal("audio player should hold the artifact")
	}
	if a.audioPlayer.playButton.Disabled() {
		t.Error("play button should be enabled")
	}
	testutil.AssertFileExists(t, a.audioPlayer.audioFile)
	testutil.AssertFileContent(t, a.audioPlayer.audioFile, testutil.MockAudio())

	// Clearing removes the temp file
	file := a.audioPlayer.audioFile
	a.clearSearch()
	testutil.AssertFileNotExists(t, file)
	if a.resultA.Text != "" || a.resultB.Text != "" {
		t.Error("results should be cleared")
	}
}

func TestShowView_Stale(t *testing.T) {
	a, sess := newTestApplication(t, &testutil.MockSynthesizer{})
	a.loadFile(testutil.CreateSampleGlossary(t))

	a.request++
	stale := a.request
	a.request++

	a.showView(stale, sess.Search(context.Background(), "dog"))
	if a.resultA.Text != "" {
		t.Errorf("stale view was rendered: %q", a.resultA.Text)
	}
}

func TestShowView_NoAudio(t *testing.T) {
	synth := &testutil.MockSynthesizer{Err: errors.New("quota exceeded")}
	a, sess := newTestApplication(t, synth)
	a.loadFile(testutil.CreateSampleGlossary(t))

	a.request++
	a.showView(a.request, sess.Search(context.Background(), "dog"))

	if a.resultB.Text != "狗" {
		t.Errorf("resultB = %q, want 狗", a.resultB.Text)
	}
	if !a.audioPlayer.playButton.Disabled() {
		t.Error("play button should stay disabled without audio")
	}
	testutil.AssertContains(t, a.audioPlayer.statusLabel.Text, "No audio")
}
