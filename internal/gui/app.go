package gui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/bilinguo/internal"
	"codeberg.org/snonux/bilinguo/internal/anki"
	"codeberg.org/snonux/bilinguo/internal/session"
)

// glossaryExtensions are offered by the open dialog
var glossaryExtensions = []string{".csv", ".tsv", ".txt"}

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	openButton   *ttwidget.Button
	exportButton *ttwidget.Button
	searchButton *ttwidget.Button
	statusLabel  *widget.Label
	filterEntry  *widget.Entry
	termList     *widget.List
	searchEntry  *SearchEntry
	resultA      *widget.Entry
	resultB      *widget.Entry
	audioPlayer  *AudioPlayer

	// State management
	session *session.Session
	config  *Config
	labels  []string // labels currently shown in the term list
	status  string   // message of the last load
	request int      // sequence number of the latest search or click

	// Background processing
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Config holds GUI application configuration
type Config struct {
	AutoPlay bool   // play the translation as soon as it arrives
	Glossary string // table loaded at startup, optional
	DeckName string // default deck name of the Anki export
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{AutoPlay: true}
}

// New creates a new GUI application for sess
func New(sess *session.Session, config *Config) *Application {
	return newWithApp(app.NewWithID("org.codeberg.snonux.bilinguo"), sess, config)
}

func newWithApp(fyneApp fyne.App, sess *session.Session, config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())

	a := &Application{
		app:     fyneApp,
		session: sess,
		config:  config,
		ctx:     ctx,
		cancel:  cancel,
		status:  session.MsgNotLoaded,
	}

	a.setupUI()

	if config.Glossary != "" {
		a.loadFile(config.Glossary)
	}

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	header := a.session.Header()

	a.window = a.app.NewWindow(fmt.Sprintf("%s v%s", header.Title, internal.Version))
	a.window.Resize(fyne.NewSize(820, 640))

	// Header section
	titleLabel := widget.NewLabelWithStyle(header.Title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	developerLabel := widget.NewLabelWithStyle(header.Developer, fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	languagesLabel := widget.NewLabelWithStyle(header.Languages, fyne.TextAlignCenter, fyne.TextStyle{})

	// Toolbar (tooltips are set after the tooltip layer exists)
	a.openButton = ttwidget.NewButtonWithIcon("", theme.FolderOpenIcon(), a.onOpen)
	a.exportButton = ttwidget.NewButtonWithIcon("", theme.UploadIcon(), a.onExportToAnki)
	a.exportButton.Disable()
	a.statusLabel = widget.NewLabel(session.MsgNotLoaded)

	toolbar := container.NewHBox(
		a.openButton,
		a.exportButton,
		widget.NewSeparator(),
		a.statusLabel,
	)

	// Term list with filter
	a.filterEntry = widget.NewEntry()
	a.filterEntry.SetPlaceHolder("篩選 Filter...")
	a.filterEntry.OnChanged = a.onFilterChanged

	a.termList = widget.NewList(
		func() int {
			return len(a.labels)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id < len(a.labels) {
				item.(*widget.Label).SetText(a.labels[id])
			}
		},
	)
	a.termList.OnSelected = a.onSelect

	listSection := container.NewBorder(a.filterEntry, nil, nil, nil, a.termList)

	// Search and results
	a.searchEntry = NewSearchEntry()
	a.searchEntry.SetPlaceHolder(header.SearchLabel)
	a.searchEntry.OnSubmitted = func(string) {
		a.onSearch()
	}
	a.searchEntry.SetOnEscape(a.clearSearch)

	a.searchButton = ttwidget.NewButtonWithIcon("", theme.SearchIcon(), a.onSearch)

	a.resultA = widget.NewEntry()
	a.resultA.Disable()
	a.resultB = widget.NewEntry()
	a.resultB.Disable()

	resultGrid := container.New(layout.NewFormLayout(),
		widget.NewLabel(header.LabelA), a.resultA,
		widget.NewLabel(header.LabelB), a.resultB,
	)

	a.audioPlayer = NewAudioPlayer()

	searchSection := container.NewVBox(
		widget.NewLabel(header.SearchLabel),
		container.NewBorder(nil, nil, nil, a.searchButton, a.searchEntry),
		widget.NewSeparator(),
		resultGrid,
		a.audioPlayer,
	)

	body := container.NewHSplit(listSection, searchSection)
	body.SetOffset(0.4)

	content := container.NewBorder(
		container.NewVBox(
			titleLabel,
			developerLabel,
			languagesLabel,
			widget.NewSeparator(),
			toolbar,
		),
		nil, nil, nil,
		body,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))

	a.openButton.SetToolTip("Open glossary (Ctrl+O)")
	a.exportButton.SetToolTip("Export to Anki (Ctrl+E)")
	a.searchButton.SetToolTip("Search (Enter)")

	a.window.SetOnClosed(func() {
		a.cancel()
		a.audioPlayer.Clear()
		a.wg.Wait()
	})

	a.setupKeyboardShortcuts()
}

func (a *Application) setupKeyboardShortcuts() {
	canvas := a.window.Canvas()
	canvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		a.onOpen()
	})
	canvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyE, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		if !a.exportButton.Disabled() {
			a.onExportToAnki()
		}
	})
	canvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyF, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		canvas.Focus(a.filterEntry)
	})
	canvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyL, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		canvas.Focus(a.searchEntry)
	})
	canvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyP, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		a.audioPlayer.Play()
	})
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.Canvas().Focus(a.searchEntry)
	a.window.ShowAndRun()
}

// onOpen shows the glossary file dialog
func (a *Application) onOpen() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		status, _ := a.session.LoadReader(reader, reader.URI().Name())
		a.applyStatus(status)
	}, a.window)
	fd.SetFilter(storage.NewExtensionFileFilter(glossaryExtensions))
	fd.Show()
}

// loadFile loads a glossary from a local path
func (a *Application) loadFile(path string) {
	status, _ := a.session.Load(path)
	a.applyStatus(status)
}

// applyStatus shows a load outcome. A failed load keeps the previous
// list, as the session keeps the previous table.
func (a *Application) applyStatus(status session.Status) {
	a.status = status.Message
	a.statusLabel.SetText(status.Message)
	if status.Labels == nil {
		return
	}

	a.filterEntry.SetText("")
	a.setLabels(status.Labels)
	a.clearResults()

	if a.session.Loaded() {
		a.exportButton.Enable()
	} else {
		a.exportButton.Disable()
	}
}

func (a *Application) setLabels(labels []string) {
	a.labels = labels
	a.termList.UnselectAll()
	a.termList.Refresh()
}

func (a *Application) onFilterChanged(query string) {
	a.setLabels(a.session.Filter(query))
}

// onSelect shows the terms of a clicked list row and speaks the
// language-B term
func (a *Application) onSelect(id widget.ListItemID) {
	if id < 0 || id >= len(a.labels) {
		return
	}
	label := a.labels[id]

	a.request++
	request := a.request
	a.statusLabel.SetText("朗讀中 Speaking...")

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		view := a.session.Click(a.ctx, label)
		fyne.Do(func() {
			a.showView(request, view)
		})
	}()
}

// onSearch looks the search text up in the background
func (a *Application) onSearch() {
	query := a.searchEntry.Text

	a.request++
	request := a.request
	if strings.TrimSpace(query) != "" {
		a.statusLabel.SetText("朗讀中 Speaking...")
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		view := a.session.Search(a.ctx, query)
		fyne.Do(func() {
			a.showView(request, view)
		})
	}()

	a.window.Canvas().Unfocus()
}

// showView renders a search or click outcome. Outcomes of superseded
// requests are dropped.
func (a *Application) showView(request int, view session.View) {
	if request != a.request {
		return
	}

	a.resultA.SetText(view.ResultA)
	a.resultB.SetText(view.ResultB)
	a.audioPlayer.SetSpeech(view.Speech)
	a.statusLabel.SetText(a.status)

	if view.Speech.Available() && a.config.AutoPlay {
		a.audioPlayer.Play()
	}
}

func (a *Application) clearSearch() {
	a.searchEntry.SetText("")
	a.clearResults()
}

func (a *Application) clearResults() {
	a.request++
	a.resultA.SetText("")
	a.resultB.SetText("")
	a.audioPlayer.Clear()
}

// onExportToAnki asks for a deck name and a target file and writes the
// loaded glossary as an Anki package
func (a *Application) onExportToAnki() {
	entries := a.session.Entries()
	if len(entries) == 0 {
		dialog.ShowInformation("No Terms", "Load a glossary first!", a.window)
		return
	}

	deckNameEntry := widget.NewEntry()
	deckNameEntry.SetText(a.config.DeckName)
	deckNameEntry.SetPlaceHolder("Bilinguo " + a.session.Config().Pair.String())

	form := dialog.NewForm("Export to Anki", "Choose file...", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Deck name", deckNameEntry)},
		func(ok bool) {
			if ok {
				a.chooseExportFile(strings.TrimSpace(deckNameEntry.Text))
			}
		}, a.window)
	form.Show()
}

func (a *Application) chooseExportFile(deckName string) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}
		// The deck is written by path, so only the chosen location is kept
		path := writer.URI().Path()
		writer.Close()

		a.export(deckName, path)
	}, a.window)

	name := deckName
	if name == "" {
		name = "bilinguo"
	}
	fd.SetFileName(internal.SanitizeFilename(name) + ".apkg")
	fd.Show()
}

func (a *Application) export(deckName, path string) {
	exporter := &anki.Exporter{
		DeckName: deckName,
		Speaker:  a.session.Speaker(),
	}
	entries := a.session.Entries()
	pair := a.session.Config().Pair

	a.exportButton.Disable()
	a.statusLabel.SetText(fmt.Sprintf("匯出中 Exporting %d terms...", len(entries)))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		summary, err := exporter.Export(a.ctx, entries, pair, path)
		fyne.Do(func() {
			a.exportButton.Enable()
			a.statusLabel.SetText(a.status)
			if err != nil {
				dialog.ShowError(fmt.Errorf("export failed: %w", err), a.window)
				return
			}
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Exported %d cards (%d with audio) to\n%s", summary.Cards, summary.WithAudio, path),
				a.window)
		})
	}()
}
