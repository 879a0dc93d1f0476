package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/snonux/bilinguo/internal/audio"
	"codeberg.org/snonux/bilinguo/internal/glossary"
	"codeberg.org/snonux/bilinguo/internal/lang"
)

// Messages shown to the user, in Chinese and English like the rest of the UI
const (
	MsgEnterTerm  = "請輸入術語 Please enter a term"
	MsgNotFound   = "查無此詞 Not found"
	MsgNotLoaded  = "尚未載入 No glossary loaded"
	loadedFormat  = "✓ 已載入 Loaded %d 術語 terms"
	failedFormat  = "✗ 載入失敗 Load failed: %v"
	developerLine = "開發者 Developer: %s"
)

// Config is fixed when the session is created
type Config struct {
	Title         string
	Developer     string
	Pair          lang.Pair
	SpeechTimeout time.Duration
}

// DefaultConfig returns the defaults of a fresh installation
func DefaultConfig() Config {
	return Config{
		Title:         "Bilinguo",
		Developer:     "Anonymous",
		Pair:          lang.DefaultPair(),
		SpeechTimeout: 30 * time.Second,
	}
}

// Header is the static text at the top of every front-end
type Header struct {
	Title       string `json:"title"`
	Developer   string `json:"developer"`
	Languages   string `json:"languages"`
	LabelA      string `json:"labelA"`
	LabelB      string `json:"labelB"`
	SearchLabel string `json:"searchLabel"`
}

// Status is the outcome of loading a glossary table
type Status struct {
	Message string
	Terms   int
	Labels  []string
}

// View is what the result area shows after a search or a click
type View struct {
	ResultA string
	ResultB string
	Lookup  glossary.Result // zero for clicks
	Speech  audio.Speech
}

// Session is one user's glossary state. It is safe for concurrent use;
// loading swaps the whole index so readers never see a partial table.
type Session struct {
	config  Config
	speaker *audio.Speaker

	mu     sync.RWMutex
	index  *glossary.Index
	source string
}

// New creates a session. synth may be nil, in which case every action
// returns without audio.
func New(config Config, synth audio.Synthesizer) *Session {
	if config.Title == "" {
		config.Title = DefaultConfig().Title
	}
	if config.Developer == "" {
		config.Developer = DefaultConfig().Developer
	}
	if config.Pair == (lang.Pair{}) {
		config.Pair = lang.DefaultPair()
	}

	return &Session{
		config:  config,
		speaker: audio.NewSpeaker(synth, config.Pair, config.SpeechTimeout),
		index:   glossary.NewIndex(),
	}
}

// Config returns the session configuration
func (s *Session) Config() Config {
	return s.config
}

// Header returns the title block
func (s *Session) Header() Header {
	pair := s.config.Pair
	return Header{
		Title:       s.config.Title,
		Developer:   fmt.Sprintf(developerLine, s.config.Developer),
		Languages:   pair.String(),
		LabelA:      pair.Name(lang.SideA),
		LabelB:      pair.Name(lang.SideB),
		SearchLabel: fmt.Sprintf("輸入術語 Enter Term (%s or %s)", pair.Name(lang.SideA), pair.Name(lang.SideB)),
	}
}

// Load reads a glossary file and replaces the current table
func (s *Session) Load(path string) (Status, error) {
	rows, err := glossary.ReadFile(path)
	if err != nil {
		return failed(err), err
	}
	return s.install(rows, path), nil
}

// LoadReader reads an uploaded glossary. name selects the format by its
// extension.
func (s *Session) LoadReader(r io.Reader, name string) (Status, error) {
	rows, err := glossary.Read(r, glossary.FormatFromName(name))
	if err != nil {
		var loadErr *glossary.LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = name
		}
		return failed(err), err
	}
	return s.install(rows, name), nil
}

func (s *Session) install(rows []glossary.Row, source string) Status {
	index := glossary.NewIndex()
	index.Build(rows)

	s.mu.Lock()
	s.index = index
	s.source = source
	s.mu.Unlock()

	return Status{
		Message: fmt.Sprintf(loadedFormat, index.Len()),
		Terms:   index.Len(),
		Labels:  index.Labels(),
	}
}

func failed(err error) Status {
	return Status{Message: fmt.Sprintf(failedFormat, err)}
}

// Source returns the base name of the loaded table, or "" before a load
func (s *Session) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.source == "" {
		return ""
	}
	return filepath.Base(s.source)
}

// Loaded reports whether a table with at least one entry is loaded
func (s *Session) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.EntryCount() > 0
}

// Search looks up query on both sides and speaks the translation.
//
// The result fields always show the language-A term on the left: a
// language-B match is swapped into place. On a miss the query stays on the
// left and the right field says "Not found".
func (s *Session) Search(ctx context.Context, query string) View {
	s.mu.RLock()
	result := s.index.Lookup(query)
	s.mu.RUnlock()

	view := View{Lookup: result}

	switch result.Outcome {
	case glossary.EmptyQuery:
		view.ResultA = MsgEnterTerm
		return view
	case glossary.NotFound:
		view.ResultA = result.Query
		view.ResultB = MsgNotFound
		return view
	}

	source := lang.SideA
	if result.Direction == glossary.AToB {
		view.ResultA = result.Query
		view.ResultB = result.Translation
	} else {
		source = lang.SideB
		view.ResultA = result.Translation
		view.ResultB = result.Query
	}

	view.Speech = s.speaker.Speak(ctx, result.Translation, source)
	return view
}

// Click shows both terms of a list label and speaks the language-B term.
// A label that does not parse gives an empty view.
func (s *Session) Click(ctx context.Context, label string) View {
	termA, termB := glossary.SelectFromList(label)
	if termA == "" && termB == "" {
		return View{}
	}

	return View{
		ResultA: termA,
		ResultB: termB,
		Speech:  s.speaker.SpeakIn(ctx, termB, lang.SideB),
	}
}

// Filter returns the list labels matching query
func (s *Session) Filter(query string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Filter(query)
}

// Labels returns every list label
func (s *Session) Labels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Labels()
}

// Entries returns the loaded term pairs in table order
func (s *Session) Entries() []glossary.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Entries()
}

// Speaker returns the speech request builder of the session
func (s *Session) Speaker() *audio.Speaker {
	return s.speaker
}
