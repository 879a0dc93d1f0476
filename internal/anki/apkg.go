package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"codeberg.org/snonux/bilinguo/internal"
	"codeberg.org/snonux/bilinguo/internal/audio"
	"codeberg.org/snonux/bilinguo/internal/lang"
	_ "github.com/mattn/go-sqlite3"
)

// fieldSeparator joins note fields in the notes table
const fieldSeparator = "\x1f"

// Card is one glossary entry with the optional pronunciation of TermB
type Card struct {
	TermA string
	TermB string
	Audio *audio.Artifact
}

// Deck collects cards and writes them as an .apkg file
type Deck struct {
	name    string
	pair    lang.Pair
	deckID  int64
	modelID int64
	cards   []Card
}

// NewDeck creates an empty deck. The note fields are named after the
// languages of pair.
func NewDeck(name string, pair lang.Pair) *Deck {
	now := time.Now().UnixMilli()
	return &Deck{
		name:    name,
		pair:    pair,
		deckID:  now,
		modelID: now + 1,
	}
}

// AddCard adds a card to the deck
func (d *Deck) AddCard(card Card) {
	d.cards = append(d.cards, card)
}

// Len returns the number of cards
func (d *Deck) Len() int {
	return len(d.cards)
}

// media is one file stored in the package under a numeric name
type media struct {
	number int
	name   string
	data   []byte
}

// Write creates the .apkg file at outputPath
func (d *Deck) Write(outputPath string) error {
	tempDir, err := os.MkdirTemp("", "bilinguo_apkg_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	files, audioFields := d.collectMedia()

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := d.createDatabase(dbPath, audioFields); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	collection, err := os.ReadFile(dbPath)
	if err != nil {
		return fmt.Errorf("failed to read database: %w", err)
	}

	if err := writeZip(outputPath, collection, files); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}
	return nil
}

// collectMedia numbers the audio of every card and returns the media
// files plus the [sound:] field for each card index
func (d *Deck) collectMedia() ([]media, map[int]string) {
	var files []media
	fields := make(map[int]string)

	for i, card := range d.cards {
		if card.Audio == nil || len(card.Audio.Data) == 0 {
			continue
		}
		id := card.Audio.ID
		if len(id) > 8 {
			id = id[:8]
		}
		name := fmt.Sprintf("bilinguo_%s_%s%s",
			internal.SanitizeFilename(card.TermB), id, card.Audio.Format.Extension())
		files = append(files, media{number: len(files), name: name, data: card.Audio.Data})
		fields[i] = fmt.Sprintf("[sound:%s]", name)
	}

	return files, fields
}

func (d *Deck) createDatabase(dbPath string, audioFields map[int]string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, query := range schema {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}

	if err := d.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}

	if err := d.insertNotesAndCards(db, audioFields); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}

	return nil
}

var schema = []string{
	`CREATE TABLE col (
		id integer PRIMARY KEY,
		crt integer NOT NULL,
		mod integer NOT NULL,
		scm integer NOT NULL,
		ver integer NOT NULL,
		dty integer NOT NULL,
		usn integer NOT NULL,
		ls integer NOT NULL,
		conf text NOT NULL,
		models text NOT NULL,
		decks text NOT NULL,
		dconf text NOT NULL,
		tags text NOT NULL
	)`,
	`CREATE TABLE notes (
		id integer PRIMARY KEY,
		guid text NOT NULL,
		mid integer NOT NULL,
		mod integer NOT NULL,
		usn integer NOT NULL,
		tags text NOT NULL,
		flds text NOT NULL,
		sfld text NOT NULL,
		csum integer NOT NULL,
		flags integer NOT NULL,
		data text NOT NULL
	)`,
	`CREATE TABLE cards (
		id integer PRIMARY KEY,
		nid integer NOT NULL,
		did integer NOT NULL,
		ord integer NOT NULL,
		mod integer NOT NULL,
		usn integer NOT NULL,
		type integer NOT NULL,
		queue integer NOT NULL,
		due integer NOT NULL,
		ivl integer NOT NULL,
		factor integer NOT NULL,
		reps integer NOT NULL,
		lapses integer NOT NULL,
		left integer NOT NULL,
		odue integer NOT NULL,
		odid integer NOT NULL,
		flags integer NOT NULL,
		data text NOT NULL
	)`,
	`CREATE TABLE revlog (
		id integer PRIMARY KEY,
		cid integer NOT NULL,
		usn integer NOT NULL,
		ease integer NOT NULL,
		ivl integer NOT NULL,
		lastIvl integer NOT NULL,
		factor integer NOT NULL,
		time integer NOT NULL,
		type integer NOT NULL
	)`,
	`CREATE TABLE graves (
		usn integer NOT NULL,
		oid integer NOT NULL,
		type integer NOT NULL
	)`,
	`CREATE INDEX ix_notes_csum ON notes (csum)`,
	`CREATE INDEX ix_notes_usn ON notes (usn)`,
	`CREATE INDEX ix_cards_usn ON cards (usn)`,
	`CREATE INDEX ix_cards_nid ON cards (nid)`,
	`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
	`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
	`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
}

func deckJSON(id int64, name, desc string, now int64) map[string]interface{} {
	return map[string]interface{}{
		"id":               id,
		"name":             name,
		"mod":              now,
		"desc":             desc,
		"collapsed":        false,
		"dyn":              0,
		"conf":             1,
		"usn":              0,
		"newToday":         []int{0, 0},
		"revToday":         []int{0, 0},
		"lrnToday":         []int{0, 0},
		"timeToday":        []int{0, 0},
		"browserCollapsed": false,
		"extendNew":        10,
		"extendRev":        50,
	}
}

func (d *Deck) insertCollection(db *sql.DB) error {
	now := time.Now().Unix()

	decks := map[string]interface{}{
		"1": deckJSON(1, "Default", "", now),
		strconv.FormatInt(d.deckID, 10): deckJSON(d.deckID, d.name,
			fmt.Sprintf("%s glossary exported by Bilinguo", d.pair), now),
	}

	models := map[string]interface{}{
		strconv.FormatInt(d.modelID, 10): d.noteType(now),
	}

	conf := map[string]interface{}{
		"nextPos":       1,
		"estTimes":      true,
		"activeDecks":   []int64{1},
		"sortType":      "noteFld",
		"sortBackwards": false,
		"addToCur":      true,
		"curDeck":       1,
		"newSpread":     0,
		"dueCounts":     true,
		"collapseTime":  1200,
		"timeLim":       0,
		"schedVer":      1,
		"curModel":      strconv.FormatInt(d.modelID, 10),
		"dayLearnFirst": false,
	}

	dconf := map[string]interface{}{
		"1": map[string]interface{}{
			"id":   1,
			"name": "Default",
			"dyn":  0,
			"new": map[string]interface{}{
				"delays":        []int{1, 10},
				"ints":          []int{1, 4, 7},
				"initialFactor": 2500,
				"perDay":        20,
				"order":         1,
				"bury":          true,
				"separate":      true,
			},
			"lapse": map[string]interface{}{
				"delays":      []int{10},
				"mult":        0,
				"minInt":      1,
				"leechFails":  8,
				"leechAction": 0,
			},
			"rev": map[string]interface{}{
				"perDay":   100,
				"ease4":    1.3,
				"fuzz":     0.05,
				"maxIvl":   36500,
				"ivlFct":   1,
				"bury":     true,
				"minSpace": 1,
			},
			"timer":    0,
			"maxTaken": 60,
			"usn":      0,
			"mod":      now,
			"autoplay": true,
			"replayq":  true,
		},
	}

	var encoded [4][]byte
	for i, v := range []interface{}{conf, models, decks, dconf} {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		encoded[i] = data
	}

	_, err := db.Exec(`INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		1,        // id
		now,      // crt
		now*1000, // mod
		now*1000, // scm
		11,       // ver (schema version)
		0,        // dty
		0,        // usn
		0,        // ls
		string(encoded[0]),
		string(encoded[1]),
		string(encoded[2]),
		string(encoded[3]),
		"{}", // tags
	)
	return err
}

// fieldNames returns the note fields: both language names and the audio
func (d *Deck) fieldNames() []string {
	return []string{d.pair.Name(lang.SideA), d.pair.Name(lang.SideB), "Audio"}
}

func (d *Deck) noteType(now int64) map[string]interface{} {
	names := d.fieldNames()
	fields := make([]map[string]interface{}, len(names))
	for i, name := range names {
		fields[i] = map[string]interface{}{
			"name":   name,
			"ord":    i,
			"sticky": false,
			"rtl":    false,
			"font":   "Arial",
			"size":   20,
			"media":  []string{},
		}
	}

	a, b := names[0], names[1]

	return map[string]interface{}{
		"id":        d.modelID,
		"name":      fmt.Sprintf("Bilinguo %s (Basic + Reverse)", d.pair),
		"type":      0,
		"mod":       now,
		"usn":       -1,
		"sortf":     0,
		"did":       d.deckID,
		"req":       [][]interface{}{{0, "all", []int{0}}, {1, "all", []int{1}}},
		"vers":      []int{},
		"tags":      []string{},
		"latexPre":  "\\documentclass[12pt]{article}\n\\begin{document}",
		"latexPost": "\\end{document}",
		"flds":      fields,
		"tmpls": []map[string]interface{}{
			{
				"name":  fmt.Sprintf("%s → %s", a, b),
				"ord":   0,
				"qfmt":  termDiv("term-a", a),
				"afmt":  answer(termDiv("term-b", b) + "\n{{Audio}}"),
				"did":   nil,
				"bqfmt": "",
				"bafmt": "",
			},
			{
				"name":  fmt.Sprintf("%s → %s", b, a),
				"ord":   1,
				"qfmt":  termDiv("term-b", b) + "\n{{Audio}}",
				"afmt":  answer(termDiv("term-a", a)),
				"did":   nil,
				"bqfmt": "",
				"bafmt": "",
			},
		},
		"css": cardCSS,
	}
}

func termDiv(class, field string) string {
	return fmt.Sprintf(`<div class="%s">{{%s}}</div>`, class, field)
}

func answer(back string) string {
	return "{{FrontSide}}\n\n<hr id=\"answer\">\n\n" + back
}

const cardCSS = `.card {
  font-family: Arial, "Noto Sans CJK TC", sans-serif;
  font-size: 20px;
  text-align: center;
  color: #333;
  background-color: white;
}

.term-a {
  font-size: 28px;
  font-weight: bold;
  color: #2c3e50;
  margin: 20px 0;
}

.term-b {
  font-size: 32px;
  font-weight: bold;
  color: #c0392b;
  margin: 20px 0;
}

hr#answer {
  margin: 30px 0;
  border: 0;
  border-top: 1px solid #ecf0f1;
}`

func (d *Deck) insertNotesAndCards(db *sql.DB, audioFields map[int]string) error {
	now := time.Now()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, card := range d.cards {
		// Leave room for two cards per note
		noteID := now.UnixMilli() + int64(i*3)

		fields := strings.Join([]string{card.TermA, card.TermB, audioFields[i]}, fieldSeparator)
		guid := "bl_" + internal.GenerateCardID(card.TermA, card.TermB)

		_, err := tx.Exec(`INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			noteID,     // id
			guid,       // guid
			d.modelID,  // mid
			now.Unix(), // mod
			-1,         // usn
			"",         // tags
			fields,     // flds
			card.TermA, // sfld (sort field)
			0,          // csum
			0,          // flags
			"",         // data
		)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		for ord := 0; ord < 2; ord++ {
			_, err = tx.Exec(`INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				noteID+1+int64(ord), // id
				noteID,              // nid
				d.deckID,            // did
				ord,                 // ord (template)
				now.Unix(),          // mod
				-1,                  // usn
				0,                   // type (0=new)
				0,                   // queue (0=new)
				noteID+int64(ord),   // due (position for new cards)
				0, 0, 0, 0, 0, 0, 0, 0, // ivl factor reps lapses left odue odid flags
				"", // data
			)
			if err != nil {
				return fmt.Errorf("failed to insert card %d: %w", ord, err)
			}
		}
	}

	return tx.Commit()
}

// writeZip writes the collection, the media mapping and the media files
func writeZip(outputPath string, collection []byte, files []media) error {
	mapping := make(map[string]string, len(files))
	for _, m := range files {
		mapping[strconv.Itoa(m.number)] = m.name
	}
	mappingJSON, err := json.Marshal(mapping)
	if err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	archive := zip.NewWriter(out)

	entries := []struct {
		name string
		data []byte
	}{
		{"collection.anki2", collection},
		{"media", mappingJSON},
	}
	for _, m := range files {
		entries = append(entries, struct {
			name string
			data []byte
		}{strconv.Itoa(m.number), m.data})
	}

	for _, e := range entries {
		w, err := archive.Create(e.name)
		if err != nil {
			return err
		}
		if _, err := w.Write(e.data); err != nil {
			return err
		}
	}

	if err := archive.Close(); err != nil {
		return err
	}
	return out.Close()
}
