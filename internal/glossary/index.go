package glossary

import (
	"strings"
)

// Separator splits a list label into its two terms
const Separator = "↔"

// labelSeparator is how labels are rendered for the term list
const labelSeparator = "  " + Separator + "  "

// Placeholder stands in for a missing or empty cell
const Placeholder = "nan"

// Row is one record of the source table, split into columns
type Row []string

// Entry is a single term pair from one row of the source table
type Entry struct {
	TermA string
	TermB string
}

// Label renders the entry the way the term list displays it
func (e Entry) Label() string {
	return e.TermA + labelSeparator + e.TermB
}

// Direction tells which configured language a query matched
type Direction int

const (
	AToB Direction = iota // query matched a language-A term
	BToA                  // query matched a language-B term
)

func (d Direction) String() string {
	if d == AToB {
		return "A_TO_B"
	}
	return "B_TO_A"
}

// Outcome classifies a lookup
type Outcome int

const (
	Found Outcome = iota
	EmptyQuery
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case EmptyQuery:
		return "empty query"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Result is the answer to a lookup
type Result struct {
	Outcome     Outcome
	Query       string // trimmed query
	Translation string
	Direction   Direction
}

// Hit reports whether the lookup found a translation
func (r Result) Hit() bool {
	return r.Outcome == Found
}

// Index is the bidirectional term mapping built from one loaded table
type Index struct {
	forward  map[string]string // lower(termA) -> termB
	backward map[string]string // termB -> termA
	entries  []Entry
}

// NewIndex creates an empty index
func NewIndex() *Index {
	return &Index{
		forward:  make(map[string]string),
		backward: make(map[string]string),
	}
}

// Build replaces the index contents with rows and returns the number of
// entries built. Later rows overwrite earlier ones on duplicate keys.
func (ix *Index) Build(rows []Row) int {
	ix.forward = make(map[string]string, len(rows))
	ix.backward = make(map[string]string, len(rows))
	ix.entries = make([]Entry, 0, len(rows))

	for _, row := range rows {
		entry := Entry{
			TermA: cell(row, 0),
			TermB: cell(row, 1),
		}
		ix.forward[strings.ToLower(entry.TermA)] = entry.TermB
		ix.backward[entry.TermB] = entry.TermA
		ix.entries = append(ix.entries, entry)
	}

	return len(ix.entries)
}

func cell(row Row, i int) string {
	if i >= len(row) || row[i] == "" {
		return Placeholder
	}
	return strings.TrimSpace(row[i])
}

// Lookup resolves a query against both sides of the glossary.
//
// The language-A side is matched case-insensitively and the language-B side
// case-sensitively. The asymmetry looks accidental but is kept for
// compatibility with existing glossaries.
func (ix *Index) Lookup(query string) Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{Outcome: EmptyQuery}
	}

	if termB, ok := ix.forward[strings.ToLower(query)]; ok {
		return Result{Outcome: Found, Query: query, Translation: termB, Direction: AToB}
	}
	if termA, ok := ix.backward[query]; ok {
		return Result{Outcome: Found, Query: query, Translation: termA, Direction: BToA}
	}

	return Result{Outcome: NotFound, Query: query}
}

// SelectFromList splits a rendered list label back into its two terms.
// A label without exactly one separator yields two empty strings.
func SelectFromList(label string) (termA, termB string) {
	parts := strings.Split(label, Separator)
	if len(parts) != 2 {
		return "", ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

// Filter returns the labels containing query, ignoring case.
// An empty query returns every label.
func (ix *Index) Filter(query string) []string {
	if query == "" {
		return ix.Labels()
	}

	query = strings.ToLower(query)
	var labels []string
	for _, e := range ix.entries {
		label := e.Label()
		if strings.Contains(strings.ToLower(label), query) {
			labels = append(labels, label)
		}
	}
	return labels
}

// Labels returns the display labels in source row order
func (ix *Index) Labels() []string {
	labels := make([]string, len(ix.entries))
	for i, e := range ix.entries {
		labels[i] = e.Label()
	}
	return labels
}

// Entries returns a copy of the entries in source row order
func (ix *Index) Entries() []Entry {
	entries := make([]Entry, len(ix.entries))
	copy(entries, ix.entries)
	return entries
}

// EntryCount returns the number of rows in the index
func (ix *Index) EntryCount() int {
	return len(ix.entries)
}

// Len returns the number of distinct language-A terms
func (ix *Index) Len() int {
	return len(ix.forward)
}
