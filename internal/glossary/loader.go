package glossary

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is a supported glossary file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatText Format = "txt" // "termA = termB" per line
)

// FormatFromName picks the format from a file name extension.
// Unknown extensions are treated as CSV.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tsv", ".tab":
		return FormatTSV
	case ".txt":
		return FormatText
	default:
		return FormatCSV
	}
}

// ErrorKind classifies a LoadError
type ErrorKind int

const (
	Unreadable ErrorKind = iota
	InsufficientColumns
)

func (k ErrorKind) String() string {
	switch k {
	case Unreadable:
		return "unreadable file"
	case InsufficientColumns:
		return "insufficient columns"
	default:
		return "unknown"
	}
}

// LoadError reports why a glossary table could not be loaded
type LoadError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ReadFile reads the rows of a glossary file
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Kind: Unreadable, Path: path, Err: err}
	}
	defer f.Close()

	rows, err := Read(f, FormatFromName(path))
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}
	return rows, nil
}

// Read parses glossary rows from r.
//
// For CSV and TSV the first record is a header and is skipped; only the
// first two columns are kept. Rows may be ragged.
func Read(r io.Reader, format Format) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Kind: Unreadable, Err: err}
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	if format == FormatText {
		return readText(data), nil
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if format == FormatTSV {
		reader.Comma = '\t'
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &LoadError{Kind: Unreadable, Err: err}
	}
	if len(records) == 0 {
		return nil, &LoadError{Kind: InsufficientColumns, Err: errors.New("table is empty")}
	}

	header := records[0]
	if len(header) < 2 {
		return nil, &LoadError{
			Kind: InsufficientColumns,
			Err:  fmt.Errorf("need 2 columns, found %d", len(header)),
		}
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) > 2 {
			record = record[:2]
		}
		rows = append(rows, Row(record))
	}
	return rows, nil
}

// readText parses the "termA = termB" line format. A line without '='
// becomes a single-column row.
func readText(data []byte) []Row {
	var rows []Row
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		row := make(Row, len(parts))
		for i, p := range parts {
			row[i] = strings.TrimSpace(p)
		}
		rows = append(rows, row)
	}
	return rows
}
