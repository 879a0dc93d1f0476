package glossary

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestFormatFromName(t *testing.T) {
	tests := map[string]Format{
		"terms.csv":     FormatCSV,
		"terms.CSV":     FormatCSV,
		"terms.tsv":     FormatTSV,
		"terms.tab":     FormatTSV,
		"notes.txt":     FormatText,
		"no-extension":  FormatCSV,
		"archive.xlsx":  FormatCSV,
		"dir/words.TSV": FormatTSV,
	}
	for name, want := range tests {
		if got := FormatFromName(name); got != want {
			t.Errorf("FormatFromName(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestRead(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		want   []Row
	}{
		{
			name:   "csv skips header",
			input:  "English,Chinese\ndog,狗\ncat,貓\n",
			format: FormatCSV,
			want:   []Row{{"dog", "狗"}, {"cat", "貓"}},
		},
		{
			name:   "csv extra columns dropped",
			input:  "a,b,c\ndog,狗,noun\n",
			format: FormatCSV,
			want:   []Row{{"dog", "狗"}},
		},
		{
			name:   "csv ragged row",
			input:  "a,b\nlonely\n",
			format: FormatCSV,
			want:   []Row{{"lonely"}},
		},
		{
			name:   "csv quoted comma",
			input:  "a,b\n\"hello, world\",你好世界\n",
			format: FormatCSV,
			want:   []Row{{"hello, world", "你好世界"}},
		},
		{
			name:   "csv header only",
			input:  "a,b\n",
			format: FormatCSV,
			want:   []Row{},
		},
		{
			name:   "csv byte order mark",
			input:  "\xef\xbb\xbfa,b\nsun,太陽\n",
			format: FormatCSV,
			want:   []Row{{"sun", "太陽"}},
		},
		{
			name:   "tsv",
			input:  "de\tfr\nHund\tchien\n",
			format: FormatTSV,
			want:   []Row{{"Hund", "chien"}},
		},
		{
			name:   "text",
			input:  "# animals\ndog = 狗\n\ncat=貓\r\nlonely\n",
			format: FormatText,
			want:   []Row{{"dog", "狗"}, {"cat", "貓"}, {"lonely"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Read() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRead_InsufficientColumns(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"single column", "only\ndog\ncat\n"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), FormatCSV)
			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected LoadError, got %v", err)
			}
			if loadErr.Kind != InsufficientColumns {
				t.Errorf("Kind = %s, want %s", loadErr.Kind, InsufficientColumns)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "animals.csv")
	if err := os.WriteFile(path, []byte("en,zh-TW\ndog,狗\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rows, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	ix := NewIndex()
	if n := ix.Build(rows); n != 1 {
		t.Fatalf("Build() = %d, want 1", n)
	}
	if r := ix.Lookup("DOG"); r.Translation != "狗" {
		t.Errorf("Lookup(DOG) = %+v", r)
	}
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(dir, "missing.csv")
		_, err := ReadFile(path)
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("expected LoadError, got %v", err)
		}
		if loadErr.Kind != Unreadable {
			t.Errorf("Kind = %s, want %s", loadErr.Kind, Unreadable)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error should wrap os.ErrNotExist: %v", err)
		}
	})

	t.Run("single column file carries path", func(t *testing.T) {
		path := filepath.Join(dir, "narrow.csv")
		if err := os.WriteFile(path, []byte("word\ndog\n"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := ReadFile(path)
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("expected LoadError, got %v", err)
		}
		if loadErr.Kind != InsufficientColumns {
			t.Errorf("Kind = %s", loadErr.Kind)
		}
		if loadErr.Path != path {
			t.Errorf("Path = %q, want %q", loadErr.Path, path)
		}
		if !strings.Contains(err.Error(), "narrow.csv") {
			t.Errorf("Error() should mention the file: %s", err)
		}
	})
}
