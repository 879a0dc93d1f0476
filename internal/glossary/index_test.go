package glossary

import (
	"reflect"
	"testing"
)

func buildIndex(rows ...Row) *Index {
	ix := NewIndex()
	ix.Build(rows)
	return ix
}

func TestBuild(t *testing.T) {
	ix := NewIndex()

	n := ix.Build([]Row{
		{"  dog ", " 狗 "},
		{"Cat", "貓"},
	})
	if n != 2 {
		t.Fatalf("Build() = %d, want 2", n)
	}

	want := []Entry{{TermA: "dog", TermB: "狗"}, {TermA: "Cat", TermB: "貓"}}
	if got := ix.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}

	// Rebuilding discards the previous table
	n = ix.Build([]Row{{"sun", "太陽"}})
	if n != 1 || ix.Len() != 1 {
		t.Errorf("rebuild: n=%d Len=%d, want 1/1", n, ix.Len())
	}
	if r := ix.Lookup("dog"); r.Outcome != NotFound {
		t.Errorf("old entry still present after rebuild: %+v", r)
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	ix := NewIndex()
	if n := ix.Build(nil); n != 0 {
		t.Errorf("Build(nil) = %d, want 0", n)
	}
	if len(ix.Labels()) != 0 {
		t.Error("expected no labels")
	}
}

func TestBuild_MissingColumns(t *testing.T) {
	ix := buildIndex(Row{"lonely"}, Row{"", "空"}, Row{})

	want := []Entry{
		{TermA: "lonely", TermB: Placeholder},
		{TermA: Placeholder, TermB: "空"},
		{TermA: Placeholder, TermB: Placeholder},
	}
	if got := ix.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestLookup(t *testing.T) {
	ix := buildIndex(
		Row{"dog", "狗"},
		Row{"Hello", "嗨"},
		Row{"ice cream", "冰淇淋"},
	)

	tests := []struct {
		name      string
		query     string
		outcome   Outcome
		want      string
		direction Direction
	}{
		{"A side exact", "dog", Found, "狗", AToB},
		{"A side upper case", "HELLO", Found, "嗨", AToB},
		{"A side mixed case", "hElLo", Found, "嗨", AToB},
		{"A side padded", "  ice cream  ", Found, "冰淇淋", AToB},
		{"B side exact", "嗨", Found, "Hello", BToA},
		{"B side padded", " 狗\t", Found, "dog", BToA},
		{"empty", "", EmptyQuery, "", AToB},
		{"whitespace", "   ", EmptyQuery, "", AToB},
		{"miss", "zzz-not-present", NotFound, "", AToB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ix.Lookup(tt.query)
			if r.Outcome != tt.outcome {
				t.Fatalf("Lookup(%q).Outcome = %v, want %v", tt.query, r.Outcome, tt.outcome)
			}
			if r.Outcome != Found {
				if r.Hit() {
					t.Error("Hit() should be false")
				}
				return
			}
			if r.Translation != tt.want {
				t.Errorf("Translation = %q, want %q", r.Translation, tt.want)
			}
			if r.Direction != tt.direction {
				t.Errorf("Direction = %v, want %v", r.Direction, tt.direction)
			}
		})
	}
}

func TestLookup_LastRowWins(t *testing.T) {
	ix := buildIndex(Row{"cat", "貓"}, Row{"cat", "猫"})

	r := ix.Lookup("cat")
	if r.Translation != "猫" {
		t.Errorf("Lookup(cat) = %q, want 猫", r.Translation)
	}

	// Both B terms still map back to cat
	if r := ix.Lookup("貓"); r.Translation != "cat" || r.Direction != BToA {
		t.Errorf("Lookup(貓) = %+v", r)
	}

	if ix.Len() != 1 {
		t.Errorf("Len() = %d, want 1 distinct A term", ix.Len())
	}
	if len(ix.Entries()) != 2 || ix.EntryCount() != 2 {
		t.Errorf("entries should keep both rows for display")
	}
}

func TestLookup_DuplicateBOverwrites(t *testing.T) {
	ix := buildIndex(Row{"hi", "嗨"}, Row{"hey", "嗨"})

	if r := ix.Lookup("嗨"); r.Translation != "hey" {
		t.Errorf("Lookup(嗨) = %q, want hey", r.Translation)
	}
}

func TestLookup_CaseAsymmetry(t *testing.T) {
	ix := buildIndex(Row{"Hello", "Bonjour"})

	if r := ix.Lookup("HELLO"); r.Outcome != Found || r.Translation != "Bonjour" {
		t.Errorf("A side should match case-insensitively: %+v", r)
	}
	if r := ix.Lookup("Bonjour"); r.Outcome != Found || r.Direction != BToA {
		t.Errorf("B side exact case should match: %+v", r)
	}
	if r := ix.Lookup("bonjour"); r.Outcome != NotFound {
		t.Errorf("B side is case-sensitive, got %+v", r)
	}
}

func TestLookup_ForwardFirst(t *testing.T) {
	// "gift" is a B term of the first row and an A term of the second
	ix := buildIndex(Row{"Gift", "Geschenk"}, Row{"present", "gift"})

	r := ix.Lookup("gift")
	if r.Direction != AToB || r.Translation != "Geschenk" {
		t.Errorf("forward map must win, got %+v", r)
	}
}

func TestSelectFromList(t *testing.T) {
	tests := []struct {
		label string
		a, b  string
	}{
		{"dog ↔ 狗", "dog", "狗"},
		{"dog  ↔  狗", "dog", "狗"},
		{Entry{TermA: "ice cream", TermB: "冰淇淋"}.Label(), "ice cream", "冰淇淋"},
		{"malformed-no-separator", "", ""},
		{"a ↔ b ↔ c", "", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			a, b := SelectFromList(tt.label)
			if a != tt.a || b != tt.b {
				t.Errorf("SelectFromList(%q) = (%q, %q), want (%q, %q)", tt.label, a, b, tt.a, tt.b)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	ix := buildIndex(
		Row{"Dog", "狗"},
		Row{"hotdog", "熱狗"},
		Row{"cat", "貓"},
	)

	if got := ix.Filter(""); len(got) != 3 {
		t.Errorf("empty filter should return all labels, got %v", got)
	}

	got := ix.Filter("DOG")
	want := []string{"Dog  ↔  狗", "hotdog  ↔  熱狗"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter(DOG) = %v, want %v", got, want)
	}

	if got := ix.Filter("貓"); len(got) != 1 {
		t.Errorf("Filter(貓) = %v", got)
	}

	if got := ix.Filter("zebra"); len(got) != 0 {
		t.Errorf("Filter(zebra) = %v, want none", got)
	}
}

func TestLabelsRoundTrip(t *testing.T) {
	ix := buildIndex(Row{"dog", "狗"}, Row{"cat", "貓"})

	for _, label := range ix.Labels() {
		a, b := SelectFromList(label)
		if r := ix.Lookup(a); r.Translation != b {
			t.Errorf("label %q does not round trip: %+v", label, r)
		}
	}
}
