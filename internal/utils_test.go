package internal

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"dog", "dog"},
		{"ice cream", "ice_cream"},
		{"狗", "狗"},
		{"ไก่", "ไก_"}, // combining vowel mark is not a letter
		{"a/b\\c", "a_b_c"},
		{"  spaced  ", "spaced"},
		{"", "_"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.input); got != tt.expected {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGenerateCardID(t *testing.T) {
	id := GenerateCardID("dog", "狗")

	parts := strings.Split(id, "_")
	if len(parts) != 2 {
		t.Fatalf("unexpected ID format: %s", id)
	}
	if len(parts[1]) != 8 {
		t.Errorf("hash part should be 8 chars, got %q", parts[1])
	}

	other := GenerateCardID("dog", "犬")
	if strings.Split(other, "_")[1] == parts[1] {
		t.Error("different pairs should hash differently")
	}
}
