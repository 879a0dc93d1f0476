package lang

import "fmt"

// Side identifies one of the two configured languages
type Side int

const (
	SideA Side = iota
	SideB
)

// Other returns the opposite side
func (s Side) Other() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// Pair is the validated language configuration of a glossary session
type Pair struct {
	A string
	B string
}

// NewPair validates both codes and returns the pair
func NewPair(a, b string) (Pair, error) {
	if a == b {
		return Pair{}, ErrSameLanguage
	}
	if !IsSupported(a) {
		return Pair{}, &UnsupportedLanguageError{Code: a}
	}
	if !IsSupported(b) {
		return Pair{}, &UnsupportedLanguageError{Code: b}
	}
	return Pair{A: a, B: b}, nil
}

// DefaultPair returns the English / Traditional Chinese pair
func DefaultPair() Pair {
	return Pair{A: "en", B: "zh-TW"}
}

// Code returns the language code configured for side
func (p Pair) Code(side Side) string {
	if side == SideA {
		return p.A
	}
	return p.B
}

// Name returns the display name configured for side
func (p Pair) Name(side Side) string {
	return Name(p.Code(side))
}

func (p Pair) String() string {
	return fmt.Sprintf("%s ↔ %s", p.Name(SideA), p.Name(SideB))
}
