package model

import (
	"fmt"
	"strings"
)

// Square addresses a cell of the board. Row 0 is rank 8 and Col 0 is file a.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

func (s Square) Offset(d Direction) Square {
	return Square{Row: s.Row + d.Row, Col: s.Col + d.Col}
}

// String renders the square in coordinate notation, e.g. "e2".
func (s Square) String() string {
	if !s.InBounds() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return fmt.Sprintf("%c%d", s.Col+'a', 8-s.Row)
}

func (s Square) getFileNotation() string {
	return fmt.Sprintf("%c", s.Col+'a')
}

func (s Square) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Square) UnmarshalText(text []byte) error {
	parsed, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSquare converts a two character coordinate such as "E2" or "e2".
func ParseSquare(coord string) (Square, error) {
	trimmed := strings.TrimSpace(coord)
	if len(trimmed) != 2 {
		return Square{}, &ConversionError{Input: coord}
	}
	sq, ok := squareFromBytes(trimmed[0], trimmed[1])
	if !ok {
		return Square{}, &ConversionError{Input: coord}
	}
	return sq, nil
}

func squareFromBytes(file, rank byte) (Square, bool) {
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Square{}, false
	}
	return Square{Row: int('8' - rank), Col: int(file - 'a')}, true
}

// Move is an ordered source/destination pair.
type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

func (m Move) String() string {
	return m.From.String() + m.To.String()
}

func (m Move) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Move) UnmarshalText(text []byte) error {
	parsed, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMove converts a four character move such as "e2e4", ignoring case and
// surrounding whitespace.
func ParseMove(s string) (Move, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) != 4 {
		return Move{}, &ConversionError{Input: s}
	}
	from, ok := squareFromBytes(trimmed[0], trimmed[1])
	if !ok {
		return Move{}, &ConversionError{Input: s}
	}
	to, ok := squareFromBytes(trimmed[2], trimmed[3])
	if !ok {
		return Move{}, &ConversionError{Input: s}
	}
	return Move{From: from, To: to}, nil
}

type Direction struct {
	Row int
	Col int
}

// Direction tables, in the order candidates are generated.
var (
	knightDirs = []Direction{{Row: 2, Col: 1}, {Row: 2, Col: -1}, {Row: -2, Col: 1}, {Row: -2, Col: -1}, {Row: 1, Col: 2}, {Row: 1, Col: -2}, {Row: -1, Col: 2}, {Row: -1, Col: -2}}
	bishopDirs = []Direction{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
	rookDirs   = []Direction{{Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: -1}}
	queenDirs  = append(append([]Direction{}, bishopDirs...), rookDirs...)
	kingDirs   = queenDirs
)
