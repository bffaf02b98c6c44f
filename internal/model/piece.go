package model

import (
	"fmt"
	"strings"
)

type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

type Color uint8

const (
	NoColor Color = iota
	White
	Black
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	case NoColor:
		return "none"
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, ok := ParseColor(string(text))
	if !ok {
		return fmt.Errorf("unknown color %q", text)
	}
	*c = parsed
	return nil
}

func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	case "", "none":
		return NoColor, true
	}
	return NoColor, false
}

// Opposite returns the other side. NoColor maps to itself; any other value is
// a corrupt color and panics.
func Opposite(c Color) Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	case NoColor:
		return NoColor
	}
	panic(fmt.Errorf("%w: opposite of %v", ErrCorruptState, c))
}

// Piece packs a type in the low three bits and a color above them. The zero
// value is an empty square.
type Piece uint8

const Empty Piece = 0

const colorShift = 3

func NewPiece(t PieceType, c Color) Piece {
	return Piece(uint8(c)<<colorShift | uint8(t))
}

var (
	WhitePawn   = NewPiece(Pawn, White)
	WhiteKnight = NewPiece(Knight, White)
	WhiteBishop = NewPiece(Bishop, White)
	WhiteRook   = NewPiece(Rook, White)
	WhiteQueen  = NewPiece(Queen, White)
	WhiteKing   = NewPiece(King, White)
	BlackPawn   = NewPiece(Pawn, Black)
	BlackKnight = NewPiece(Knight, Black)
	BlackBishop = NewPiece(Bishop, Black)
	BlackRook   = NewPiece(Rook, Black)
	BlackQueen  = NewPiece(Queen, Black)
	BlackKing   = NewPiece(King, Black)
)

func (p Piece) Type() PieceType {
	return PieceType(p & (1<<colorShift - 1))
}

func (p Piece) Color() Color {
	return Color(p >> colorShift)
}

// Valid reports whether p is Empty or a well formed colored piece.
func (p Piece) Valid() bool {
	if p == Empty {
		return true
	}
	t, c := p.Type(), p.Color()
	return t >= Pawn && t <= King && (c == White || c == Black)
}

func (p Piece) String() string {
	if p == Empty {
		return "empty"
	}
	return p.Color().String() + " " + p.Type().String()
}

var glyphs = map[Piece]string{
	Empty:       " ",
	WhiteKing:   "♔",
	WhiteQueen:  "♕",
	WhiteRook:   "♖",
	WhiteBishop: "♗",
	WhiteKnight: "♘",
	WhitePawn:   "♙",
	BlackKing:   "♚",
	BlackQueen:  "♛",
	BlackRook:   "♜",
	BlackBishop: "♝",
	BlackKnight: "♞",
	BlackPawn:   "♟",
}

// Glyph returns the unicode chess symbol for p.
func (p Piece) Glyph() string {
	g, ok := glyphs[p]
	if !ok {
		panic(fmt.Errorf("%w: no glyph for piece code %d", ErrCorruptState, uint8(p)))
	}
	return g
}

func (p Piece) MarshalText() ([]byte, error) {
	if p == Empty {
		return []byte{}, nil
	}
	return []byte(p.String()), nil
}
