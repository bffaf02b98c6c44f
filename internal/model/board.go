package model

import "fmt"

// BoardState is the 8x8 grid plus the pieces each side has lost. The captured
// lists are for reporting only; no rule reads them.
type BoardState struct {
	board    [8][8]Piece
	captured CapturedPieces
}

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func NewBoard() *BoardState {
	b := &BoardState{}
	b.Reset()
	return b
}

// NewEmptyBoard returns a board with no pieces, for setting up positions.
func NewEmptyBoard() *BoardState {
	return &BoardState{captured: newCapturedPieces()}
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]Piece, 0),
		Black: make([]Piece, 0),
	}
}

// Reset restores the standard starting position and clears both captured lists.
func (b *BoardState) Reset() {
	b.board = [8][8]Piece{}
	for col, t := range backRank {
		b.board[0][col] = NewPiece(t, Black)
		b.board[7][col] = NewPiece(t, White)
	}
	for col := 0; col < 8; col++ {
		b.board[1][col] = BlackPawn
		b.board[6][col] = WhitePawn
	}
	b.captured = newCapturedPieces()
}

func (b *BoardState) PieceAt(sq Square) Piece {
	return b.board[sq.Row][sq.Col]
}

// Place puts p on sq, overwriting whatever was there. It is meant for
// setting up positions; moves go through ApplyMove.
func (b *BoardState) Place(sq Square, p Piece) {
	if !p.Valid() {
		panic(fmt.Errorf("%w: cannot place piece code %d", ErrCorruptState, uint8(p)))
	}
	b.board[sq.Row][sq.Col] = p
}

// ColorAt classifies the occupant of sq. An unrecognized piece code is a
// programming error and panics.
func (b *BoardState) ColorAt(sq Square) Color {
	p := b.board[sq.Row][sq.Col]
	if p == Empty {
		return NoColor
	}
	if !p.Valid() {
		panic(fmt.Errorf("%w: invalid value at %s: %d", ErrCorruptState, sq, uint8(p)))
	}
	return p.Color()
}

// Captured returns the pieces of color c that have been taken, oldest first.
func (b *BoardState) Captured(c Color) []Piece {
	switch c {
	case White:
		return b.captured.White
	case Black:
		return b.captured.Black
	}
	return nil
}

func (b *BoardState) recordCapture(p Piece) {
	switch p.Color() {
	case White:
		b.captured.White = append(b.captured.White, p)
	case Black:
		b.captured.Black = append(b.captured.Black, p)
	}
}

// CloneInto copies the grid into dst, reusing dst's captured slices. When
// withCaptured is false dst's captured lists are emptied instead of copied.
func (b *BoardState) CloneInto(dst *BoardState, withCaptured bool) *BoardState {
	dst.board = b.board
	dst.captured.White = dst.captured.White[:0]
	dst.captured.Black = dst.captured.Black[:0]
	if withCaptured {
		dst.captured.White = append(dst.captured.White, b.captured.White...)
		dst.captured.Black = append(dst.captured.Black, b.captured.Black...)
	}
	return dst
}

func (b *BoardState) Clone() *BoardState {
	return b.CloneInto(&BoardState{}, true)
}

// Squares calls fn for every occupied square in row-major order.
func (b *BoardState) Squares(fn func(sq Square, p Piece)) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b.board[row][col]; p != Empty {
				fn(Square{Row: row, Col: col}, p)
			}
		}
	}
}

// Grid returns a copy of the cells, row 0 first.
func (b *BoardState) Grid() [8][8]Piece {
	return b.board
}
