package model

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

var fromChessPiece = map[chess.Piece]Piece{
	chess.WhitePawn:   WhitePawn,
	chess.WhiteKnight: WhiteKnight,
	chess.WhiteBishop: WhiteBishop,
	chess.WhiteRook:   WhiteRook,
	chess.WhiteQueen:  WhiteQueen,
	chess.WhiteKing:   WhiteKing,
	chess.BlackPawn:   BlackPawn,
	chess.BlackKnight: BlackKnight,
	chess.BlackBishop: BlackBishop,
	chess.BlackRook:   BlackRook,
	chess.BlackQueen:  BlackQueen,
	chess.BlackKing:   BlackKing,
}

func toChessSquare(sq Square) chess.Square {
	return chess.Square((7-sq.Row)*8 + sq.Col)
}

func fromChessSquare(sq chess.Square) Square {
	return Square{Row: 7 - int(sq.Rank()), Col: int(sq.File())}
}

func toChessPiece(p Piece) chess.Piece {
	for cp, mp := range fromChessPiece {
		if mp == p {
			return cp
		}
	}
	return chess.NoPiece
}

// FEN encodes the grid and side to move. Castling and en passant fields are
// always empty since the rules have neither.
func (b *BoardState) FEN(toMove Color) string {
	squares := make(map[chess.Square]chess.Piece)
	b.Squares(func(sq Square, p Piece) {
		squares[toChessSquare(sq)] = toChessPiece(p)
	})
	side := "w"
	if toMove == Black {
		side = "b"
	}
	return fmt.Sprintf("%s %s - - 0 1", chess.NewBoard(squares).String(), side)
}

// ParseFEN builds a board from a FEN string and reports the side to move.
// Each side must have exactly one king. Captured lists start empty.
func ParseFEN(fen string) (*BoardState, Color, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, NoColor, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	placement, _, _ := strings.Cut(strings.TrimSpace(fen), " ")
	if white, black := strings.Count(placement, "K"), strings.Count(placement, "k"); white != 1 || black != 1 {
		return nil, NoColor, fmt.Errorf("%w: %q has %d white and %d black kings, want one each", ErrConversion, fen, white, black)
	}
	pos := chess.NewGame(opt).Position()
	b := NewEmptyBoard()
	for sq, cp := range pos.Board().SquareMap() {
		p, ok := fromChessPiece[cp]
		if !ok {
			continue
		}
		b.Place(fromChessSquare(sq), p)
	}
	toMove := White
	if pos.Turn() == chess.Black {
		toMove = Black
	}
	return b, toMove, nil
}
