package search

import "github.com/benbeisheim/capturechess-backend/internal/model"

// PieceValues is the material table used by Evaluate.
var PieceValues = map[model.PieceType]float64{
	model.Pawn:   1,
	model.Knight: 3,
	model.Bishop: 3,
	model.Rook:   4,
	model.Queen:  8,
	model.King:   100,
}

// Evaluator scores a position from perspective's point of view. Search
// negates child scores, so implementations must be zero-sum:
// Evaluate(b, White) == -Evaluate(b, Black).
type Evaluator interface {
	Evaluate(b *model.BoardState, perspective model.Color) float64
}

type EvaluatorFunc func(b *model.BoardState, perspective model.Color) float64

func (f EvaluatorFunc) Evaluate(b *model.BoardState, perspective model.Color) float64 {
	return f(b, perspective)
}

// Material sums piece values, positive for perspective's pieces and negative
// for the opponent's.
func Material(b *model.BoardState, perspective model.Color) float64 {
	var total float64
	b.Squares(func(sq model.Square, p model.Piece) {
		value := PieceValues[p.Type()]
		if b.ColorAt(sq) == perspective {
			total += value
		} else {
			total -= value
		}
	})
	return total
}
