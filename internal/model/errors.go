package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrConversion   = errors.New("conversion error")
	ErrNoPiece      = errors.New("no piece at from square")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrNotSeated    = errors.New("player is not seated in this game")
	ErrGameOver     = errors.New("game is over")
	ErrGameFull     = errors.New("game is full")
	ErrCorruptState = errors.New("corrupt board state")
)

// ConversionError reports a coordinate or move string that does not name a
// square on the board.
type ConversionError struct {
	Input string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %q to board coordinates", e.Input)
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// InvalidMoveError is returned when a well formed move is not in the action
// set of its source square. Reason carries the rationale recorded for the
// destination, or a generic one when the destination was never considered.
type InvalidMoveError struct {
	Move   Move
	Piece  Piece
	Reason string
}

func (e *InvalidMoveError) Error() string {
	if e.Piece == Empty {
		return fmt.Sprintf("invalid move %s: %s", e.Move, e.Reason)
	}
	return fmt.Sprintf("invalid move for %s %s: %s", e.Piece, e.Move, e.Reason)
}

func (e *InvalidMoveError) Is(target error) bool {
	return target == ErrInvalidMove
}
