package model

import (
	"fmt"
	"strings"
)

// ApplyMove validates m against the action set of its source square and
// executes it. The returned winner is the mover's color when the move
// captured the enemy king, NoColor otherwise. The log narrates the move and
// any capture; on an invalid move it narrates the rejection and err is an
// *InvalidMoveError.
func (b *BoardState) ApplyMove(m Move) (winner Color, log string, err error) {
	if !m.From.InBounds() || !m.To.InBounds() {
		return NoColor, "", &InvalidMoveError{Move: m, Reason: "square is off the board"}
	}
	actions := b.Actions(m.From)
	if !actions.Contains(m) {
		reason, ok := actions.Rationale(m)
		if !ok {
			reason = "piece cannot move that way"
		}
		log = fmt.Sprintf("Invalid move for %s: %s->%s // %s", actions.Piece.Glyph(), m.From, m.To, reason)
		return NoColor, log, &InvalidMoveError{Move: m, Piece: actions.Piece, Reason: reason}
	}
	reason, _ := actions.Rationale(m)

	var lines []string
	lines = append(lines, fmt.Sprintf("Moving %s: %s->%s // %s", actions.Piece.Glyph(), m.From, m.To, reason))
	victim := b.PieceAt(m.To)
	winner = b.execute(m, actions.Color)
	if victim != Empty {
		lines = append(lines, fmt.Sprintf("Captured %s", victim.Glyph()))
	}
	if winner != NoColor {
		lines = append(lines, fmt.Sprintf("%s WINS", strings.ToUpper(winner.String())))
	}
	return winner, strings.Join(lines, "\n"), nil
}

// ApplyLegal executes a move previously produced by the generator for the
// current position, skipping validation and narration. It performs the same
// capture bookkeeping as ApplyMove and returns the winner, if any.
func (b *BoardState) ApplyLegal(m Move) Color {
	return b.execute(m, b.ColorAt(m.From))
}

func (b *BoardState) execute(m Move, mover Color) Color {
	winner := NoColor
	victim := b.PieceAt(m.To)
	switch b.ColorAt(m.To) {
	case mover:
		panic(fmt.Errorf("%w: generated move %s captures own color", ErrCorruptState, m))
	case Opposite(mover):
		b.recordCapture(victim)
		if victim.Type() == King {
			winner = mover
		}
	}
	b.board[m.To.Row][m.To.Col] = b.board[m.From.Row][m.From.Col]
	b.board[m.From.Row][m.From.Col] = Empty
	return winner
}

// LegalDestinationsAt lists the squares the piece on sq may move to.
func (b *BoardState) LegalDestinationsAt(sq Square) []Square {
	actions := b.Actions(sq)
	destinations := make([]Square, 0, len(actions.moves))
	for _, m := range actions.moves {
		destinations = append(destinations, m.To)
	}
	return destinations
}

// AllLegalMoves enumerates the moves of every piece of color c, scanning
// squares in row-major order and keeping each square's generation order.
func (b *BoardState) AllLegalMoves(c Color) []Move {
	return b.AppendLegalMoves(nil, c)
}

// AppendLegalMoves is AllLegalMoves appending into dst.
func (b *BoardState) AppendLegalMoves(dst []Move, c Color) []Move {
	var set ActionSet
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := Square{Row: row, Col: col}
			if b.board[row][col] == Empty || b.ColorAt(sq) != c {
				continue
			}
			b.generateInto(sq, &set)
			dst = append(dst, set.moves...)
		}
	}
	return dst
}
