package model

import "fmt"

type Reason uint8

const (
	ReasonFreeSquare Reason = iota
	ReasonCapture
	ReasonOwnColor
	ReasonTwoSquares
	ReasonNotHomeRank
	ReasonForwardBlocked
	ReasonEmptyDiagonal
)

func (r Reason) describe(t PieceType) string {
	switch r {
	case ReasonFreeSquare:
		switch t {
		case Pawn:
			return "pawn advances to free space"
		case Knight:
			return "knight jumps to free space"
		}
		return fmt.Sprintf("%s slides to free space", t)
	case ReasonCapture:
		if t == Pawn {
			return "pawn captures diagonally"
		}
		return fmt.Sprintf("%s captures adversary", t)
	case ReasonOwnColor:
		return fmt.Sprintf("%s cannot capture own color", t)
	case ReasonTwoSquares:
		return "pawn advances two squares from its home rank"
	case ReasonNotHomeRank:
		return "pawn cannot advance two squares because it is not on its home rank"
	case ReasonForwardBlocked:
		return "pawn is blocked from advancing"
	case ReasonEmptyDiagonal:
		return "pawn cannot capture empty cell"
	}
	return "unknown reason"
}

// Rationale records why a candidate destination was accepted or rejected.
type Rationale struct {
	Move   Move
	Piece  Piece
	Reason Reason
	Legal  bool
}

func (r Rationale) String() string {
	return r.Reason.describe(r.Piece.Type())
}

// ActionSet is the result of generating moves for one square: the legal moves
// in generation order and a rationale for every candidate that was examined.
type ActionSet struct {
	From  Square
	Piece Piece
	Color Color
	moves []Move
	notes []Rationale
}

func (a *ActionSet) Moves() []Move {
	return a.moves
}

func (a *ActionSet) Rationales() []Rationale {
	return a.notes
}

func (a *ActionSet) Contains(m Move) bool {
	for _, legal := range a.moves {
		if legal == m {
			return true
		}
	}
	return false
}

// Rationale returns the explanation recorded for m, if m was examined.
func (a *ActionSet) Rationale(m Move) (string, bool) {
	for _, note := range a.notes {
		if note.Move == m {
			return note.String(), true
		}
	}
	return "", false
}

func (a *ActionSet) reset(from Square, p Piece, c Color) {
	a.From, a.Piece, a.Color = from, p, c
	a.moves = a.moves[:0]
	a.notes = a.notes[:0]
}

func (a *ActionSet) accept(to Square, r Reason) {
	m := Move{From: a.From, To: to}
	a.moves = append(a.moves, m)
	a.notes = append(a.notes, Rationale{Move: m, Piece: a.Piece, Reason: r, Legal: true})
}

func (a *ActionSet) reject(to Square, r Reason) {
	a.notes = append(a.notes, Rationale{Move: Move{From: a.From, To: to}, Piece: a.Piece, Reason: r})
}

// Actions generates the action set for the piece on sq. An empty square
// yields an empty set with Color NoColor.
func (b *BoardState) Actions(sq Square) *ActionSet {
	set := &ActionSet{}
	b.generateInto(sq, set)
	return set
}

func (b *BoardState) generateInto(sq Square, set *ActionSet) {
	color := b.ColorAt(sq)
	piece := b.PieceAt(sq)
	set.reset(sq, piece, color)

	switch piece.Type() {
	case Pawn:
		b.getPawnActions(set)
	case Knight:
		b.getJumpActions(set, knightDirs)
	case Bishop:
		b.getSlideActions(set, bishopDirs)
	case Rook:
		b.getSlideActions(set, rookDirs)
	case Queen:
		b.getSlideActions(set, queenDirs)
	case King:
		b.getJumpActions(set, kingDirs)
	}
}

// pawnHomeRow is the row from which a pawn of color c may advance twice.
func pawnHomeRow(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

func pawnForward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func (b *BoardState) getPawnActions(set *ActionSet) {
	from, color := set.From, set.Color
	fwd := pawnForward(color)

	// Eligibility for the double step depends only on the current row. The
	// pawn may pass over the square in front and may land on an enemy.
	one := Square{Row: from.Row + fwd, Col: from.Col}
	two := Square{Row: from.Row + 2*fwd, Col: from.Col}
	if two.InBounds() {
		switch {
		case from.Row != pawnHomeRow(color):
			set.reject(two, ReasonNotHomeRank)
		case b.ColorAt(two) == color:
			set.reject(two, ReasonOwnColor)
		default:
			set.accept(two, ReasonTwoSquares)
		}
	}

	if one.InBounds() {
		if b.ColorAt(one) == NoColor {
			set.accept(one, ReasonFreeSquare)
		} else {
			set.reject(one, ReasonForwardBlocked)
		}
	}

	for _, dc := range []int{-1, 1} {
		diag := Square{Row: from.Row + fwd, Col: from.Col + dc}
		if !diag.InBounds() {
			continue
		}
		switch b.ColorAt(diag) {
		case color:
			set.reject(diag, ReasonOwnColor)
		case NoColor:
			set.reject(diag, ReasonEmptyDiagonal)
		default:
			set.accept(diag, ReasonCapture)
		}
	}
}

// getJumpActions covers knight and king: one step along each offset.
func (b *BoardState) getJumpActions(set *ActionSet, dirs []Direction) {
	for _, dir := range dirs {
		target := set.From.Offset(dir)
		if !target.InBounds() {
			continue
		}
		switch b.ColorAt(target) {
		case set.Color:
			set.reject(target, ReasonOwnColor)
		case NoColor:
			set.accept(target, ReasonFreeSquare)
		default:
			set.accept(target, ReasonCapture)
		}
	}
}

// getSlideActions walks each ray until the edge, stopping after an enemy
// piece and before a friendly one.
func (b *BoardState) getSlideActions(set *ActionSet, dirs []Direction) {
	for _, dir := range dirs {
		target := set.From.Offset(dir)
	ray:
		for target.InBounds() {
			switch b.ColorAt(target) {
			case set.Color:
				set.reject(target, ReasonOwnColor)
				break ray
			case NoColor:
				set.accept(target, ReasonFreeSquare)
			default:
				set.accept(target, ReasonCapture)
				break ray
			}
			target = target.Offset(dir)
		}
	}
}
