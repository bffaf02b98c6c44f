package model

import (
	"errors"
	"math/rand"
	"testing"
)

func sq(t *testing.T, coord string) Square {
	t.Helper()
	s, err := ParseSquare(coord)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", coord, err)
	}
	return s
}

func boardWith(t *testing.T, pieces map[string]Piece) *BoardState {
	t.Helper()
	b := NewEmptyBoard()
	for coord, p := range pieces {
		b.Place(sq(t, coord), p)
	}
	return b
}

func destinations(b *BoardState, from Square) []string {
	var out []string
	for _, to := range b.LegalDestinationsAt(from) {
		out = append(out, to.String())
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStartingPositionMoveCounts(t *testing.T) {
	b := NewBoard()
	for _, c := range []Color{White, Black} {
		if got := len(b.AllLegalMoves(c)); got != 20 {
			t.Errorf("%s: expected 20 moves, got %d", c, got)
		}
	}
	if got := len(b.AllLegalMoves(NoColor)); got != 0 {
		t.Errorf("NoColor: expected no moves, got %d", got)
	}
}

func TestPieceGeometry(t *testing.T) {
	tests := []struct {
		name   string
		pieces map[string]Piece
		from   string
		want   []string
	}{
		{
			name:   "white pawn on home rank",
			pieces: map[string]Piece{"e2": WhitePawn},
			from:   "e2",
			want:   []string{"e4", "e3"},
		},
		{
			name:   "black pawn on home rank",
			pieces: map[string]Piece{"d7": BlackPawn},
			from:   "d7",
			want:   []string{"d5", "d6"},
		},
		{
			name:   "pawn off home rank advances once",
			pieces: map[string]Piece{"e3": WhitePawn},
			from:   "e3",
			want:   []string{"e4"},
		},
		{
			name:   "pawn captures diagonally only onto enemies",
			pieces: map[string]Piece{"e4": WhitePawn, "d5": BlackKnight, "f5": WhiteRook, "e5": BlackPawn},
			from:   "e4",
			want:   []string{"d5"},
		},
		{
			name:   "pawn on last rank has no moves",
			pieces: map[string]Piece{"a8": WhitePawn},
			from:   "a8",
			want:   nil,
		},
		{
			name:   "knight in corner",
			pieces: map[string]Piece{"a1": WhiteKnight, "b3": WhitePawn, "c2": BlackPawn},
			from:   "a1",
			want:   []string{"c2"},
		},
		{
			name:   "rook stops at first piece each way",
			pieces: map[string]Piece{"a1": WhiteRook, "a4": WhitePawn, "d1": BlackPawn},
			from:   "a1",
			want:   []string{"a2", "a3", "b1", "c1", "d1"},
		},
		{
			name:   "bishop rays",
			pieces: map[string]Piece{"c1": WhiteBishop, "e3": BlackPawn, "b2": WhitePawn},
			from:   "c1",
			want:   []string{"d2", "e3"},
		},
		{
			name:   "queen is bishop plus rook",
			pieces: map[string]Piece{"a1": WhiteQueen, "b2": BlackPawn, "a2": WhitePawn, "c1": WhiteKing},
			from:   "a1",
			want:   []string{"b2", "b1"},
		},
		{
			name:   "king single steps",
			pieces: map[string]Piece{"h8": BlackKing, "g8": BlackRook, "h7": WhitePawn},
			from:   "h8",
			want:   []string{"g7", "h7"},
		},
		{
			name:   "empty square",
			pieces: map[string]Piece{"a1": WhiteRook},
			from:   "e4",
			want:   nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b := boardWith(t, tt.pieces)
			got := destinations(b, sq(t, tt.from))
			if !equalStrings(got, tt.want) {
				t.Fatalf("destinations from %s = %v, want %v", tt.from, got, tt.want)
			}
		})
	}
}

func TestPawnDoubleStepIsRankBased(t *testing.T) {
	b := boardWith(t, map[string]Piece{"e3": WhitePawn, "c7": BlackPawn})

	actions := b.Actions(sq(t, "e3"))
	reason, ok := actions.Rationale(Move{From: sq(t, "e3"), To: sq(t, "e5")})
	if !ok || reason != ReasonNotHomeRank.describe(Pawn) {
		t.Fatalf("e3e5 rationale = %q (%v), want not-home-rank", reason, ok)
	}

	// A pawn standing on its home rank is eligible regardless of history.
	b.Place(sq(t, "e3"), Empty)
	b.Place(sq(t, "e2"), WhitePawn)
	if !b.Actions(sq(t, "e2")).Contains(Move{From: sq(t, "e2"), To: sq(t, "e4")}) {
		t.Fatalf("expected e2e4 to be legal")
	}
	if !b.Actions(sq(t, "c7")).Contains(Move{From: sq(t, "c7"), To: sq(t, "c5")}) {
		t.Fatalf("expected c7c5 to be legal")
	}
}

func TestPawnBlockedRationale(t *testing.T) {
	b := boardWith(t, map[string]Piece{"e2": WhitePawn, "e3": BlackKnight})
	actions := b.Actions(sq(t, "e2"))

	if got := destinations(b, sq(t, "e2")); !equalStrings(got, []string{"e4"}) {
		t.Fatalf("expected only the double step, got %v", got)
	}
	cases := map[string]Reason{
		"e4": ReasonTwoSquares,
		"e3": ReasonForwardBlocked,
		"d3": ReasonEmptyDiagonal,
		"f3": ReasonEmptyDiagonal,
	}
	for to, want := range cases {
		got, ok := actions.Rationale(Move{From: sq(t, "e2"), To: sq(t, to)})
		if !ok {
			t.Errorf("no rationale recorded for %s", to)
			continue
		}
		if got != want.describe(Pawn) {
			t.Errorf("rationale for %s = %q, want %q", to, got, want.describe(Pawn))
		}
	}
}

func TestPawnDoubleStepTargets(t *testing.T) {
	tests := []struct {
		name    string
		pieces  map[string]Piece
		legal   bool
		reason  Reason
		capture Piece
	}{
		{
			name:   "jumps over an enemy",
			pieces: map[string]Piece{"e2": WhitePawn, "e3": BlackKnight},
			legal:  true,
			reason: ReasonTwoSquares,
		},
		{
			name:   "jumps over its own piece",
			pieces: map[string]Piece{"e2": WhitePawn, "e3": WhiteBishop},
			legal:  true,
			reason: ReasonTwoSquares,
		},
		{
			name:    "lands on an enemy",
			pieces:  map[string]Piece{"e2": WhitePawn, "e4": BlackKnight},
			legal:   true,
			reason:  ReasonTwoSquares,
			capture: BlackKnight,
		},
		{
			name:   "cannot land on its own piece",
			pieces: map[string]Piece{"e2": WhitePawn, "e4": WhiteBishop},
			legal:  false,
			reason: ReasonOwnColor,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b := boardWith(t, tt.pieces)
			m := mustMove(t, "e2e4")
			actions := b.Actions(m.From)
			if actions.Contains(m) != tt.legal {
				t.Fatalf("e2e4 legal = %v, want %v", !tt.legal, tt.legal)
			}
			reason, _ := actions.Rationale(m)
			if reason != tt.reason.describe(Pawn) {
				t.Fatalf("rationale = %q, want %q", reason, tt.reason.describe(Pawn))
			}
			if !tt.legal {
				return
			}
			if _, _, err := b.ApplyMove(m); err != nil {
				t.Fatalf("ApplyMove: %v", err)
			}
			if b.PieceAt(m.To) != WhitePawn {
				t.Fatalf("pawn did not reach e4")
			}
			captured := b.Captured(Black)
			if tt.capture == Empty && len(captured) != 0 {
				t.Fatalf("unexpected capture %v", captured)
			}
			if tt.capture != Empty && (len(captured) != 1 || captured[0] != tt.capture) {
				t.Fatalf("captured = %v, want [%s]", captured, tt.capture)
			}
		})
	}
}

func TestRationaleCoversRejectedCandidates(t *testing.T) {
	b := NewBoard()
	actions := b.Actions(sq(t, "e1"))
	if len(actions.Moves()) != 0 {
		t.Fatalf("king should be boxed in, got %v", actions.Moves())
	}
	// d1 f1 d2 e2 f2 are in bounds and all friendly.
	if got := len(actions.Rationales()); got != 5 {
		t.Fatalf("expected 5 rationales, got %d", got)
	}
	for _, r := range actions.Rationales() {
		if r.Legal || r.Reason != ReasonOwnColor {
			t.Errorf("unexpected rationale %+v", r)
		}
		if r.String() != "king cannot capture own color" {
			t.Errorf("unexpected text %q", r.String())
		}
	}
}

func randomBoard(rng *rand.Rand) *BoardState {
	pieces := []Piece{
		WhitePawn, WhiteKnight, WhiteBishop, WhiteRook, WhiteQueen, WhiteKing,
		BlackPawn, BlackKnight, BlackBishop, BlackRook, BlackQueen, BlackKing,
	}
	b := NewEmptyBoard()
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if rng.Intn(3) == 0 {
				b.Place(Square{Row: row, Col: col}, pieces[rng.Intn(len(pieces))])
			}
		}
	}
	return b
}

func TestGeneratedMovesNeverTargetOwnColor(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		b := randomBoard(rng)
		b.Squares(func(from Square, p Piece) {
			for _, m := range b.Actions(from).Moves() {
				if b.ColorAt(m.To) == p.Color() {
					t.Fatalf("board %d: %s moves onto own piece with %s", i, p, m)
				}
			}
		})
	}
}

func TestPawnsOnlyMoveForward(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		b := randomBoard(rng)
		b.Squares(func(from Square, p Piece) {
			if p.Type() != Pawn {
				return
			}
			fwd := pawnForward(p.Color())
			for _, m := range b.Actions(from).Moves() {
				if (m.To.Row-m.From.Row)*fwd <= 0 {
					t.Fatalf("board %d: %s moved backward or sideways with %s", i, p, m)
				}
			}
		})
	}
}

func TestSlidingStopRule(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	for i := 0; i < 200; i++ {
		b := randomBoard(rng)
		b.Squares(func(from Square, p Piece) {
			var dirs []Direction
			switch p.Type() {
			case Bishop:
				dirs = bishopDirs
			case Rook:
				dirs = rookDirs
			case Queen:
				dirs = queenDirs
			default:
				return
			}
			actions := b.Actions(from)
			for _, dir := range dirs {
				stopped := false
				for target := from.Offset(dir); target.InBounds(); target = target.Offset(dir) {
					m := Move{From: from, To: target}
					occupant := b.ColorAt(target)
					want := !stopped && occupant != p.Color()
					if actions.Contains(m) != want {
						t.Fatalf("board %d: %s at %s, move %s legal=%v want %v", i, p, from, m, !want, want)
					}
					if occupant != NoColor {
						stopped = true
					}
				}
			}
		})
	}
}

func TestColorAtPanicsOnCorruptCell(t *testing.T) {
	b := NewEmptyBoard()
	b.board[0][0] = Piece(7)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrCorruptState) {
			t.Fatalf("expected ErrCorruptState, got %v", r)
		}
	}()
	b.ColorAt(Square{Row: 0, Col: 0})
}

func TestOpposite(t *testing.T) {
	if Opposite(White) != Black || Opposite(Black) != White || Opposite(NoColor) != NoColor {
		t.Fatalf("unexpected opposite mapping")
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown color")
		}
	}()
	Opposite(Color(9))
}
