package search

import (
	"math/rand"
	"time"

	"github.com/benbeisheim/capturechess-backend/internal/model"
)

// Result is the outcome of a search. Move is meaningful only when HasMove.
type Result struct {
	Score   float64    `json:"score"`
	Move    model.Move `json:"move"`
	HasMove bool       `json:"hasMove"`
	Leaves  uint64     `json:"leaves"`
}

// Arena holds one scratch board per remaining depth so a search does not
// allocate a board per node. It is not safe for concurrent use; each
// concurrent search needs its own arena.
type Arena struct {
	boards []model.BoardState
	moves  [][]model.Move
}

func NewArena(depth int) *Arena {
	a := &Arena{}
	a.grow(depth)
	return a
}

func (a *Arena) grow(depth int) {
	for len(a.boards) <= depth {
		a.boards = append(a.boards, model.BoardState{})
		a.moves = append(a.moves, nil)
	}
}

// Searcher runs fixed-depth negamax without pruning.
type Searcher struct {
	arena *Arena
	eval  Evaluator
	rng   *rand.Rand
}

// NewSearcher builds a searcher over arena. A nil evaluator means Material
// and a nil rng is seeded from the clock.
func NewSearcher(arena *Arena, eval Evaluator, rng *rand.Rand) *Searcher {
	if arena == nil {
		arena = NewArena(0)
	}
	if eval == nil {
		eval = EvaluatorFunc(Material)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Searcher{arena: arena, eval: eval, rng: rng}
}

// Search explores every line depth plies deep and returns the best move for
// toMove. Among equal scores the first move in AllLegalMoves order wins. A
// side without legal moves is scored as a leaf. board is not modified.
func (s *Searcher) Search(board *model.BoardState, toMove model.Color, depth int, noise float64) Result {
	if depth < 0 {
		depth = 0
	}
	s.arena.grow(depth)
	return s.negamax(board, toMove, depth, noise)
}

func (s *Searcher) negamax(board *model.BoardState, toMove model.Color, depth int, noise float64) Result {
	if depth == 0 {
		return s.leaf(board, toMove, noise)
	}

	moves := board.AppendLegalMoves(s.arena.moves[depth][:0], toMove)
	s.arena.moves[depth] = moves
	if len(moves) == 0 {
		return s.leaf(board, toMove, noise)
	}

	scratch := &s.arena.boards[depth]
	var best Result
	for i, m := range moves {
		board.CloneInto(scratch, false)
		// A king capture does not end the line; every branch is searched to depth.
		scratch.ApplyLegal(m)
		child := s.negamax(scratch, model.Opposite(toMove), depth-1, noise)
		score := -child.Score
		best.Leaves += child.Leaves
		if i == 0 || score > best.Score {
			best.Score = score
			best.Move = m
			best.HasMove = true
		}
	}
	return best
}

func (s *Searcher) leaf(board *model.BoardState, toMove model.Color, noise float64) Result {
	score := s.eval.Evaluate(board, toMove)
	if noise > 0 {
		score += noise * (2*s.rng.Float64() - 1)
	}
	return Result{Score: score, Leaves: 1}
}
