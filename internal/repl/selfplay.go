package repl

import (
	"fmt"
	"io"

	"github.com/benbeisheim/capturechess-backend/internal/model"
	"github.com/benbeisheim/capturechess-backend/internal/search"
)

// SelfPlay lets the engine play both sides from the standard position until
// a king falls, a side cannot move, or maxPlies moves have been made. It
// returns the winner, NoColor if there is none.
func SelfPlay(out io.Writer, cfg Config, maxPlies int) (model.Color, error) {
	colors := newPalette(cfg.Color)
	board := model.NewBoard()
	searcher := search.NewSearcher(search.NewArena(cfg.Depth), nil, cfg.Rand)
	toMove := model.White

	fmt.Fprint(out, Render(board, nil, nil))
	for ply := 1; maxPlies <= 0 || ply <= maxPlies; ply++ {
		res := searcher.Search(board, toMove, cfg.Depth, cfg.Noise)
		if !res.HasMove {
			colors.err.Fprintf(out, "%s has no legal moves\n", toMove)
			return model.NoColor, nil
		}
		colors.engine.Fprintf(out, "\n%d. %s plays %s, score %.3f (%d evals)\n", ply, toMove, res.Move, res.Score, res.Leaves)

		winner, text, err := board.ApplyMove(res.Move)
		if err != nil {
			return model.NoColor, fmt.Errorf("engine chose %s: %w", res.Move, err)
		}
		fmt.Fprintln(out, text)
		fmt.Fprint(out, Render(board, nil, nil))
		if winner != model.NoColor {
			colors.win.Fprintf(out, "%s wins by capturing the king\n", winner)
			return winner, nil
		}
		toMove = model.Opposite(toMove)
	}
	fmt.Fprintf(out, "stopped after %d plies\n", maxPlies)
	return model.NoColor, nil
}
