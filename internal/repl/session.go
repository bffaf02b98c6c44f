package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/benbeisheim/capturechess-backend/internal/model"
	"github.com/benbeisheim/capturechess-backend/internal/search"
)

const usage = `Enter a move (e.g. "g2f2"), a coordinate (e.g. "h1") or a command:
  board  show the board        fen    print the position as FEN
  hint   engine suggestion     go     engine plays the side to move
  reset  new game              quit   leave
Several tokens may be given on one line; they run in order.`

type Config struct {
	Depth int
	Noise float64
	Color bool
	Rand  *rand.Rand
}

// LineReader yields one line of input per call, io.EOF when done.
// *term.Terminal satisfies it.
type LineReader interface {
	ReadLine() (string, error)
}

// Session is one interactive game. Moves are not restricted to the side to
// move; the side to move only decides whom hint and go play for.
type Session struct {
	out      io.Writer
	board    *model.BoardState
	toMove   model.Color
	winner   model.Color
	cfg      Config
	searcher *search.Searcher
	colors   palette
}

func NewSession(out io.Writer, cfg Config) *Session {
	return &Session{
		out:      out,
		board:    model.NewBoard(),
		toMove:   model.White,
		cfg:      cfg,
		searcher: search.NewSearcher(search.NewArena(cfg.Depth), nil, cfg.Rand),
		colors:   newPalette(cfg.Color),
	}
}

func (s *Session) Board() *model.BoardState {
	return s.board
}

// Run prints the board and executes lines until quit or end of input.
func (s *Session) Run(in LineReader) error {
	fmt.Fprint(s.out, Render(s.board, nil, nil))
	for {
		line, err := in.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if s.Exec(line) {
			return nil
		}
	}
}

// Exec runs every whitespace separated token of line and reports whether the
// session should end.
func (s *Session) Exec(line string) bool {
	for _, token := range strings.Fields(line) {
		fmt.Fprintf(s.out, "\n? %s\n", token)
		if s.execToken(token) {
			return true
		}
	}
	return false
}

func (s *Session) execToken(token string) bool {
	switch strings.ToLower(token) {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(s.out, usage)
	case "board":
		fmt.Fprint(s.out, Render(s.board, nil, nil))
	case "fen":
		fmt.Fprintln(s.out, s.board.FEN(s.toMove))
	case "reset":
		s.board.Reset()
		s.toMove, s.winner = model.White, model.NoColor
		fmt.Fprint(s.out, Render(s.board, nil, nil))
	case "hint":
		s.think()
	case "go":
		s.engineMove()
	default:
		switch len(token) {
		case 4:
			s.move(token)
		case 2:
			s.query(token)
		default:
			fmt.Fprintln(s.out, `Please enter a move (e.g. "g2f2") or a coordinate (e.g. "h1"); "help" lists commands`)
		}
	}
	return false
}

func (s *Session) move(token string) {
	m, err := model.ParseMove(token)
	if err != nil {
		s.colors.err.Fprintf(s.out, "ConversionError: %v\n", err)
		return
	}
	s.play(m)
}

func (s *Session) play(m model.Move) {
	if s.winner != model.NoColor {
		s.colors.err.Fprintf(s.out, "%s already won; type reset to play again\n", s.winner)
		return
	}
	mover := s.board.ColorAt(m.From)
	winner, text, err := s.board.ApplyMove(m)
	if err != nil {
		s.colors.err.Fprintf(s.out, "InvalidMove %q: %s\n", m.String(), text)
		return
	}
	fmt.Fprintln(s.out, text)
	fmt.Fprint(s.out, Render(s.board, nil, nil))
	s.toMove = model.Opposite(mover)
	if winner != model.NoColor {
		s.winner = winner
		s.colors.win.Fprintf(s.out, "%s wins by capturing the king\n", strings.ToUpper(winner.String()))
	}
}

func (s *Session) query(token string) {
	sq, err := model.ParseSquare(token)
	if err != nil {
		s.colors.err.Fprintf(s.out, "ConversionError: %v\n", err)
		return
	}
	actions := s.board.Actions(sq)
	destinations := make([]model.Square, 0, len(actions.Moves()))
	for _, m := range actions.Moves() {
		destinations = append(destinations, m.To)
	}
	fmt.Fprintf(s.out, "Possible moves for %s\n", sq)
	fmt.Fprint(s.out, Render(s.board, &sq, destinations))
	for _, r := range actions.Rationales() {
		mark := "-"
		if r.Legal {
			mark = "+"
		}
		s.colors.query.Fprintf(s.out, "  %s %s: %s\n", mark, r.Move.To, r)
	}
}

func (s *Session) think() (search.Result, bool) {
	res := s.searcher.Search(s.board, s.toMove, s.cfg.Depth, s.cfg.Noise)
	if !res.HasMove {
		s.colors.err.Fprintf(s.out, "%s has no legal moves\n", s.toMove)
		return res, false
	}
	s.colors.engine.Fprintf(s.out, "%s: best %s score %.3f (%d evals)\n", s.toMove, res.Move, res.Score, res.Leaves)
	return res, true
}

func (s *Session) engineMove() {
	if s.winner != model.NoColor {
		s.colors.err.Fprintf(s.out, "%s already won; type reset to play again\n", s.winner)
		return
	}
	if res, ok := s.think(); ok {
		s.play(res.Move)
	}
}

// ScannerReader adapts a plain reader, such as a pipe, to LineReader.
type ScannerReader struct {
	scanner *bufio.Scanner
	prompt  string
	out     io.Writer
}

func NewScannerReader(r io.Reader, out io.Writer, prompt string) *ScannerReader {
	return &ScannerReader{scanner: bufio.NewScanner(r), prompt: prompt, out: out}
}

func (sr *ScannerReader) ReadLine() (string, error) {
	if sr.prompt != "" && sr.out != nil {
		fmt.Fprint(sr.out, sr.prompt)
	}
	if !sr.scanner.Scan() {
		if err := sr.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return sr.scanner.Text(), nil
}
