package main

import (
	"flag"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/benbeisheim/capturechess-backend/internal/config"
	"github.com/benbeisheim/capturechess-backend/internal/repl"
	"golang.org/x/term"
)

func main() {
	depth := flag.Int("depth", config.GetenvInt("CHESS_ENGINE_DEPTH", 3), "engine search depth in plies")
	noise := flag.Float64("noise", config.GetenvFloat("CHESS_ENGINE_NOISE", 0.1), "engine leaf noise amplitude")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for engine noise")
	selfPlay := flag.Bool("selfplay", false, "let the engine play both sides")
	maxPlies := flag.Int("max-plies", 200, "stop self-play after this many plies (0 for no limit)")
	flag.Parse()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	cfg := repl.Config{
		Depth: *depth,
		Noise: *noise,
		Color: term.IsTerminal(int(os.Stdout.Fd())),
		Rand:  rand.New(rand.NewSource(*seed)),
	}

	if *selfPlay {
		if _, err := repl.SelfPlay(os.Stdout, cfg, *maxPlies); err != nil {
			log.Fatal(err)
		}
		return
	}

	var out io.Writer = os.Stdout
	var in repl.LineReader = repl.NewScannerReader(os.Stdin, nil, "")
	if interactive {
		state, err := term.MakeRaw(int(os.Stdin.Fd()))
		if err != nil {
			log.Fatal(err)
		}
		defer term.Restore(int(os.Stdin.Fd()), state)

		terminal := term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{os.Stdin, os.Stdout}, "> ")
		out, in = terminal, terminal
	}

	session := repl.NewSession(out, cfg)
	// Tokens given on the command line run before any input is read.
	for _, arg := range flag.Args() {
		if session.Exec(arg) {
			return
		}
	}
	if err := session.Run(in); err != nil {
		log.Print(err)
	}
}
