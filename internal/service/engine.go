package service

import (
	"math/rand"
	"time"

	"github.com/benbeisheim/capturechess-backend/internal/model"
	"github.com/benbeisheim/capturechess-backend/internal/search"
)

type EngineConfig struct {
	Depth int
	Noise float64
}

// Engine owns the searcher for one game. Its arena is never shared with
// another game, and the game lock serializes searches.
type Engine struct {
	Config   EngineConfig
	searcher *search.Searcher
}

func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{
		Config:   cfg,
		searcher: search.NewSearcher(search.NewArena(cfg.Depth), nil, rand.New(rand.NewSource(time.Now().UnixNano()))),
	}
}

// Search runs the configured search for toMove. Callers must hold the game
// lock.
func (e *Engine) Search(b *model.BoardState, toMove model.Color) search.Result {
	return e.searcher.Search(b, toMove, e.Config.Depth, e.Config.Noise)
}
