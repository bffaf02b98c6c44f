// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/capturechess-backend/internal/model"
	"github.com/benbeisheim/capturechess-backend/internal/search"
	"github.com/benbeisheim/capturechess-backend/internal/ws"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

type CreateOptions struct {
	EngineColor model.Color
	Depth       int
	Noise       float64
	FEN         string
}

type managedGame struct {
	game        *model.Game
	engine      *Engine
	engineColor model.Color
}

type GameManager struct {
	games    map[string]*managedGame
	defaults EngineConfig
	mu       sync.RWMutex
}

// MoveResult is a played ply and, for engine games, the engine's reply.
type MoveResult struct {
	Ply    model.Ply       `json:"ply"`
	Reply  *model.Ply      `json:"reply,omitempty"`
	Search *search.Result  `json:"search,omitempty"`
	State  model.GameState `json:"state"`
}

func (mg *managedGame) engineMove() (model.Ply, search.Result, error) {
	var res search.Result
	ply, err := mg.game.MakeEngineMove(func(b *model.BoardState, toMove model.Color) (model.Move, bool) {
		res = mg.engine.Search(b, toMove)
		return res.Move, res.HasMove
	})
	return ply, res, err
}

func NewGameManager(defaults EngineConfig) *GameManager {
	return &GameManager{
		games:    make(map[string]*managedGame),
		defaults: defaults,
	}
}

func (gm *GameManager) CreateGame(opts CreateOptions) (*model.Game, error) {
	board, toMove := model.NewBoard(), model.White
	if opts.FEN != "" {
		var err error
		board, toMove, err = model.ParseFEN(opts.FEN)
		if err != nil {
			return nil, err
		}
	}

	cfg := gm.defaults
	if opts.Depth > 0 {
		cfg.Depth = opts.Depth
	}
	if opts.Noise > 0 {
		cfg.Noise = opts.Noise
	}

	gameID := uuid.New().String()
	name := petname.Generate(2, "-")
	mg := &managedGame{
		game:        model.NewGame(gameID, name, board, toMove),
		engine:      NewEngine(cfg),
		engineColor: opts.EngineColor,
	}
	if opts.EngineColor != model.NoColor {
		mg.game.ReserveSeat(opts.EngineColor, "engine:"+name)
	}

	gm.mu.Lock()
	gm.games[gameID] = mg
	gm.mu.Unlock()
	log.Printf("created game %s (%s), engine color %s, depth %d", gameID, name, opts.EngineColor, cfg.Depth)

	if opts.EngineColor == toMove {
		if _, _, err := mg.engineMove(); err != nil {
			return nil, fmt.Errorf("engine opening move: %w", err)
		}
	}
	return mg.game, nil
}

func (gm *GameManager) get(gameID string) (*managedGame, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	mg, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return mg, nil
}

func (gm *GameManager) HasGame(gameID string) bool {
	_, err := gm.get(gameID)
	return err == nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	mg, err := gm.get(gameID)
	if err != nil {
		return nil, err
	}
	return mg.game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	mg, err := gm.get(gameID)
	if err != nil {
		return model.NoColor, err
	}
	return mg.game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	mg, err := gm.get(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return mg.game.GetState(), nil
}

// MakeMove plays a human move and lets the engine answer when it holds the
// next turn.
func (gm *GameManager) MakeMove(gameID string, playerID string, move model.Move) (MoveResult, error) {
	mg, err := gm.get(gameID)
	if err != nil {
		return MoveResult{}, err
	}

	ply, err := mg.game.MakeMove(playerID, move)
	if err != nil {
		return MoveResult{}, err
	}
	result := MoveResult{Ply: ply}

	if mg.engineColor != model.NoColor && mg.game.ToMove() == mg.engineColor {
		reply, res, err := mg.engineMove()
		switch {
		case errors.Is(err, model.ErrGameOver):
		case err != nil:
			log.Printf("engine reply in game %s: %v", gameID, err)
		default:
			result.Reply = &reply
			result.Search = &res
		}
	}
	result.State = mg.game.GetState()
	return result, nil
}

// EngineMove has the engine play for whichever side is to move.
func (gm *GameManager) EngineMove(gameID string) (MoveResult, error) {
	mg, err := gm.get(gameID)
	if err != nil {
		return MoveResult{}, err
	}
	ply, res, err := mg.engineMove()
	if err != nil {
		return MoveResult{}, err
	}
	return MoveResult{Ply: ply, Search: &res, State: mg.game.GetState()}, nil
}

func (gm *GameManager) Actions(gameID string, sq model.Square) (*model.ActionSet, error) {
	mg, err := gm.get(gameID)
	if err != nil {
		return nil, err
	}
	return mg.game.Actions(sq), nil
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, client *ws.Client) error {
	mg, err := gm.get(gameID)
	if err != nil {
		return err
	}
	return mg.game.RegisterConnection(playerID, client)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, client *ws.Client) {
	mg, err := gm.get(gameID)
	if err != nil {
		return
	}
	mg.game.UnregisterConnection(playerID, client)
}

func (gm *GameManager) ResetGame(gameID string) (model.GameState, error) {
	mg, err := gm.get(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	mg.game.Reset()
	if mg.engineColor == model.White {
		if _, _, err := mg.engineMove(); err != nil {
			return model.GameState{}, err
		}
	}
	return mg.game.GetState(), nil
}
