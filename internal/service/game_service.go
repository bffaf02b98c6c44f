package service

import (
	"github.com/benbeisheim/capturechess-backend/internal/model"
	"github.com/benbeisheim/capturechess-backend/internal/ws"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// SquareInfo answers a "where can this piece go" query.
type SquareInfo struct {
	Square       model.Square     `json:"square"`
	Piece        model.Piece      `json:"piece"`
	Color        model.Color      `json:"color"`
	Destinations []model.Square   `json:"destinations"`
	Rationale    []RationaleEntry `json:"rationale"`
}

type RationaleEntry struct {
	Move   model.Move `json:"move"`
	Legal  bool       `json:"legal"`
	Reason string     `json:"reason"`
}

func (gs *GameService) CreateGame(opts CreateOptions) (*model.Game, error) {
	return gs.gameManager.CreateGame(opts)
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) GetFEN(gameID string) (string, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.FEN(), nil
}

// HandleMove parses a coordinate move such as "e2e4" and plays it.
func (gs *GameService) HandleMove(gameID string, playerID string, move string) (MoveResult, error) {
	m, err := model.ParseMove(move)
	if err != nil {
		return MoveResult{}, err
	}
	return gs.gameManager.MakeMove(gameID, playerID, m)
}

func (gs *GameService) HandleEngineMove(gameID string) (MoveResult, error) {
	return gs.gameManager.EngineMove(gameID)
}

// QuerySquare parses a coordinate such as "g1" and reports its action set.
func (gs *GameService) QuerySquare(gameID string, coord string) (SquareInfo, error) {
	sq, err := model.ParseSquare(coord)
	if err != nil {
		return SquareInfo{}, err
	}
	actions, err := gs.gameManager.Actions(gameID, sq)
	if err != nil {
		return SquareInfo{}, err
	}

	info := SquareInfo{
		Square:       sq,
		Piece:        actions.Piece,
		Color:        actions.Color,
		Destinations: make([]model.Square, 0, len(actions.Moves())),
		Rationale:    make([]RationaleEntry, 0, len(actions.Rationales())),
	}
	for _, m := range actions.Moves() {
		info.Destinations = append(info.Destinations, m.To)
	}
	for _, r := range actions.Rationales() {
		info.Rationale = append(info.Rationale, RationaleEntry{Move: r.Move, Legal: r.Legal, Reason: r.String()})
	}
	return info, nil
}

func (gs *GameService) ResetGame(gameID string) (model.GameState, error) {
	return gs.gameManager.ResetGame(gameID)
}

func (gs *GameService) GameExists(gameID string) bool {
	return gs.gameManager.HasGame(gameID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, client *ws.Client) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, client)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, client *ws.Client) {
	gs.gameManager.UnregisterConnection(gameID, playerID, client)
}
