package model

import (
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/capturechess-backend/internal/ws"
)

// GameConnections holds one client per connected player. It is guarded by
// the owning Game's mutex.
type GameConnections struct {
	clients map[string]*ws.Client // playerID -> client
}

// Game is one live match: the board, whose turn it is, and its observers.
// Turn order is enforced here; BoardState.ApplyMove itself is turn agnostic.
type Game struct {
	ID          string
	Name        string
	mu          sync.Mutex
	board       *BoardState
	state       gameMeta
	connections *GameConnections
}

type gameMeta struct {
	toMove      Color
	winner      Color
	moveHistory []Ply
	lastMove    *Move
	lastLog     string
	players     Players
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// GameState is the serializable snapshot sent to clients.
type GameState struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Board          [8][8]Piece    `json:"board"`
	ToMove         Color          `json:"toMove"`
	Winner         Color          `json:"winner"`
	Resolve        *string        `json:"resolve"`
	MoveHistory    []Ply          `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	LastMove       *Move          `json:"lastMove"`
	Log            string         `json:"log"`
	FEN            string         `json:"fen"`
	Players        Players        `json:"players"`
}

type Ply struct {
	Piece         Piece  `json:"piece"`
	From          Square `json:"from"`
	To            Square `json:"to"`
	CapturedPiece Piece  `json:"capturedPiece"`
	Notation      string `json:"notation"`
	Log           string `json:"log"`
}

func NewGame(id, name string, board *BoardState, toMove Color) *Game {
	if board == nil {
		board = NewBoard()
	}
	if toMove == NoColor {
		toMove = White
	}
	return &Game{
		ID:    id,
		Name:  name,
		board: board,
		state: gameMeta{
			toMove:      toMove,
			moveHistory: make([]Ply, 0),
		},
		connections: NewGameConnections(),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		clients: make(map[string]*ws.Client),
	}
}

// AddPlayer seats playerID as white, then black.
func (g *Game) AddPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c := g.colorOf(playerID); c != NoColor {
		return c, nil
	}
	if g.state.players.White.ID == "" {
		g.state.players.White = ClientPlayer{ID: playerID, Color: White}
		return White, nil
	}
	if g.state.players.Black.ID == "" {
		g.state.players.Black = ClientPlayer{ID: playerID, Color: Black}
		return Black, nil
	}
	return NoColor, ErrGameFull
}

// ReserveSeat marks color c as taken by a non-human participant.
func (g *Game) ReserveSeat(c Color, id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch c {
	case White:
		g.state.players.White = ClientPlayer{ID: id, Color: White}
	case Black:
		g.state.players.Black = ClientPlayer{ID: id, Color: Black}
	}
}

func (g *Game) ColorOf(playerID string) Color {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.colorOf(playerID)
}

func (g *Game) colorOf(playerID string) Color {
	if playerID == "" {
		return NoColor
	}
	switch playerID {
	case g.state.players.White.ID:
		return White
	case g.state.players.Black.ID:
		return Black
	}
	return NoColor
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	return g.ColorOf(playerID) != NoColor
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.state.players.White.ID == "" || g.state.players.Black.ID == ""
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) snapshot() GameState {
	state := GameState{
		ID:          g.ID,
		Name:        g.Name,
		Board:       g.board.Grid(),
		ToMove:      g.state.toMove,
		Winner:      g.state.winner,
		MoveHistory: append([]Ply(nil), g.state.moveHistory...),
		CapturedPieces: CapturedPieces{
			White: append([]Piece{}, g.board.Captured(White)...),
			Black: append([]Piece{}, g.board.Captured(Black)...),
		},
		Log:     g.state.lastLog,
		FEN:     g.board.FEN(g.state.toMove),
		Players: g.state.players,
	}
	if g.state.lastMove != nil {
		m := *g.state.lastMove
		state.LastMove = &m
	}
	if g.state.winner != NoColor {
		result := "king captured"
		state.Resolve = &result
	}
	return state
}

func (g *Game) ToMove() Color {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.toMove
}

func (g *Game) Actions(sq Square) *ActionSet {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.board.Actions(sq)
}

func (g *Game) FEN() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.board.FEN(g.state.toMove)
}

// MakeMove plays m for the side to move. A player id, when given, must hold
// that side's seat; an empty id is trusted local play.
func (g *Game) MakeMove(playerID string, m Move) (Ply, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if playerID != "" {
		switch c := g.colorOf(playerID); {
		case c == NoColor:
			return Ply{}, fmt.Errorf("%w: player %s in game %s", ErrNotSeated, playerID, g.ID)
		case c != g.state.toMove:
			return Ply{}, ErrNotYourTurn
		}
	}
	return g.makeMove(m)
}

// MakeEngineMove lets choose pick a move for the side to move while the game
// is locked, then plays it. ok=false from choose means no move was found.
func (g *Game) MakeEngineMove(choose func(b *BoardState, toMove Color) (Move, bool)) (Ply, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.winner != NoColor {
		return Ply{}, ErrGameOver
	}
	m, ok := choose(g.board, g.state.toMove)
	if !ok {
		return Ply{}, fmt.Errorf("%w: %s has no legal moves", ErrInvalidMove, g.state.toMove)
	}
	return g.makeMove(m)
}

func (g *Game) makeMove(m Move) (Ply, error) {
	if g.state.winner != NoColor {
		return Ply{}, ErrGameOver
	}
	if !m.From.InBounds() || g.board.PieceAt(m.From) == Empty {
		return Ply{}, ErrNoPiece
	}
	if g.board.ColorAt(m.From) != g.state.toMove {
		return Ply{}, ErrNotYourTurn
	}

	ply := g.makePly(m)
	winner, text, err := g.board.ApplyMove(m)
	g.state.lastLog = text
	if err != nil {
		return Ply{}, err
	}
	ply.Log = text
	if winner != NoColor {
		ply.Notation += "#"
	}

	g.state.moveHistory = append(g.state.moveHistory, ply)
	g.state.lastMove = &Move{From: m.From, To: m.To}
	g.state.winner = winner
	g.switchTurn()

	g.broadcastState(g.snapshot())

	return ply, nil
}

func (g *Game) makePly(m Move) Ply {
	return Ply{
		Piece:         g.board.PieceAt(m.From),
		From:          m.From,
		To:            m.To,
		CapturedPiece: g.board.PieceAt(m.To),
		Notation:      g.getNotation(m),
	}
}

func (g *Game) getNotation(m Move) string {
	piece := g.board.PieceAt(m.From)
	prefix := piece.Type().getPieceNotation()
	capture := ""
	if g.board.PieceAt(m.To) != Empty {
		capture = "x"
	}
	pawnFile := ""
	if piece.Type() == Pawn && m.From.Col != m.To.Col {
		pawnFile = m.From.getFileNotation()
	}
	return fmt.Sprintf("%s%s%s%s", prefix, pawnFile, capture, m.To)
}

func (g *Game) switchTurn() {
	g.state.toMove = Opposite(g.state.toMove)
}

// Reset starts the game over from the standard position, keeping seats.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.board.Reset()
	players := g.state.players
	g.state = gameMeta{toMove: White, moveHistory: make([]Ply, 0), players: players}

	g.broadcastState(g.snapshot())
}

// RegisterConnection attaches client to the game and queues the current
// state for it. Later states reach every client in the order they happened.
func (g *Game) RegisterConnection(playerID string, client *ws.Client) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.colorOf(playerID) == NoColor && !g.canSpectate() {
		return fmt.Errorf("player %s is not authorized to join game %s", playerID, g.ID)
	}
	if _, exists := g.connections.clients[playerID]; exists {
		return fmt.Errorf("player %s already has a connection to game %s", playerID, g.ID)
	}
	g.connections.clients[playerID] = client
	log.Printf("registered connection for player %s in game %s", playerID, g.ID)

	msg, err := ws.NewMessage(ws.MessageTypeGameState, g.snapshot())
	if err != nil {
		return err
	}
	client.Send(msg)
	return nil
}

// UnregisterConnection detaches client. A newer client registered under the
// same player id is left alone.
func (g *Game) UnregisterConnection(playerID string, client *ws.Client) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if current, exists := g.connections.clients[playerID]; exists && current == client {
		log.Printf("unregistering connection for player %s in game %s", playerID, g.ID)
		delete(g.connections.clients, playerID)
	}
}

// broadcastState must be called with g.mu held so that snapshots are queued
// in the order the game produced them.
func (g *Game) broadcastState(state GameState) {
	if len(g.connections.clients) == 0 {
		return
	}
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Printf("failed to marshal state of game %s: %v", g.ID, err)
		return
	}
	for playerID, client := range g.connections.clients {
		if !client.Send(msg) {
			log.Printf("dropping connection for player %s in game %s", playerID, g.ID)
			client.Stop()
			delete(g.connections.clients, playerID)
		}
	}
}
