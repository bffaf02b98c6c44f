package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/benbeisheim/capturechess-backend/internal/service"
	"github.com/benbeisheim/capturechess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established.
// Every write to c goes through one ws.Client so that state broadcasts and
// direct replies never interleave on the wire.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals("playerID").(string)

	client := ws.NewClient(c)
	defer client.Close()

	if err := wsc.gameService.RegisterConnection(gameID, playerID, client); err != nil {
		log.Printf("failed to register connection: %v", err)
		wsc.sendError(client, err)
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, client)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			return
		}
		select {
		case <-client.Done():
			log.Printf("connection for player %s in game %s fell behind", playerID, gameID)
			return
		default:
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("parse error: %v", err)
			wsc.sendError(client, err)
			continue
		}
		reply, err := wsc.handleMessage(gameID, playerID, msg)
		if err != nil {
			log.Printf("handle error: %v", err)
			wsc.sendError(client, err)
			continue
		}
		if reply != nil && !client.Send(*reply) {
			log.Printf("dropped reply to player %s in game %s", playerID, gameID)
		}
	}
}

// handleMessage dispatches one client message. Moves and resets are announced
// through the game's state broadcast, so only queries produce a direct reply.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) (*ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var payload ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return nil, err
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, payload.Move)
		return nil, err

	case ws.MessageTypeEngine:
		_, err := wsc.gameService.HandleEngineMove(gameID)
		return nil, err

	case ws.MessageTypeReset:
		_, err := wsc.gameService.ResetGame(gameID)
		return nil, err

	case ws.MessageTypeSquare:
		var payload ws.SquarePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return nil, err
		}
		info, err := wsc.gameService.QuerySquare(gameID, payload.Square)
		if err != nil {
			return nil, err
		}
		reply, err := ws.NewMessage(ws.MessageTypeDestination, info)
		if err != nil {
			return nil, err
		}
		return &reply, nil

	default:
		return nil, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(client *ws.Client, err error) {
	msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if merr != nil {
		log.Printf("failed to encode error: %v", merr)
		return
	}
	if !client.Send(msg) {
		log.Printf("failed to send error: %v", err)
	}
}
