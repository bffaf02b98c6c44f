package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove        MessageType = "move"
	MessageTypeSquare      MessageType = "square"
	MessageTypeEngine      MessageType = "engine"
	MessageTypeReset       MessageType = "reset"
	MessageTypeGameState   MessageType = "gameState"
	MessageTypeDestination MessageType = "destinations"
	MessageTypeError       MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type MovePayload struct {
	Move string `json:"move"`
}

type SquarePayload struct {
	Square string `json:"square"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage marshals payload into a message of type t.
func NewMessage(t MessageType, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
