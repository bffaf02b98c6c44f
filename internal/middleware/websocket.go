package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade admits upgrade requests for games that exist. It must run
// after EnsurePlayerID.
func WebSocketUpgrade(gameExists func(gameID string) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := c.Params("gameId")
		switch {
		case gameID == "":
			return reject(c, fiber.StatusBadRequest, "game ID is required")
		case !gameExists(gameID):
			return reject(c, fiber.StatusNotFound, "game not found")
		}
		if id, _ := c.Locals("playerID").(string); id == "" {
			return reject(c, fiber.StatusUnauthorized, "player ID is required")
		}
		return c.Next()
	}
}
