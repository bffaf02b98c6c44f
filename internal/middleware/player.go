package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const maxPlayerIDLength = 128

// EnsurePlayerID reads the caller's player id from the X-Player-ID header or
// the playerId query parameter and stores it in Locals("playerID").
// Browsers cannot set headers on a websocket handshake, hence the query.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, _ := c.Locals("playerID").(string); id != "" {
			return c.Next()
		}

		playerID := strings.TrimSpace(c.Get("X-Player-ID"))
		if playerID == "" {
			playerID = strings.TrimSpace(c.Query("playerId"))
		}
		switch {
		case playerID == "":
			return reject(c, fiber.StatusUnauthorized, "Player ID is required. Please ensure client is properly initialized.")
		case len(playerID) > maxPlayerIDLength:
			return reject(c, fiber.StatusBadRequest, "player ID is too long")
		}

		c.Locals("playerID", playerID)
		return c.Next()
	}
}

func reject(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
