package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	known := func(gameID string) bool { return gameID == "known" }
	app.Get("/ws/game/:gameId", EnsurePlayerID(), WebSocketUpgrade(known), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("playerID").(string))
	})
	app.Get("/whoami", EnsurePlayerID(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("playerID").(string))
	})
	return app
}

func status(t *testing.T, app *fiber.App, req *http.Request) int {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s: %v", req.URL, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func upgradeRequest(path string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	return req
}

func TestEnsurePlayerID(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{name: "header", header: "alice", want: fiber.StatusOK},
		{name: "query", query: "?playerId=bob", want: fiber.StatusOK},
		{name: "missing", want: fiber.StatusUnauthorized},
		{name: "blank", header: "   ", want: fiber.StatusUnauthorized},
		{name: "too long", header: strings.Repeat("x", maxPlayerIDLength+1), want: fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/whoami"+tt.query, nil)
		if tt.header != "" {
			req.Header.Set("X-Player-ID", tt.header)
		}
		if got := status(t, app, req); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestWebSocketUpgrade(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name string
		req  *http.Request
		want int
	}{
		{
			name: "plain request",
			req:  httptest.NewRequest(http.MethodGet, "/ws/game/known?playerId=alice", nil),
			want: fiber.StatusUpgradeRequired,
		},
		{
			name: "unknown game",
			req:  upgradeRequest("/ws/game/missing?playerId=alice"),
			want: fiber.StatusNotFound,
		},
		{
			name: "known game",
			req:  upgradeRequest("/ws/game/known?playerId=alice"),
			want: fiber.StatusOK,
		},
		{
			name: "no player",
			req:  upgradeRequest("/ws/game/known"),
			want: fiber.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		if got := status(t, app, tt.req); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}
