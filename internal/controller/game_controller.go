package controller

import (
	"github.com/benbeisheim/capturechess-backend/internal/model"
	"github.com/benbeisheim/capturechess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	EngineColor model.Color `json:"engineColor"`
	Depth       int         `json:"depth"`
	Noise       float64     `json:"noise"`
	FEN         string      `json:"fen"`
}

type moveRequest struct {
	Move string `json:"move"`
}

// Register mounts the game routes on router.
func (gc *GameController) Register(router fiber.Router) {
	router.Post("/create", gc.CreateGame)
	router.Post("/join/:gameId", gc.JoinGame)
	router.Get("/:gameId", gc.GetGameState)
	router.Get("/:gameId/fen", gc.GetFEN)
	router.Get("/:gameId/squares/:square", gc.QuerySquare)
	router.Post("/:gameId/move", gc.MakeMove)
	router.Post("/:gameId/engine", gc.EngineMove)
	router.Post("/:gameId/reset", gc.ResetGame)
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	game, err := gc.gameService.CreateGame(service.CreateOptions{
		EngineColor: req.EngineColor,
		Depth:       req.Depth,
		Noise:       req.Noise,
		FEN:         req.FEN,
	})
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": game.ID,
		"name":    game.Name,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals("playerID").(string)
	if playerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "player ID is required",
		})
	}

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) GetFEN(c *fiber.Ctx) error {
	fen, err := gc.gameService.GetFEN(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{"fen": fen})
}

func (gc *GameController) QuerySquare(c *fiber.Ctx) error {
	info, err := gc.gameService.QuerySquare(c.Params("gameId"), c.Params("square"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(info)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	playerID, _ := c.Locals("playerID").(string)

	result, err := gc.gameService.HandleMove(c.Params("gameId"), playerID, req.Move)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(result)
}

func (gc *GameController) EngineMove(c *fiber.Ctx) error {
	result, err := gc.gameService.HandleEngineMove(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(result)
}

func (gc *GameController) ResetGame(c *fiber.Ctx) error {
	state, err := gc.gameService.ResetGame(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}
