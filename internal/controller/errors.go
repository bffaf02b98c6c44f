package controller

import (
	"errors"

	"github.com/benbeisheim/capturechess-backend/internal/model"
	"github.com/benbeisheim/capturechess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrConversion):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrInvalidMove), errors.Is(err, model.ErrNoPiece):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, model.ErrNotSeated):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotYourTurn), errors.Is(err, model.ErrGameOver), errors.Is(err, model.ErrGameFull):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func sendError(c *fiber.Ctx, err error) error {
	body := fiber.Map{"error": err.Error()}
	var invalid *model.InvalidMoveError
	if errors.As(err, &invalid) {
		body["reason"] = invalid.Reason
	}
	return c.Status(statusFor(err)).JSON(body)
}
