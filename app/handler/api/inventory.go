package handler

import (
	"log/slog"

	"inventory-service/app/domain"
	"inventory-service/app/handler/api/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	inventoryUsecase domain.InventoryService
	validator        *validator.Validate
}

func NewInventoryHandler(inventoryUsecase domain.InventoryService, validator *validator.Validate) *InventoryHandler {
	return &InventoryHandler{
		inventoryUsecase: inventoryUsecase,
		validator:        validator,
	}
}

func (h *InventoryHandler) Send(c *fiber.Ctx) error {
	var req domain.SendInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		slog.ErrorContext(c.Context(), "[inventoryHandler] Send", "bodyParser", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrBadRequest))
	}

	if err := h.validator.Struct(req); err != nil {
		slog.ErrorContext(c.Context(), "[inventoryHandler] Send", "validation", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrValidation))
	}

	result, err := h.inventoryUsecase.Send(c.Context(), req)
	if err != nil {
		slog.ErrorContext(c.Context(), "[inventoryHandler] Send", "usecase", err)
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	status := fiber.StatusAccepted
	if !result.Success {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(result)
}
