package handler

import (
	"log/slog"
	"time"

	"inventory-service/app/domain"
	"inventory-service/app/handler/api/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const expirationDateLayout = "2006-01-02"

type ProductHandler struct {
	productUsecase domain.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productUsecase domain.ProductService, validator *validator.Validate) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		validator:      validator,
	}
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req domain.ProductCreateRequest
	if err := c.BodyParser(&req); err != nil {
		slog.ErrorContext(c.Context(), "[productHandler] Create", "bodyParser", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrBadRequest))
	}

	if err := h.validator.Struct(req); err != nil {
		slog.ErrorContext(c.Context(), "[productHandler] Create", "validation", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrValidation))
	}

	product, err := h.productUsecase.Create(c.Context(), req)
	if err != nil {
		slog.ErrorContext(c.Context(), "[productHandler] Create", "usecase", err)
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusCreated).JSON(response.Success(product))
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	code, supplier, expirationDate, err := productParams(c)
	if err != nil {
		slog.ErrorContext(c.Context(), "[productHandler] Get", "params", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrBadRequest))
	}

	product, err := h.productUsecase.Get(c.Context(), code, supplier, expirationDate)
	if err != nil {
		slog.ErrorContext(c.Context(), "[productHandler] Get", "usecase", err)
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusOK).JSON(response.Success(product))
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var req domain.ProductUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		slog.ErrorContext(c.Context(), "[productHandler] Update", "bodyParser", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrBadRequest))
	}

	if err := h.validator.Struct(req); err != nil {
		slog.ErrorContext(c.Context(), "[productHandler] Update", "validation", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrValidation))
	}

	product, err := h.productUsecase.Update(c.Context(), req)
	if err != nil {
		slog.ErrorContext(c.Context(), "[productHandler] Update", "usecase", err)
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusOK).JSON(response.Success(product))
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	code, supplier, expirationDate, err := productParams(c)
	if err != nil {
		slog.ErrorContext(c.Context(), "[productHandler] Delete", "params", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrBadRequest))
	}

	key, err := h.productUsecase.Delete(c.Context(), code, supplier, expirationDate)
	if err != nil {
		slog.ErrorContext(c.Context(), "[productHandler] Delete", "usecase", err)
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusOK).JSON(response.Success(fiber.Map{"key": key}))
}

func productParams(c *fiber.Ctx) (code, supplier string, expirationDate time.Time, err error) {
	code = c.Params("code")
	supplier = c.Params("supplier")
	expirationDate, err = time.Parse(expirationDateLayout, c.Params("expiration_date"))
	if err != nil {
		return "", "", time.Time{}, err
	}
	if code == "" || supplier == "" {
		return "", "", time.Time{}, domain.ErrBadRequest
	}
	return code, supplier, expirationDate, nil
}
