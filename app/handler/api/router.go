package handler

import (
	"inventory-service/app/middleware"
	"inventory-service/config"

	"github.com/gofiber/fiber/v2"
)

func SetupRouter(app *fiber.App, productHandler *ProductHandler, inventoryHandler *InventoryHandler, cfg *config.Config) {

	api := app.Group("/inventory-service")

	api.Post("/products", productHandler.Create)
	api.Get("/products/:code/:supplier/:expiration_date", productHandler.Get)
	api.Put("/products", productHandler.Update)

	api.Post("/inventory", inventoryHandler.Send)

	internal := app.Group("/internal/inventory-service").Use(middleware.AuthInternal(cfg))
	internal.Delete("/products/:code/:supplier/:expiration_date", productHandler.Delete)
}
