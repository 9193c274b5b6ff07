package middleware

import (
	"log/slog"
	"inventory-service/pkg/ctxutil"

	"github.com/gofiber/fiber/v2"
	"github.com/gofrs/uuid/v5"
)

func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get("X-Request-ID")
		if reqID == "" {
			uuidV4, err := uuid.NewV4()
			if err != nil {
				// leave the request untagged rather than stamping the
				// zero-value UUID
				slog.WarnContext(c.Context(), "[RequestIDMiddleware] Error generating UUID", "error", err)
			} else {
				reqID = uuidV4.String()
			}
		}
		if reqID != "" {
			c.Locals(ctxutil.RequestIDKey, reqID)
		}
		return c.Next()
	}
}
