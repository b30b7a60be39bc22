package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/naacportal/api/database"
	"github.com/naacportal/api/utils/response"
)

// HandleCheckHealth reports whether the active store backend is reachable.
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		return response.InternalServerError(c, "Store unreachable", err)
	}
	return response.JSON(c, fiber.Map{"status": "ok"})
}
