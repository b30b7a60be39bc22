package settings

import (
	"github.com/gofiber/fiber/v2"
	"github.com/naacportal/api/database"
	"github.com/naacportal/api/model"
	"github.com/naacportal/api/utils/response"
)

// SettingsHandler handles default-value settings requests
type SettingsHandler struct {
	store database.Storage
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(store database.Storage) *SettingsHandler {
	return &SettingsHandler{store: store}
}

// GetSettings handles GET /api/settings. An unwritten singleton reads as
// zero-valued defaults, never as a not-found condition.
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	setting, err := h.store.GetSettings()
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch settings", err)
	}
	return response.JSON(c, setting)
}

// UpdateSettings handles PUT /api/settings. The payload is a shallow merge:
// fields absent from the body keep their stored values.
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var patch model.SettingPatch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Failed to update settings", err)
	}

	setting, err := h.store.UpdateSettings(patch)
	if err != nil {
		return response.BadRequest(c, "Failed to update settings", err)
	}
	return response.JSON(c, setting)
}
