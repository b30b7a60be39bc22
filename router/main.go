package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/naacportal/api/config"
	"github.com/naacportal/api/database"
	"github.com/naacportal/api/handlers"
	entry_handlers "github.com/naacportal/api/handlers/entry"
	settings_handlers "github.com/naacportal/api/handlers/settings"
	stats_handlers "github.com/naacportal/api/handlers/stats"
	"github.com/naacportal/api/utils/cache"
	"github.com/naacportal/api/utils/middleware"
)

// SetupRoutes wires middleware and the portal's REST surface. statsCache may
// be nil when Redis is not configured.
func SetupRoutes(app *fiber.App, store database.Storage, getEnv *config.EnviornmentVariable, statsCache *cache.RedisCache) {
	allowedOrigins := getEnv.ALLOWED_ORIGINS
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check endpoint
	app.Get("/ping", func(c *fiber.Ctx) error {
		return handlers.HandleCheckHealth(c, store)
	})

	// Entry routes
	entryHandler := entry_handlers.NewEntryHandler(store, statsCache)
	entries := app.Group("/api/entries")
	entries.Get("/", entryHandler.ListEntries)
	entries.Get("/export", entryHandler.ExportEntries)
	entries.Post("/", entryHandler.CreateEntry)
	entries.Delete("/:id", entryHandler.DeleteEntry)
	entries.Delete("/", entryHandler.ClearEntries)

	// Settings routes
	settingsHandler := settings_handlers.NewSettingsHandler(store)
	app.Get("/api/settings", settingsHandler.GetSettings)
	app.Put("/api/settings", settingsHandler.UpdateSettings)

	// Dashboard stats
	statsHandler := stats_handlers.NewStatsHandler(store, statsCache)
	app.Get("/api/stats", statsHandler.GetDashboardStats)
}
