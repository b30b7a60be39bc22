package stats

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/naacportal/api/database"
	"github.com/naacportal/api/services"
	"github.com/naacportal/api/utils/cache"
	"github.com/naacportal/api/utils/response"
)

// StatsHandler serves the dashboard aggregates
type StatsHandler struct {
	stats      *services.StatsService
	statsCache *cache.RedisCache
}

// NewStatsHandler creates a new stats handler. statsCache may be nil, in
// which case every request recomputes from the store.
func NewStatsHandler(store database.Storage, statsCache *cache.RedisCache) *StatsHandler {
	return &StatsHandler{
		stats:      services.NewStatsService(store),
		statsCache: statsCache,
	}
}

// GetDashboardStats handles GET /api/stats
func (h *StatsHandler) GetDashboardStats(c *fiber.Ctx) error {
	if h.statsCache != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		var cached services.DashboardStats
		if err := h.statsCache.GetJSON(ctx, services.StatsCacheKey, &cached); err == nil {
			return response.JSON(c, cached)
		}
	}

	stats, err := h.stats.GetDashboardStats()
	if err != nil {
		return response.InternalServerError(c, "Failed to compute stats", err)
	}

	if h.statsCache != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		_ = h.statsCache.SetJSON(ctx, services.StatsCacheKey, stats, services.StatsCacheTTL)
	}

	return response.JSON(c, stats)
}
