package cron

import (
	"context"
	"log"
	"time"

	"github.com/naacportal/api/services"
)

// SnapshotDashboardStats recomputes the dashboard aggregates, logs a progress
// line, and warms the stats cache when Redis is available.
func (m *CronManager) SnapshotDashboardStats() {
	stats, err := m.stats.GetDashboardStats()
	if err != nil {
		log.Println("Stats snapshot failed:", err)
		return
	}

	log.Printf("Stats snapshot: %d entries, %d/7 criteria, %d%% overall, last updated %s",
		stats.TotalEntries, stats.CompletedCriteria, stats.OverallProgress, stats.LastUpdated)

	if m.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.cache.SetJSON(ctx, services.StatsCacheKey, stats, services.StatsCacheTTL); err != nil {
		log.Println("Failed to warm stats cache:", err)
	}
}
