package cron

import (
	"log"

	"github.com/naacportal/api/database"
	"github.com/naacportal/api/services"
	"github.com/naacportal/api/utils/cache"
	"github.com/robfig/cron/v3"
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron  *cron.Cron
	stats *services.StatsService
	cache *cache.RedisCache
}

// NewCronManager creates a new cron manager. The cache may be nil when Redis
// is not configured; jobs then only log their snapshot.
func NewCronManager(store database.Storage, statsCache *cache.RedisCache) *CronManager {
	return &CronManager{
		cron:  cron.New(),
		stats: services.NewStatsService(store),
		cache: statsCache,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Every 15 minutes: snapshot dashboard stats and warm the cache
	_, err := m.cron.AddFunc("*/15 * * * *", m.SnapshotDashboardStats)
	return err
}
