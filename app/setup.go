package app

import (
	"fmt"
	"log"
	"os"

	"github.com/naacportal/api/api"
	"github.com/naacportal/api/config"
	"github.com/naacportal/api/database"
	"github.com/naacportal/api/router"
	"github.com/naacportal/api/services/cron"
	"github.com/naacportal/api/utils/cache"
)

// SetupAndRunServer loads config, starts the selected store backend, wires
// routes and background jobs, and runs the HTTP server. A store that cannot
// be reached at startup is fatal; the portal never serves degraded responses.
func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Start the configured store backend
	store, err := startStore(getEnv)
	if err != nil {
		return err
	}

	if err := store.Init(); err != nil {
		log.Println("Failed to initialize store:", err)
		return err
	}

	// Optional dashboard stats cache
	var statsCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		statsCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: failed to connect to Redis: %v. Stats caching disabled.", err)
			statsCache = nil
		}
	}

	// Scheduled stats snapshots (enabled by default)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" {
		cronManager = cron.NewCronManager(store, statsCache)
		if err := cronManager.Start(); err != nil {
			log.Println("Warning: failed to start cron jobs:", err)
		}
	}

	// Defer closing store, cache, and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if statsCache != nil {
			statsCache.Close()
		}
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Routes
	router.SetupRoutes(app, store, getEnv, statsCache)

	// Get the PORT & Start the Server
	return server.Run()
}

// startStore selects the backend from STORE_DRIVER: "postgres" (default) or
// "local" for the JSON file fallback.
func startStore(getEnv *config.EnviornmentVariable) (database.Storage, error) {
	switch getEnv.STORE_DRIVER {
	case "local":
		return database.StartLocal(getEnv.DATA_DIR)
	case "postgres":
		store, err := database.StartGORM()
		if err != nil {
			print("Check whether the Postgres is running or not\n")
		}
		return store, err
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", getEnv.STORE_DRIVER)
	}
}
