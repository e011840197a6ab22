package app

import (
	"fmt"
	"log"
	"os"

	"github.com/deptweb/site-api/api"
	"github.com/deptweb/site-api/config"
	"github.com/deptweb/site-api/database"
	"github.com/deptweb/site-api/router"
	"github.com/deptweb/site-api/services/cron"
	"github.com/deptweb/site-api/services/spaces"
	"github.com/deptweb/site-api/utils/cache"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Content store: raw SQL over lib/pq
	store, err := database.Start()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	// Account store: GORM over the same database
	gormStore, err := database.StartGORM()
	if err != nil {
		return err
	}

	if err := gormStore.Init(); err != nil {
		print("Failed to run account migrations\n")
		return err
	}

	// Redis is optional: without it brute force protection and the
	// navigation cache are disabled, nothing else changes.
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v. Cache and brute force protection disabled.", err)
			redisCache = nil
		}
	}

	// Object storage is optional: without it uploads return an error.
	var spacesClient *spaces.Client
	if getEnv.SPACES_ACCESS_KEY != "" && getEnv.SPACES_BUCKET != "" {
		spacesClient, err = spaces.NewClient(spaces.Config{
			AccessKey: getEnv.SPACES_ACCESS_KEY,
			SecretKey: getEnv.SPACES_SECRET_KEY,
			Bucket:    getEnv.SPACES_BUCKET,
			Region:    getEnv.SPACES_REGION,
			Endpoint:  getEnv.SPACES_ENDPOINT,
			CDNURL:    getEnv.SPACES_CDN_URL,
		})
		if err != nil {
			log.Printf("Warning: Failed to create storage client: %v. Uploads disabled.", err)
			spacesClient = nil
		}
	}

	// Cron jobs (enabled by default)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" {
		cronManager = cron.NewCronManager(gormStore.GetDB(), store, redisCache)
		if err := cronManager.Start(); err != nil {
			log.Printf("Warning: Failed to start cron jobs: %v", err)
		}
	}

	// Defer closing stores and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if redisCache != nil {
			redisCache.Close()
		}
		gormStore.Close()
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Routes (security middleware attaches inside)
	router.SetupRoutes(app, store, gormStore, redisCache, spacesClient)

	// Get the PORT & Start the Server
	return server.Run()
}
