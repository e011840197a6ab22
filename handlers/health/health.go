package health

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/deptweb/site-api/database"
	"github.com/deptweb/site-api/utils/cache"
	"github.com/deptweb/site-api/utils/response"
)

// HealthHandler reports service liveness and dependency health
type HealthHandler struct {
	store     database.Storage
	gormStore *database.GORMStore
	cache     *cache.RedisCache
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store database.Storage, gormStore *database.GORMStore, redisCache *cache.RedisCache) *HealthHandler {
	return &HealthHandler{
		store:     store,
		gormStore: gormStore,
		cache:     redisCache,
	}
}

// HealthStatus is the shape of the health report
type HealthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
	Timestamp  time.Time         `json:"timestamp"`
}

// Ping handles GET /ping
func (h *HealthHandler) Ping(c *fiber.Ctx) error {
	return response.SuccessWithMessage(c, "pong")
}

// Health handles GET /health. Degraded dependencies are reported but do
// not fail the endpoint; orchestrators treat any 200 as alive.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	components := map[string]string{}
	status := "ok"

	if err := h.store.HealthCheck(); err != nil {
		components["database"] = "down"
		status = "degraded"
	} else {
		components["database"] = "ok"
	}

	if h.gormStore != nil {
		if err := h.gormStore.HealthCheck(); err != nil {
			components["accounts"] = "down"
			status = "degraded"
		} else {
			components["accounts"] = "ok"
		}
	}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if _, err := h.cache.Exists(ctx, "health:probe"); err != nil {
			components["cache"] = "down"
			status = "degraded"
		} else {
			components["cache"] = "ok"
		}
	}

	return response.Success(c, HealthStatus{
		Status:     status,
		Components: components,
		Timestamp:  time.Now(),
	})
}
