package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler serves the liveness and readiness probes. Mongo and Redis
// are optional demo backends; readiness only checks the ones in use.
type HealthHandler struct {
	mongo *mongo.Client
	redis *redis.Client
}

func NewHealthHandler(mongoClient *mongo.Client, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{mongo: mongoClient, redis: redisClient}
}

// Liveness handles GET /health — is the process alive?
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness handles GET /health/ready — are the configured dependencies up?
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if h.mongo != nil {
		if err := h.mongo.Ping(ctx, nil); err != nil {
			checks["mongo"] = "down"
			healthy = false
		} else {
			checks["mongo"] = "ok"
		}
	}
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "down"
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{"status": checks, "ready": healthy})
}
