package health

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handlers serves the liveness endpoint.
type Handlers struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// Status GET /api/health — overall status plus per-dependency state.
func (h *Handlers) Status(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	deps := fiber.Map{
		"database": depStatus(h.pingDB()),
		"redis":    depStatus(h.pingRedis(ctx)),
	}
	status := "ok"
	for _, v := range deps {
		if v != "connected" {
			status = "degraded"
		}
	}
	return c.JSON(fiber.Map{
		"status":       status,
		"dependencies": deps,
	})
}

func (h *Handlers) pingDB() error {
	if h.DB == nil {
		return errNotConfigured
	}
	sqlDB, err := h.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (h *Handlers) pingRedis(ctx context.Context) error {
	if h.Rdb == nil {
		return errNotConfigured
	}
	return h.Rdb.Ping(ctx).Err()
}

var errNotConfigured = fiber.NewError(fiber.StatusServiceUnavailable, "not configured")

func depStatus(err error) string {
	if err != nil {
		return "disconnected"
	}
	return "connected"
}
