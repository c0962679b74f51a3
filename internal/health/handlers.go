package health

import (
	"context"
	"fmt"
	"time"

	"torgi-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handlers holds dependencies for the health endpoints.
type Handlers struct {
	Rdb      *redis.Client
	DB       *gorm.DB
	AdminKey string
}

// JSON GET /health/json — service status, dependency pings, traffic counters.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	deps := fiber.Map{
		"postgres": pingDB(h.DB),
		"redis":    pingRedis(ctx, h.Rdb),
	}
	status := "ok"
	for _, v := range deps {
		if v != "ok" {
			status = "degraded"
		}
	}
	return c.JSON(fiber.Map{
		"service":      "torgi-api",
		"status":       status,
		"time":         time.Now().UTC(),
		"dependencies": deps,
		"traffic":      h.traffic(ctx),
	})
}

// Reset POST /health/reset?key= — clears the Redis traffic counters.
// Requires the configured admin key.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	key := c.Query("key")
	if h.AdminKey == "" || key != h.AdminKey {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	if h.Rdb != nil {
		h.Rdb.Del(context.Background(),
			middleware.KeyReqTotal,
			middleware.KeyReqErrors,
			middleware.KeyResTime,
			middleware.KeyResCount,
			middleware.KeyLastReq,
		)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *Handlers) traffic(ctx context.Context) fiber.Map {
	if h.Rdb == nil {
		return fiber.Map{}
	}
	total, _ := h.Rdb.Get(ctx, middleware.KeyReqTotal).Int64()
	errs, _ := h.Rdb.Get(ctx, middleware.KeyReqErrors).Int64()
	resTime, _ := h.Rdb.Get(ctx, middleware.KeyResTime).Float64()
	resCount, _ := h.Rdb.Get(ctx, middleware.KeyResCount).Int64()

	avg := "n/a"
	if resCount > 0 {
		avg = fmt.Sprintf("%.1fms", resTime/float64(resCount))
	}
	return fiber.Map{
		"totalRequests":   total,
		"failedCount":     errs,
		"avgResponseTime": avg,
	}
}

func pingDB(db *gorm.DB) string {
	if db == nil {
		return "not configured"
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err.Error()
	}
	if err := sqlDB.Ping(); err != nil {
		return err.Error()
	}
	return "ok"
}

func pingRedis(ctx context.Context, rdb *redis.Client) string {
	if rdb == nil {
		return "not configured"
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		return err.Error()
	}
	return "ok"
}
