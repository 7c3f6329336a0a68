package health

import (
	"context"
	"time"

	"gavel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handlers struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// JSON GET /health/json: liveness with DB/Redis ping status.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	dbStatus := "not configured"
	if h.DB != nil {
		dbStatus = "ok"
		if sqlDB, err := h.DB.DB(); err != nil {
			dbStatus = err.Error()
		} else if err := sqlDB.Ping(); err != nil {
			dbStatus = err.Error()
		}
	}
	redisStatus := "not configured"
	if h.Rdb != nil {
		redisStatus = "ok"
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := h.Rdb.Ping(ctx).Err(); err != nil {
			redisStatus = err.Error()
		}
	}
	return response.Success(c, "Health", fiber.Map{
		"uptime_ok": true,
		"database":  dbStatus,
		"redis":     redisStatus,
	}, nil)
}
