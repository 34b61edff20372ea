package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// StorePinger is the slice of the object store the readiness probe needs.
type StorePinger interface {
	Ping(ctx context.Context) error
}

const (
	statusUp       = "up"
	statusDown     = "down"
	statusDisabled = "disabled"
)

// checkResult is one dependency's line in the readiness report.
type checkResult struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type HealthHandler struct {
	pool    *pgxpool.Pool
	rdb     *redis.Client
	store   StorePinger
	startAt time.Time
}

func NewHealthHandler(pool *pgxpool.Pool, rdb *redis.Client, store StorePinger) *HealthHandler {
	return &HealthHandler{
		pool:    pool,
		rdb:     rdb,
		store:   store,
		startAt: time.Now(),
	}
}

// Live handles GET /health/live — liveness probe.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready. The database and the media store are
// hard dependencies: votes and submissions both fail without them. Redis
// only backs the cache, so losing it degrades latency, not correctness.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	db := runCheck(ctx, h.pool.Ping)
	store := runCheck(ctx, h.store.Ping)

	cache := checkResult{Status: statusDisabled}
	if h.rdb != nil {
		cache = runCheck(ctx, func(ctx context.Context) error {
			return h.rdb.Ping(ctx).Err()
		})
	}

	status, code := summarize(db, store, cache)

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": fiber.Map{
			"database": db,
			"storage":  store,
			"redis":    cache,
		},
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
	})
}

func runCheck(ctx context.Context, ping func(context.Context) error) checkResult {
	start := time.Now()
	err := ping(ctx)
	res := checkResult{Status: statusUp, LatencyMS: time.Since(start).Milliseconds()}
	if err != nil {
		res.Status = statusDown
		res.Error = "connection failed"
	}
	return res
}

// summarize folds the dependency checks into an overall status and HTTP
// code: a hard dependency down means unhealthy and 503, a cache outage
// alone means degraded but still serving.
func summarize(db, store, cache checkResult) (string, int) {
	if db.Status == statusDown || store.Status == statusDown {
		return "unhealthy", fiber.StatusServiceUnavailable
	}
	if cache.Status == statusDown {
		return "degraded", fiber.StatusOK
	}
	return "healthy", fiber.StatusOK
}
