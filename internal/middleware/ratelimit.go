// Package middleware holds Echo middleware shared across route groups.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimitConfig controls the per-IP token buckets.
type RateLimitConfig struct {
	// Rate is sustained requests per second per IP.
	Rate float64
	// Burst is the bucket size per IP.
	Burst int
	// CleanupInterval is how often idle limiters are purged.
	CleanupInterval time.Duration
	// IdleThreshold is how long a limiter may sit unused before purging.
	IdleThreshold time.Duration
}

// AuthRateLimitConfig returns the stricter limits applied to credential
// endpoints.
func AuthRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Rate:            1,
		Burst:           10,
		CleanupInterval: time.Hour,
		IdleThreshold:   time.Hour,
	}
}

// RateLimiter applies per-IP token bucket limiting. IP extraction relies on
// c.RealIP(); configure Echo's IPExtractor when running behind a proxy.
type RateLimiter struct {
	limiters sync.Map // IP address -> *limiterEntry
	logger   *slog.Logger
	config   RateLimitConfig
	cancel   context.CancelFunc
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess atomic.Int64 // Unix seconds
}

// NewRateLimiter creates a rate limiter and starts its cleanup goroutine.
// Call Shutdown during graceful shutdown.
func NewRateLimiter(logger *slog.Logger, config RateLimitConfig) *RateLimiter {
	ctx, cancel := context.WithCancel(context.Background())
	rl := &RateLimiter{
		logger: logger,
		config: config,
		cancel: cancel,
	}
	go rl.cleanupLoop(ctx)
	return rl
}

// Middleware returns the Echo middleware applying the limit.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			if !rl.limiterFor(ip).Allow() {
				rl.logger.Warn("rate limit exceeded",
					slog.String("ip", ip),
					slog.String("path", c.Path()),
					slog.String("method", c.Request().Method))

				c.Response().Header().Set("Retry-After", "1")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}

// Shutdown stops the cleanup goroutine.
func (rl *RateLimiter) Shutdown() {
	rl.cancel()
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	if entry, ok := rl.limiters.Load(ip); ok {
		e := entry.(*limiterEntry)
		e.lastAccess.Store(time.Now().Unix())
		return e.limiter
	}

	entry := &limiterEntry{
		limiter: rate.NewLimiter(rate.Limit(rl.config.Rate), rl.config.Burst),
	}
	entry.lastAccess.Store(time.Now().Unix())
	actual, _ := rl.limiters.LoadOrStore(ip, entry)
	return actual.(*limiterEntry).limiter
}

func (rl *RateLimiter) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-rl.config.IdleThreshold).Unix()
			rl.limiters.Range(func(key, value any) bool {
				if value.(*limiterEntry).lastAccess.Load() < cutoff {
					rl.limiters.Delete(key)
				}
				return true
			})
		}
	}
}
