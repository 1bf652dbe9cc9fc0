package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"clothing-store/metrics"
	"clothing-store/models"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const msgTooManyRequests = "Too many requests, please try again later."

// WindowCounter counts hits for key inside the fixed window that contains
// now and returns the running total.
type WindowCounter interface {
	Hit(ctx context.Context, key string, window time.Duration, now time.Time) (int64, error)
}

type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (r *RedisCounter) Hit(ctx context.Context, key string, window time.Duration, now time.Time) (int64, error) {
	slot := now.UnixNano() / int64(window)
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, slot)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

type memoryWindow struct {
	slot  int64
	count int64
}

// MemoryCounter keeps windows in process. Each replica counts on its own.
type MemoryCounter struct {
	mu      sync.Mutex
	windows map[string]memoryWindow
	sweepAt time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{windows: make(map[string]memoryWindow)}
}

func (m *MemoryCounter) Hit(_ context.Context, key string, window time.Duration, now time.Time) (int64, error) {
	slot := now.UnixNano() / int64(window)

	m.mu.Lock()
	defer m.mu.Unlock()

	if now.After(m.sweepAt) {
		for k, w := range m.windows {
			if w.slot < slot {
				delete(m.windows, k)
			}
		}
		m.sweepAt = now.Add(window)
	}

	w := m.windows[key]
	if w.slot != slot {
		w = memoryWindow{slot: slot}
	}
	w.count++
	m.windows[key] = w
	return w.count, nil
}

// RateLimit allows limit requests per client IP per window on the named
// route. When the counter backend fails the request is let through.
func RateLimit(counter WindowCounter, route string, limit int, window time.Duration, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}

		key := route + ":" + c.ClientIP()
		count, err := counter.Hit(c.Request.Context(), key, window, time.Now())
		if err != nil {
			log.WithError(err).WithField("route", route).Warn("Rate limit counter unavailable")
			c.Next()
			return
		}

		if count > int64(limit) {
			metrics.BotGateRejected(route, "rate_limit")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Success: false,
				Error:   msgTooManyRequests,
			})
			return
		}
		c.Next()
	}
}
