package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	idempotencyCacheKey = "idempotency_cache_key"
	idempotencyLockKey  = "idempotency_lock_key"

	idempotencyLockTTL   = 30 * time.Second
	idempotencyResultTTL = 24 * time.Hour
)

// Idempotency replays the stored result of a POST that carried the same
// Idempotency-Key for the same employee, and rejects concurrent duplicates
// while the first one is still running. Handlers finish the protocol with
// SaveIdempotentResult and ReleaseIdempotencyLock.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		employeeID := c.GetString("employee_id")

		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), employeeID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached json.RawMessage = []byte(val)
			c.Header("Idempotent-Replay", "true")
			response.Success(c, http.StatusCreated, cached, nil)
			c.Abort()
			return
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			// Redis is an optimisation here; the database still guards overlap.
			zap.L().Named("middleware.idempotency").Warn("idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}

		if !isNew {
			response.Abort(c, http.StatusConflict, "PROCESSING", "A request with this Idempotency-Key is still being processed")
			return
		}

		c.Set(idempotencyCacheKey, cacheKey)
		c.Set(idempotencyLockKey, lockKey)

		c.Next()
	}
}

// SaveIdempotentResult stores data for replay when the request carried an
// Idempotency-Key. Failures are logged, never returned.
func SaveIdempotentResult(c *gin.Context, rdb *redis.Client, data any) {
	cacheKey := c.GetString(idempotencyCacheKey)
	if rdb == nil || cacheKey == "" {
		return
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := rdb.Set(c.Request.Context(), cacheKey, payload, idempotencyResultTTL).Err(); err != nil {
		zap.L().Named("middleware.idempotency").Warn("idempotency result store failed", zap.Error(err))
	}
}

// ReleaseIdempotencyLock drops the in-flight marker. Safe to defer.
func ReleaseIdempotencyLock(c *gin.Context, rdb *redis.Client) {
	lockKey := c.GetString(idempotencyLockKey)
	if rdb == nil || lockKey == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 2*time.Second)
	defer cancel()
	_ = rdb.Del(ctx, lockKey).Err()
}
