package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dushyanth88/Attendance-project-sub001/pkg/redis"
	"github.com/dushyanth88/Attendance-project-sub001/pkg/response"
)

// RateLimit bounds requests per client IP over a sliding window.
// Applied to the auth endpoints to slow credential stuffing. A nil rdb
// disables limiting; Redis failures fail open.
func RateLimit(rdb *redis.Client, logger *zap.Logger, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), c.ClientIP())
		ok, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			response.Error(c, 429, 10004, "too many requests, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}
