package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"portfolio-service/internal/usecase/crud"
)

// tokenBucket refills a bucket of capacity ARGV[2] at ARGV[1] tokens per
// second and takes one token from it. Returns 1 when a token was taken.
var tokenBucket = redis.NewScript(`
	local key = KEYS[1]
	local rate = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])
	local ttl = tonumber(ARGV[4])

	local bucket = redis.call('HMGET', key, 'last_refill', 'tokens')
	local last_refill = tonumber(bucket[1]) or now
	local tokens = tonumber(bucket[2]) or capacity

	local elapsed = math.max(0, now - last_refill)
	tokens = math.min(capacity, tokens + elapsed * rate)

	local allowed = 0
	if tokens >= 1 then
		tokens = tokens - 1
		allowed = 1
	end

	redis.call('HMSET', key, 'last_refill', now, 'tokens', tokens)
	redis.call('EXPIRE', key, ttl)
	return allowed
`)

// RateLimiterConfig holds configuration for the rate limiter.
type RateLimiterConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	Burst             int
}

// RateLimiter limits requests per client IP and route with a token bucket
// kept in Redis.
type RateLimiter struct {
	client redis.UniversalClient
	config RateLimiterConfig
	log    *zap.Logger
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(client redis.UniversalClient, config RateLimiterConfig, log *zap.Logger) *RateLimiter {
	return &RateLimiter{client: client, config: config, log: log}
}

// Middleware returns the gin middleware. Redis errors let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || !rl.config.Enabled || rl.client == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		clientIP := c.ClientIP()
		key := fmt.Sprintf("ratelimit:tb:%s:%s:%s", c.Request.Method, c.FullPath(), clientIP)

		now, err := rl.client.Time(ctx).Result()
		if err != nil {
			rl.log.Warn("rate limiter redis error, allowing request", zap.String("client_ip", clientIP), zap.Error(err))
			c.Next()
			return
		}

		allowed, err := tokenBucket.Run(ctx, rl.client, []string{key},
			rl.config.RequestsPerSecond,
			rl.config.Burst,
			float64(now.UnixMicro())/float64(time.Second/time.Microsecond),
			rl.bucketTTL(),
		).Int64()
		if err != nil {
			rl.log.Warn("rate limiter redis error, allowing request", zap.String("client_ip", clientIP), zap.Error(err))
			c.Next()
			return
		}

		if allowed == 0 {
			rl.log.Warn("rate limit exceeded", zap.String("client_ip", clientIP), zap.String("key", key))
			resp := crud.NewFailure(crud.StatusTooManyRequests,
				fmt.Sprintf("rate limit exceeded: %.2f requests/second (burst capacity: %d)", rl.config.RequestsPerSecond, rl.config.Burst))
			c.AbortWithStatusJSON(resp.StatusCode(), resp.Body())
			return
		}

		c.Next()
	}
}

// bucketTTL is how long an idle bucket takes to fill up, at least a minute.
func (rl *RateLimiter) bucketTTL() int {
	ttl := 60
	if rl.config.RequestsPerSecond > 0 {
		if fill := int(float64(rl.config.Burst)/rl.config.RequestsPerSecond) + 1; fill > ttl {
			ttl = fill
		}
	}
	return ttl
}
