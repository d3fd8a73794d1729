package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/estamp/internal/pkg/constants"
	"github.com/piresc/estamp/internal/pkg/logger"
	"github.com/piresc/estamp/internal/utils"
)

// RateLimiterConfig contains configuration for the rate limiter
type RateLimiterConfig struct {
	RedisClient *redis.Client
	Key         string        // Resource prefix, combined with the route path
	Limit       int           // Maximum number of requests per period
	Period      time.Duration // Fixed window length
}

// RateLimiterMiddleware counts requests per route and client in a fixed
// Redis window and answers 429 once the limit is passed
func RateLimiterMiddleware(config RateLimiterConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if config.Limit <= 0 {
			return next
		}

		return func(c echo.Context) error {
			identifier := c.RealIP()
			if userID, ok := c.Get(logger.UserIDKey).(string); ok && userID != "" {
				identifier = userID
			}
			key := fmt.Sprintf(constants.KeyRateLimit, config.Key+c.Path(), identifier)
			ctx := c.Request().Context()

			n, err := config.RedisClient.Incr(ctx, key).Result()
			if err == nil && n == 1 {
				err = config.RedisClient.Expire(ctx, key, config.Period).Err()
			}
			if err != nil {
				logger.Error("Rate limiter unavailable", logger.String("key", key), logger.Err(err))
				return utils.InternalServerErrorResponse(c, "Rate limiter error")
			}

			count := int(n)
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Limit))

			if count > config.Limit {
				ttl, err := config.RedisClient.TTL(ctx, key).Result()
				if err != nil || ttl < 0 {
					ttl = config.Period
				}
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				c.Response().Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))
				c.Response().Header().Set("Retry-After", strconv.FormatInt(int64(ttl.Seconds()), 10))
				return utils.TooManyRequestsResponse(c, "Too many requests. Please try again later.")
			}

			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(config.Limit-count))
			return next(c)
		}
	}
}

// IPRateLimiter limits requests per client IP
func IPRateLimiter(limit int, period time.Duration, redisClient *redis.Client) echo.MiddlewareFunc {
	return RateLimiterMiddleware(RateLimiterConfig{
		RedisClient: redisClient,
		Key:         "ip",
		Limit:       limit,
		Period:      period,
	})
}
