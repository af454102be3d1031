package handlers

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"election-management-backend/cache"

	"github.com/gin-gonic/gin"
)

// 全局限流器
var (
	globalLimiter    cache.RateLimiter
	rateLimitEnabled bool
)

// InitRateLimiters 初始化限流器，配置从环境变量读取
func InitRateLimiters() {
	if os.Getenv("ENABLE_RATE_LIMIT") == "true" {
		rateLimitEnabled = true
	}

	globalRate := 100
	globalBurst := 200
	if s := os.Getenv("GLOBAL_RATE_LIMIT"); s != "" {
		if r, err := strconv.Atoi(s); err == nil && r > 0 {
			globalRate = r
		}
	}
	if s := os.Getenv("GLOBAL_RATE_BURST"); s != "" {
		if b, err := strconv.Atoi(s); err == nil && b > 0 {
			globalBurst = b
		}
	}

	// Redis可用时使用共享令牌桶，否则退化为进程内限流
	globalLimiter = cache.NewRateLimiter("global", globalRate, globalBurst)
	log.Printf("限流器初始化完成: enabled=%v, rate=%d, burst=%d", rateLimitEnabled, globalRate, globalBurst)
}

// RateLimitMiddleware 全局API限流中间件
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rateLimitEnabled || globalLimiter == nil {
			c.Next()
			return
		}

		allowed, err := globalLimiter.Allow(c.Request.Context())
		if err != nil {
			// 限流器故障时放行请求，不把限流基础设施变成单点
			log.Printf("限流器错误: %v", err)
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Error: "Too many requests"})
			return
		}
		c.Next()
	}
}
