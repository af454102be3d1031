package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimiter 限流器接口
type RateLimiter interface {
	// Allow 判断请求是否允许通过
	Allow(ctx context.Context) (bool, error)
}

// TokenBucketRateLimiter 基于Redis的令牌桶限流器，多实例部署时共享配额
type TokenBucketRateLimiter struct {
	redisClient *redis.Client
	key         string
	rate        int // 每秒生成的令牌数量
	burst       int // 令牌桶最大容量
}

// NewTokenBucketRateLimiter 创建新的令牌桶限流器
func NewTokenBucketRateLimiter(client *redis.Client, key string, r, burst int) *TokenBucketRateLimiter {
	return &TokenBucketRateLimiter{
		redisClient: client,
		key:         fmt.Sprintf("rate_limit:%s", key),
		rate:        r,
		burst:       burst,
	}
}

// Allow 判断请求是否允许通过
func (l *TokenBucketRateLimiter) Allow(ctx context.Context) (bool, error) {
	if l.redisClient == nil {
		return false, ErrRedisNotAvailable
	}

	// 令牌桶算法的Lua脚本
	script := `
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local rate = tonumber(ARGV[2])
	local burst = tonumber(ARGV[3])
	local period = 1 -- 1秒为单位

	local tokens_key = key .. ":tokens"
	local timestamp_key = key .. ":ts"

	local tokens = tonumber(redis.call("get", tokens_key) or burst)
	local last_update = tonumber(redis.call("get", timestamp_key) or 0)

	-- 按经过的时间补充令牌
	local elapsed = math.max(0, now - last_update)
	local new_tokens = math.min(burst, tokens + elapsed * rate)

	if new_tokens < 1 then
		return 0
	end

	new_tokens = new_tokens - 1

	redis.call("setex", tokens_key, period * 2, new_tokens)
	redis.call("setex", timestamp_key, period * 2, now)

	return 1
	`

	now := time.Now().Unix()
	result, err := l.redisClient.Eval(ctx, script, []string{l.key}, now, l.rate, l.burst).Result()
	if err != nil {
		return false, err
	}

	return result.(int64) == 1, nil
}

// LocalRateLimiter 进程内令牌桶限流器，Redis不可用（模拟模式）时的退化实现
type LocalRateLimiter struct {
	limiter *rate.Limiter
}

// NewLocalRateLimiter 创建进程内限流器
func NewLocalRateLimiter(r, burst int) *LocalRateLimiter {
	return &LocalRateLimiter{
		limiter: rate.NewLimiter(rate.Limit(r), burst),
	}
}

// Allow 判断请求是否允许通过
func (l *LocalRateLimiter) Allow(ctx context.Context) (bool, error) {
	return l.limiter.Allow(), nil
}

// NewRateLimiter 根据Redis可用性选择限流器实现
func NewRateLimiter(key string, r, burst int) RateLimiter {
	client, err := GetClient()
	if err != nil {
		return NewLocalRateLimiter(r, burst)
	}
	return NewTokenBucketRateLimiter(client, key, r, burst)
}
