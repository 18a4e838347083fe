package utils

import (
	"sync"
	"time"
)

type RateLimiter struct {
	rate       float64
	capacity   float64
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

// NewRateLimiter 创建一个新的限流器
// rate: 每秒允许的请求数
// burst: 允许的突发请求数（桶的容量）
func NewRateLimiter(rate int, burst int) *RateLimiter {
	return &RateLimiter{
		rate:       float64(rate),
		capacity:   float64(burst * rate), // 桶的容量 = 突发请求数 * 每秒请求数
		tokens:     float64(burst * rate), // 初始令牌数 = 桶的容量
		lastRefill: time.Now(),
	}
}

// Allow 判断当前请求是否允许通过
// 返回 true 表示允许，false 表示拒绝
func (rl *RateLimiter) Allow() bool {
	return rl.allowAt(time.Now())
}

func (rl *RateLimiter) allowAt(now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	elapsed := now.Sub(rl.lastRefill).Seconds()
	if elapsed > 0 && rl.tokens < rl.capacity {
		rl.tokens = min(rl.capacity, rl.tokens+elapsed*rl.rate)
	}
	rl.lastRefill = now

	if rl.tokens >= 1.0 {
		rl.tokens -= 1.0
		return true
	}
	return false
}

// KeyedRateLimiter 按 key（客户端 IP）分别限流
type KeyedRateLimiter struct {
	mu       sync.Mutex
	rate     int
	burst    int
	limiters map[string]*RateLimiter
}

func NewKeyedRateLimiter(rate int, burst int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		rate:     rate,
		burst:    burst,
		limiters: make(map[string]*RateLimiter),
	}
}

func (k *KeyedRateLimiter) Allow(key string) bool {
	k.mu.Lock()
	rl, ok := k.limiters[key]
	if !ok {
		rl = NewRateLimiter(k.rate, k.burst)
		k.limiters[key] = rl
	}
	k.mu.Unlock()
	return rl.Allow()
}

// Reset 修改限流参数并清空已有的桶，配置热更新时调用
func (k *KeyedRateLimiter) Reset(rate int, burst int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.rate = rate
	k.burst = burst
	k.limiters = make(map[string]*RateLimiter)
}
