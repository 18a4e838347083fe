package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tomo4k1/tamenchan-bootcamp/common/log"
	"github.com/tomo4k1/tamenchan-bootcamp/common/utils"
)

// CorsMiddleware 跨域中间件
func CorsMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.SetHeader("Access-Control-Allow-Origin", "*")
			c.SetHeader("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.SetHeader("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, X-Request-ID")
			c.SetHeader("Access-Control-Expose-Headers", "Content-Length, Content-Type, X-Request-ID")
		}

		// 处理预检请求
		if c.Method() == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
		}
		return nil
	}
}

// LoggerMiddleware 日志中间件
func LoggerMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		start := time.Now()
		c.Next()
		log.Info("HTTP %s %s %d from %s in %v, request_id=%s",
			c.Method(), c.Path(), c.StatusCode(), c.ClientIP(), time.Since(start), c.GetString(RequestIDKey))
		return nil
	}
}

// RateLimitMiddleware 按客户端 IP 的令牌桶限流
func RateLimitMiddleware(limiter *utils.KeyedRateLimiter) MiddlewareFunc {
	return func(c *Context) error {
		if !limiter.Allow(c.ClientIP()) {
			log.Warn("请求过于频繁: %s %s from %s", c.Method(), c.Path(), c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, NewResponse(CodeTooManyRequests, MsgTooManyRequests, nil))
		}
		return nil
	}
}

const RequestIDKey = "requestID"

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = generateRequestID()
		}

		c.Set(RequestIDKey, requestID)
		c.SetHeader("X-Request-ID", requestID)
		return nil
	}
}

// generateRequestID 时间前缀 + uuid
func generateRequestID() string {
	return time.Now().Format("20060102150405") + "-" + uuid.New().String()
}

// SecurityMiddleware 安全头中间件
func SecurityMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		c.SetHeader("X-Content-Type-Options", "nosniff")
		c.SetHeader("X-Frame-Options", "DENY")
		c.SetHeader("X-XSS-Protection", "1; mode=block")
		return nil
	}
}
