package api

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/tomo4k1/tamenchan-bootcamp/common/http"
)

// HealthChecker 检查依赖的数据库
type HealthChecker interface {
	HealthCheck(ctx context.Context) (map[string]string, bool)
}

func PingHandler(c *http.Context) error {
	c.Success(map[string]interface{}{
		"message":   "pong",
		"timestamp": time.Now().Unix(),
		"service":   "tamenchan",
	})
	return nil
}

func (h *Handler) HealthHandler(c *http.Context) error {
	status := map[string]interface{}{
		"healthy":   true,
		"timestamp": time.Now().Unix(),
	}
	if h.health != nil {
		ctx, cancel := context.WithTimeout(c.Ctx(), 2*time.Second)
		defer cancel()
		services, healthy := h.health.HealthCheck(ctx)
		status["healthy"] = healthy
		status["services"] = services
		if !healthy {
			c.JSON(nethttp.StatusServiceUnavailable, http.NewResponse(http.CodeServerError, "服务不健康", status))
			return nil
		}
	}
	c.Success(status)
	return nil
}
