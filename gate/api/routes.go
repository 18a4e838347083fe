package api

import (
	"github.com/tomo4k1/tamenchan-bootcamp/common/http"
	"github.com/tomo4k1/tamenchan-bootcamp/common/utils"
	"github.com/tomo4k1/tamenchan-bootcamp/runtime/trainer/application/service"
)

type Handler struct {
	svc    service.TrainerService
	health HealthChecker
}

func NewHandler(svc service.TrainerService, health HealthChecker) *Handler {
	return &Handler{svc: svc, health: health}
}

// RegisterRoutes 注册所有路由，limiter 为 nil 时不限流
func RegisterRoutes(server *http.HttpServer, h *Handler, limiter *utils.KeyedRateLimiter) {
	server.GET("/ping", PingHandler)
	server.GET("/health", h.HealthHandler)

	// API v1 路由组
	v1 := server.Group("/api/v1")
	{
		var limited []http.MiddlewareFunc
		if limiter != nil {
			limited = append(limited, http.RateLimitMiddleware(limiter))
		}

		problems := v1.Group("/problems")
		{
			// 出题可能要现场生成，单独限流
			problems.POST("", h.IssueProblemHandler, limited...)
			problems.POST("/:id/answer", h.SubmitAnswerHandler)
		}

		hands := v1.Group("/hands")
		{
			hands.POST("/waits", h.WaitsHandler)
			hands.POST("/classify", h.ClassifyHandler)
			hands.POST("/decompose", h.DecomposeHandler)
		}

		v1.GET("/difficulties", DifficultiesHandler)
		v1.GET("/stats", h.StatsHandler)
		v1.GET("/attempts", h.RecentAttemptsHandler)
	}
}
