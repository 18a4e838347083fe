package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomo4k1/tamenchan-bootcamp/common/config"
	"github.com/tomo4k1/tamenchan-bootcamp/common/http"
	"github.com/tomo4k1/tamenchan-bootcamp/common/log"
	"github.com/tomo4k1/tamenchan-bootcamp/common/utils"
	"github.com/tomo4k1/tamenchan-bootcamp/core/container"
	"github.com/tomo4k1/tamenchan-bootcamp/gate/api"
)

func Run(ctx context.Context, conf *config.TrainerConfiguration) error {
	c, err := container.NewTrainerContainer(conf)
	if err != nil {
		return err
	}
	defer c.Close()

	limiter := utils.NewKeyedRateLimiter(conf.RateLimit.Rate, conf.RateLimit.Burst)

	// 使用 common 封装的 gin 库 http-server
	server := http.NewHttpServer(
		http.WithPort(conf.HttpPort),
		http.WithMode(conf.Mode),
	)

	// 中间处理器注册
	server.Use(
		http.RequestIDMiddleware(),
		http.LoggerMiddleware(),
		http.CorsMiddleware(),
		http.SecurityMiddleware(),
	)

	// 路由注册
	api.RegisterRoutes(server, api.NewHandler(c.TrainerService, c), limiter)

	if c.ProblemPool != nil {
		c.ProblemPool.Start()
	}

	// 日志级别和限流参数支持热更新，其余配置需要重启
	config.Watch(func(next *config.TrainerConfiguration) {
		log.SetLevel(next.Log.Level)
		limiter.Reset(next.RateLimit.Rate, next.RateLimit.Burst)
		log.Info("配置已更新, log.level=%s, rateLimit=%d/%d", next.Log.Level, next.RateLimit.Rate, next.RateLimit.Burst)
	}, func(err error) {
		log.Error("配置热更新失败，继续使用旧配置: %v", err)
	})

	errChan := make(chan error, 1)
	go func() {
		log.Info("启动 HTTP 服务器，端口: %d", conf.HttpPort)
		errChan <- server.Start()
	}()

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP 服务器关闭失败: %v", err)
		} else {
			log.Info("HTTP 服务器已优雅关闭")
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(sig)
	for {
		select {
		case <-ctx.Done():
			stop()
			return nil
		case err := <-errChan:
			if err != nil {
				log.Error("HTTP 服务器启动失败: %v", err)
			}
			return err
		case s := <-sig:
			switch s {
			case syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT:
				stop()
				log.Info("中断信号，服务停止")
				return nil
			case syscall.SIGHUP:
				stop()
				log.Info("挂起信号，服务停止")
				return nil
			default:
				return nil
			}
		}
	}
}
