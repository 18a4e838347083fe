package container

import (
	"context"
	"errors"

	"github.com/tomo4k1/tamenchan-bootcamp/common/config"
	"github.com/tomo4k1/tamenchan-bootcamp/common/database"
	"github.com/tomo4k1/tamenchan-bootcamp/common/log"
)

// BaseContainer 基础容器，管理共享的数据库连接
// mongo、redis 都是可选的，未配置时为 nil，由上层改用内存实现
type BaseContainer struct {
	mongo *database.MongoManager
	redis *database.RedisManager
}

// NewBase 按配置连接数据库，任意一个连接失败都会关闭已建立的连接
func NewBase(conf config.DatabaseConf) (*BaseContainer, error) {
	base := &BaseContainer{}

	if conf.MongoConf.Enabled() {
		mongo, err := database.NewMongo(conf.MongoConf)
		if err != nil {
			return nil, err
		}
		base.mongo = mongo
		log.Info("mongodb 连接成功, db=%s", conf.MongoConf.Db)
	} else {
		log.Warn("未配置 mongodb，作答记录只保存在内存中")
	}

	if conf.RedisConf.Enabled() {
		redis, err := database.NewRedis(conf.RedisConf)
		if err != nil {
			_ = base.Close()
			return nil, err
		}
		base.redis = redis
		log.Info("redis 连接成功")
	} else {
		log.Warn("未配置 redis，题目与题库只保存在内存中")
	}

	return base, nil
}

func (c *BaseContainer) GetMongo() *database.MongoManager {
	return c.mongo
}

func (c *BaseContainer) GetRedis() *database.RedisManager {
	return c.redis
}

// HealthCheck 各数据库的状态，未配置的显示为 memory
func (c *BaseContainer) HealthCheck(ctx context.Context) (map[string]string, bool) {
	status := map[string]string{"mongo": "memory", "redis": "memory"}
	healthy := true
	if c.mongo != nil {
		status["mongo"] = "ok"
		if err := c.mongo.Ping(ctx); err != nil {
			status["mongo"] = err.Error()
			healthy = false
		}
	}
	if c.redis != nil {
		status["redis"] = "ok"
		if err := c.redis.Ping(ctx); err != nil {
			status["redis"] = err.Error()
			healthy = false
		}
	}
	return status, healthy
}

// Close 关闭所有资源
func (c *BaseContainer) Close() error {
	var errs []error
	if c.mongo != nil {
		if err := c.mongo.Close(); err != nil {
			log.Error("mongo 关闭失败: %v", err)
			errs = append(errs, err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Error("redis 关闭失败: %v", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
