package database

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tomo4k1/tamenchan-bootcamp/common/config"
	"github.com/tomo4k1/tamenchan-bootcamp/common/log"
)

type RedisManager struct {
	Cli        *redis.Client
	ClusterCli *redis.ClusterClient
	scriptSHAs map[string]string
	mu         sync.RWMutex
}

// NewRedis 按配置创建单机或集群客户端，并在 10 秒内完成 Ping
func NewRedis(redisConf config.RedisConf) (*RedisManager, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	r := &RedisManager{scriptSHAs: make(map[string]string)}

	if len(redisConf.ClusterAddrs) > 0 {
		r.ClusterCli = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        redisConf.ClusterAddrs,
			Password:     redisConf.Password, // 如果没有密码，这个字段为空字符串，Redis会忽略
			PoolSize:     redisConf.PoolSize,
			MinIdleConns: redisConf.MinIdleConns,
		})
	} else {
		addr := redisConf.Addr
		if addr == "" && redisConf.Host != "" && redisConf.Port > 0 {
			addr = fmt.Sprintf("%s:%d", redisConf.Host, redisConf.Port)
		}
		if addr == "" {
			return nil, fmt.Errorf("redis 配置出错: 缺少 addr")
		}
		r.Cli = redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     redisConf.Password,
			PoolSize:     redisConf.PoolSize,
			MinIdleConns: redisConf.MinIdleConns,
		})
	}

	cli, _ := r.GetClient()
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("redis 连接错误: %w", err)
	}
	return r, nil
}

func (r *RedisManager) GetClient() (redis.Cmdable, error) {
	if r.Cli != nil {
		return r.Cli, nil
	}
	if r.ClusterCli != nil {
		return r.ClusterCli, nil
	}
	return nil, fmt.Errorf("redis 客户端未初始化")
}

// EvalScript 优先使用 EVALSHA，脚本缓存失效时重新加载
func (r *RedisManager) EvalScript(ctx context.Context, scriptName, script string, keys []string, args ...any) (any, error) {
	cli, err := r.GetClient()
	if err != nil {
		return nil, err
	}
	if r.Cli == nil || scriptName == "" {
		return cli.Eval(ctx, script, keys, args...).Result()
	}

	r.mu.RLock()
	sha, exists := r.scriptSHAs[scriptName]
	r.mu.RUnlock()

	if exists {
		result, err := r.Cli.EvalSha(ctx, sha, keys, args...).Result()
		if err == nil || !strings.HasPrefix(err.Error(), "NOSCRIPT") {
			return result, err
		}
		// SHA 失效，重新加载
	}

	sha, err = r.Cli.ScriptLoad(ctx, script).Result()
	if err != nil {
		return nil, fmt.Errorf("加载脚本失败: %w", err)
	}
	r.mu.Lock()
	r.scriptSHAs[scriptName] = sha
	r.mu.Unlock()
	return r.Cli.EvalSha(ctx, sha, keys, args...).Result()
}

func (r *RedisManager) Close() error {
	if r.Cli != nil {
		if err := r.Cli.Close(); err != nil {
			log.Error("redis 关闭出错: %v", err)
			return err
		}
	}
	if r.ClusterCli != nil {
		if err := r.ClusterCli.Close(); err != nil {
			log.Error("redisCluster 关闭出错: %v", err)
			return err
		}
	}
	return nil
}

func (r *RedisManager) Ping(ctx context.Context) error {
	cli, err := r.GetClient()
	if err != nil {
		return err
	}
	return cli.Ping(ctx).Err()
}
