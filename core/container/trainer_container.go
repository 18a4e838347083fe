package container

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tomo4k1/tamenchan-bootcamp/common/cache"
	"github.com/tomo4k1/tamenchan-bootcamp/common/config"
	"github.com/tomo4k1/tamenchan-bootcamp/common/log"
	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/repository"
	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/vo"
	"github.com/tomo4k1/tamenchan-bootcamp/core/infrastructure/persistence"
	"github.com/tomo4k1/tamenchan-bootcamp/core/infrastructure/realtime"
	"github.com/tomo4k1/tamenchan-bootcamp/runtime/game/engines/chinitsu"
	"github.com/tomo4k1/tamenchan-bootcamp/runtime/trainer"
	"github.com/tomo4k1/tamenchan-bootcamp/runtime/trainer/application/service"
	"github.com/tomo4k1/tamenchan-bootcamp/runtime/trainer/application/service/impl"
)

const memoryAttemptCapacity = 1000

// TrainerContainer 练习服务容器
// 在 BaseContainer 的数据库连接之上组装缓存、出题器、仓储、服务和预生成题库
type TrainerContainer struct {
	*BaseContainer

	Cache          *cache.GeneralCache
	Searcher       *chinitsu.Searcher
	Generator      *chinitsu.Generator
	TrainerService service.TrainerService
	ProblemPool    *trainer.ProblemPool // pool.enabled 为 false 时为 nil

	closed bool
	mu     sync.Mutex
}

func NewTrainerContainer(conf *config.TrainerConfiguration) (*TrainerContainer, error) {
	base, err := NewBase(conf.DatabaseConf)
	if err != nil {
		return nil, fmt.Errorf("基础容器初始化失败: %w", err)
	}

	generalCache, err := cache.NewGeneralCache(conf.Cache.MaxCost, conf.Cache.TTLDuration())
	if err != nil {
		_ = base.Close()
		return nil, err
	}

	searcher := chinitsu.NewSearcher(generalCache)
	generator := chinitsu.NewGenerator(&chinitsu.Options{
		MaxAttempts: conf.Generator.MaxAttempts,
		Seed:        conf.Generator.Seed,
		Waits:       searcher.Waits,
	})

	var (
		problemRepo repository.ProblemRepository
		poolRepo    repository.ProblemPoolRepository
		attemptRepo repository.AttemptRepository
	)
	if redis := base.GetRedis(); redis != nil {
		problemRepo = realtime.NewRedisProblemRepository(redis)
		poolRepo = realtime.NewRedisProblemPoolRepository(redis)
	} else {
		problemRepo = realtime.NewMemoryProblemRepository()
		poolRepo = realtime.NewMemoryProblemPoolRepository()
	}
	if mongo := base.GetMongo(); mongo != nil {
		repo := persistence.NewAttemptRepository(mongo)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := repo.(*persistence.AttemptRepository).EnsureIndexes(ctx); err != nil {
			log.Warn("创建 attempts 索引失败: %v", err)
		}
		cancel()
		attemptRepo = repo
	} else {
		attemptRepo = persistence.NewMemoryAttemptRepository(memoryAttemptCapacity)
	}

	c := &TrainerContainer{
		BaseContainer: base,
		Cache:         generalCache,
		Searcher:      searcher,
		Generator:     generator,
	}

	var poolKeys []repository.PoolKey
	if conf.Pool.Enabled {
		c.ProblemPool = trainer.NewProblemPool(conf.Pool, poolRepo, generator)
		poolKeys = c.ProblemPool.Keys()
	} else {
		poolRepo = nil
	}

	c.TrainerService = impl.NewTrainerService(problemRepo, poolRepo, attemptRepo, generator, searcher, impl.Options{
		DefaultLength:     conf.Generator.DefaultLength,
		DefaultDifficulty: vo.Difficulty(conf.Generator.DefaultDifficulty),
		ProblemTTL:        conf.Problem.TTLDuration(),
		PoolKeys:          poolKeys,
	})

	log.Info("TrainerContainer 初始化完成, 预生成题库: %v", conf.Pool.Enabled)
	return c, nil
}

// HealthCheck 在数据库状态之外附带缓存命中率
func (c *TrainerContainer) HealthCheck(ctx context.Context) (map[string]string, bool) {
	status, healthy := c.BaseContainer.HealthCheck(ctx)
	st := c.Cache.Stats()
	status["cache"] = fmt.Sprintf("hits=%d misses=%d ratio=%.2f", st.Hits, st.Misses, st.Ratio)
	return status, healthy
}

// Close 关闭容器资源（幂等操作，可以安全地多次调用）
// 关闭顺序：1. 预生成题库 2. 缓存 3. BaseContainer（数据库连接）
func (c *TrainerContainer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.ProblemPool != nil {
		c.ProblemPool.Stop()
	}
	if c.Cache != nil {
		c.Cache.Close()
	}
	if err := c.BaseContainer.Close(); err != nil {
		log.Error("BaseContainer 关闭失败: %v", err)
		return err
	}

	log.Info("TrainerContainer 已关闭")
	return nil
}
