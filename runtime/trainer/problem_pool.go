package trainer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomo4k1/tamenchan-bootcamp/common/config"
	"github.com/tomo4k1/tamenchan-bootcamp/common/log"
	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/entity"
	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/repository"
	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/vo"
	"github.com/tomo4k1/tamenchan-bootcamp/runtime/game/engines/chinitsu"
	"golang.org/x/sync/errgroup"
)

// ProblemPool 预生成题库
// 定时把每个 (张数, 难度) 题库补满，出题时直接取，避免高难度题目现场生成的延迟
type ProblemPool struct {
	keys     []repository.PoolKey
	size     int
	workers  int
	interval time.Duration

	repo      repository.ProblemPoolRepository
	generator *chinitsu.Generator

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopChan chan struct{}
}

// PoolKeys 配置中张数与难度的全部组合，非法值会被跳过
func PoolKeys(cfg config.PoolConf) []repository.PoolKey {
	keys := make([]repository.PoolKey, 0, len(cfg.Lengths)*len(cfg.Difficulties))
	for _, length := range cfg.Lengths {
		if chinitsu.ValidateProblemLength(length) != nil {
			log.Warn("题库配置了非法张数 %d，跳过", length)
			continue
		}
		for _, d := range cfg.Difficulties {
			if !vo.Difficulty(d).Valid() {
				log.Warn("题库配置了非法难度 %d，跳过", d)
				continue
			}
			keys = append(keys, repository.PoolKey{Length: length, Difficulty: d})
		}
	}
	return keys
}

func NewProblemPool(cfg config.PoolConf, repo repository.ProblemPoolRepository, generator *chinitsu.Generator) *ProblemPool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	interval := cfg.IntervalDuration()
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if generator == nil {
		generator = chinitsu.NewGenerator(nil)
	}
	return &ProblemPool{
		keys:      PoolKeys(cfg),
		size:      cfg.Size,
		workers:   workers,
		interval:  interval,
		repo:      repo,
		generator: generator,
		stopChan:  make(chan struct{}),
	}
}

func (p *ProblemPool) Keys() []repository.PoolKey {
	return p.keys
}

func (p *ProblemPool) Start() {
	p.wg.Add(1)
	go p.fillLoop()
	log.Info("预生成题库启动，间隔: %v, 目标数量: %d, 并发: %d, 题库数: %d", p.interval, p.size, p.workers, len(p.keys))
}

// fillLoop 启动时先补一次，之后定时补
func (p *ProblemPool) fillLoop() {
	ticker := time.NewTicker(p.interval)
	defer p.wg.Done()
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-p.stopChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	p.fillOnce(ctx)
	for {
		select {
		case <-ticker.C:
			p.fillOnce(ctx)
		case <-p.stopChan:
			log.Info("预生成题库收到停止信号")
			return
		}
	}
}

func (p *ProblemPool) fillOnce(ctx context.Context) {
	if err := p.Fill(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn("预生成题库补充未完成: %v", err)
	}
}

// Fill 把所有题库补到目标数量，某个题库失败不影响其他题库
func (p *ProblemPool) Fill(ctx context.Context) error {
	var errs []error
	for _, key := range p.keys {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		added, err := p.fillKey(ctx, key)
		if err != nil {
			errs = append(errs, fmt.Errorf("pool %d/%d: %w", key.Length, key.Difficulty, err))
		}
		if added > 0 {
			log.Debug("题库 [%d张/难度%d] 补充了 %d 道题", key.Length, key.Difficulty, added)
		}
	}
	return errors.Join(errs...)
}

// fillKey 并发生成缺少的题目，全部成功后一次写入
func (p *ProblemPool) fillKey(ctx context.Context, key repository.PoolKey) (int, error) {
	current, err := p.repo.Size(ctx, key)
	if err != nil {
		return 0, err
	}
	missing := p.size - int(current)
	if missing <= 0 {
		return 0, nil
	}

	minWaits := vo.Difficulty(key.Difficulty).MinWaits()
	problems := make([]*entity.PooledProblem, missing)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i := 0; i < missing; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			problem, err := p.generator.Generate(key.Length, minWaits)
			if err != nil {
				return err
			}
			problems[i] = &entity.PooledProblem{Hand: problem.Hand, Waits: problem.Waits}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var genErr *chinitsu.GenerationError
		if errors.As(err, &genErr) {
			log.Warn("题库 [%d张/难度%d] 生成失败，本轮跳过: %v", key.Length, key.Difficulty, genErr)
		}
		return 0, err
	}

	if err := p.repo.Push(ctx, key, problems...); err != nil {
		return 0, err
	}
	return missing, nil
}

func (p *ProblemPool) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopChan)
	})
	p.wg.Wait()
	log.Info("预生成题库已停止")
}
