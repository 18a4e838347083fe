package realtime

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/entity"
	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/repository"
)

// MemoryProblemRepository 未配置 redis 时使用的进程内题目存储
type MemoryProblemRepository struct {
	mu       sync.Mutex
	problems map[string]*memoryProblem
	now      func() time.Time
}

type memoryProblem struct {
	problem  entity.IssuedProblem
	expireAt time.Time // 零值表示不过期
}

func NewMemoryProblemRepository() *MemoryProblemRepository {
	return &MemoryProblemRepository{
		problems: make(map[string]*memoryProblem),
		now:      time.Now,
	}
}

func (r *MemoryProblemRepository) Save(_ context.Context, problem *entity.IssuedProblem, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evictLocked()
	item := &memoryProblem{problem: *problem}
	item.problem.Hand = slices.Clone(problem.Hand)
	item.problem.Waits = slices.Clone(problem.Waits)
	if ttl > 0 {
		item.expireAt = r.now().Add(ttl)
	}
	r.problems[problem.ID] = item
	return nil
}

func (r *MemoryProblemRepository) Find(_ context.Context, id string) (*entity.IssuedProblem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.lookupLocked(id)
	if !ok {
		return nil, repository.ErrProblemNotFound
	}
	p := item.problem
	p.Hand = slices.Clone(p.Hand)
	p.Waits = slices.Clone(p.Waits)
	return &p, nil
}

func (r *MemoryProblemRepository) MarkAnswered(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.lookupLocked(id)
	if !ok {
		return repository.ErrProblemNotFound
	}
	if item.problem.Answered {
		return repository.ErrProblemAnswered
	}
	item.problem.Answered = true
	return nil
}

func (r *MemoryProblemRepository) lookupLocked(id string) (*memoryProblem, bool) {
	item, ok := r.problems[id]
	if !ok {
		return nil, false
	}
	if !item.expireAt.IsZero() && !r.now().Before(item.expireAt) {
		delete(r.problems, id)
		return nil, false
	}
	return item, true
}

// evictLocked 顺带清理过期题目
func (r *MemoryProblemRepository) evictLocked() {
	now := r.now()
	for id, item := range r.problems {
		if !item.expireAt.IsZero() && !now.Before(item.expireAt) {
			delete(r.problems, id)
		}
	}
}

// MemoryProblemPoolRepository 进程内预生成题库
type MemoryProblemPoolRepository struct {
	mu    sync.Mutex
	pools map[repository.PoolKey][]*entity.PooledProblem
}

func NewMemoryProblemPoolRepository() *MemoryProblemPoolRepository {
	return &MemoryProblemPoolRepository{
		pools: make(map[repository.PoolKey][]*entity.PooledProblem),
	}
}

func (r *MemoryProblemPoolRepository) Push(_ context.Context, key repository.PoolKey, problems ...*entity.PooledProblem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pools[key] = append(r.pools[key], problems...)
	return nil
}

func (r *MemoryProblemPoolRepository) Pop(_ context.Context, key repository.PoolKey) (*entity.PooledProblem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	queue := r.pools[key]
	if len(queue) == 0 {
		return nil, repository.ErrPoolEmpty
	}
	p := queue[0]
	queue[0] = nil
	r.pools[key] = queue[1:]
	return p, nil
}

func (r *MemoryProblemPoolRepository) Size(_ context.Context, key repository.PoolKey) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.pools[key])), nil
}
