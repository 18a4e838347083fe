package persistence

import (
	"context"
	"slices"
	"sync"

	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/entity"
)

// MemoryAttemptRepository 未配置 mongo 时使用，只保留最近 capacity 条
type MemoryAttemptRepository struct {
	mu       sync.RWMutex
	capacity int
	attempts []*entity.Attempt
	stats    map[int]*entity.DifficultyStats // 统计不受容量限制
}

func NewMemoryAttemptRepository(capacity int) *MemoryAttemptRepository {
	if capacity <= 0 {
		capacity = 1000
	}
	return &MemoryAttemptRepository{
		capacity: capacity,
		stats:    make(map[int]*entity.DifficultyStats),
	}
}

func (r *MemoryAttemptRepository) Save(_ context.Context, attempt *entity.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.attempts = append(r.attempts, attempt)
	if len(r.attempts) > r.capacity {
		r.attempts = slices.Delete(r.attempts, 0, len(r.attempts)-r.capacity)
	}

	s, ok := r.stats[attempt.Difficulty]
	if !ok {
		s = &entity.DifficultyStats{Difficulty: attempt.Difficulty}
		r.stats[attempt.Difficulty] = s
	}
	s.Total++
	if attempt.IsCorrect {
		s.Correct++
	}
	return nil
}

func (r *MemoryAttemptRepository) ListRecent(_ context.Context, limit int) ([]*entity.Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := min(limit, len(r.attempts))
	out := make([]*entity.Attempt, 0, n)
	for i := len(r.attempts) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.attempts[i])
	}
	return out, nil
}

func (r *MemoryAttemptRepository) Stats(_ context.Context) ([]entity.DifficultyStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := make([]entity.DifficultyStats, 0, len(r.stats))
	for _, s := range r.stats {
		stats = append(stats, *s)
	}
	slices.SortFunc(stats, func(a, b entity.DifficultyStats) int {
		return a.Difficulty - b.Difficulty
	})
	return stats, nil
}
