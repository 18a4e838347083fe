package repository

import (
	"context"

	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/entity"
)

// PoolKey 预生成题库按 (张数, 难度) 划分
type PoolKey struct {
	Length     int
	Difficulty int
}

// ProblemPoolRepository 预生成题库，先进先出
type ProblemPoolRepository interface {
	// Push 加入若干道题
	Push(ctx context.Context, key PoolKey, problems ...*entity.PooledProblem) error

	// Pop 取出一道题，题库为空返回 ErrPoolEmpty
	Pop(ctx context.Context, key PoolKey) (*entity.PooledProblem, error)

	// Size 当前题库数量
	Size(ctx context.Context, key PoolKey) (int64, error)
}
