package repository

import (
	"context"
	"time"

	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/entity"
)

// ProblemRepository 已发出题目的存储，带过期时间
type ProblemRepository interface {
	// Save 保存题目，ttl 后自动失效
	Save(ctx context.Context, problem *entity.IssuedProblem, ttl time.Duration) error

	// Find 查找题目，不存在或已过期返回 ErrProblemNotFound
	Find(ctx context.Context, id string) (*entity.IssuedProblem, error)

	// MarkAnswered 原子地标记为已作答，重复作答返回 ErrProblemAnswered
	MarkAnswered(ctx context.Context, id string) error
}
