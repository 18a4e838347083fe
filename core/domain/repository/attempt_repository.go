package repository

import (
	"context"

	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/entity"
)

// AttemptRepository 作答记录仓储接口
type AttemptRepository interface {
	// Save 保存作答记录
	Save(ctx context.Context, attempt *entity.Attempt) error

	// ListRecent 按时间倒序返回最近的记录
	ListRecent(ctx context.Context, limit int) ([]*entity.Attempt, error)

	// Stats 按难度汇总，按难度升序
	Stats(ctx context.Context) ([]entity.DifficultyStats, error)
}
