package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/tomo4k1/tamenchan-bootcamp/common/database"
	"github.com/tomo4k1/tamenchan-bootcamp/common/log"
	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/entity"
	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/repository"
)

// List: 预生成题库，LPUSH 入队 RPOP 出队
func poolKey(key repository.PoolKey) string {
	return fmt.Sprintf("tamenchan:pool:%d:%d", key.Length, key.Difficulty)
}

// RedisProblemPoolRepository Redis 实现的预生成题库，多个进程可以共享
type RedisProblemPoolRepository struct {
	redis *database.RedisManager
}

func NewRedisProblemPoolRepository(redis *database.RedisManager) repository.ProblemPoolRepository {
	return &RedisProblemPoolRepository{redis: redis}
}

func (r *RedisProblemPoolRepository) Push(ctx context.Context, key repository.PoolKey, problems ...*entity.PooledProblem) error {
	if len(problems) == 0 {
		return nil
	}
	cli, err := r.redis.GetClient()
	if err != nil {
		return err
	}

	values := make([]interface{}, 0, len(problems))
	for _, p := range problems {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("序列化题目失败: %w", err)
		}
		values = append(values, data)
	}
	if err := cli.LPush(ctx, poolKey(key), values...).Err(); err != nil {
		log.Error("题目入库失败 %s: %v", poolKey(key), err)
		return err
	}
	return nil
}

func (r *RedisProblemPoolRepository) Pop(ctx context.Context, key repository.PoolKey) (*entity.PooledProblem, error) {
	cli, err := r.redis.GetClient()
	if err != nil {
		return nil, err
	}

	data, err := cli.RPop(ctx, poolKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrPoolEmpty
		}
		return nil, err
	}

	p := new(entity.PooledProblem)
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("反序列化题目失败: %w", err)
	}
	return p, nil
}

func (r *RedisProblemPoolRepository) Size(ctx context.Context, key repository.PoolKey) (int64, error) {
	cli, err := r.redis.GetClient()
	if err != nil {
		return 0, err
	}
	return cli.LLen(ctx, poolKey(key)).Result()
}
