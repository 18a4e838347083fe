package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tomo4k1/tamenchan-bootcamp/common/database"
	"github.com/tomo4k1/tamenchan-bootcamp/common/log"
	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/entity"
	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/repository"
)

const (
	// Redis Key 前缀，{id} 作为 hash tag 保证集群下两个 key 落在同一个 slot
	problemKeyPrefix = "tamenchan:problem:"
)

func problemKey(id string) string  { return problemKeyPrefix + "{" + id + "}" }
func answeredKey(id string) string { return problemKey(id) + ":answered" }

// Lua 脚本：原子性地标记题目已作答
// KEYS[1]: 题目 key
// KEYS[2]: 已作答标记 key
// 返回：-1 题目不存在，0 已经作答过，1 标记成功
var markAnsweredScript = `
local ttl = redis.call('PTTL', KEYS[1])
if ttl == -2 then
    return -1
end
local ok
if ttl > 0 then
    ok = redis.call('SET', KEYS[2], '1', 'NX', 'PX', ttl)
else
    ok = redis.call('SET', KEYS[2], '1', 'NX')
end
if ok then
    return 1
end
return 0
`

// RedisProblemRepository Redis 实现的题目存储
type RedisProblemRepository struct {
	redis *database.RedisManager
}

func NewRedisProblemRepository(redis *database.RedisManager) repository.ProblemRepository {
	return &RedisProblemRepository{redis: redis}
}

func (r *RedisProblemRepository) Save(ctx context.Context, problem *entity.IssuedProblem, ttl time.Duration) error {
	cli, err := r.redis.GetClient()
	if err != nil {
		return err
	}
	data, err := json.Marshal(problem)
	if err != nil {
		return fmt.Errorf("序列化题目失败: %w", err)
	}
	if err := cli.Set(ctx, problemKey(problem.ID), data, ttl).Err(); err != nil {
		log.Error("保存题目失败: %v", err)
		return err
	}
	return nil
}

func (r *RedisProblemRepository) Find(ctx context.Context, id string) (*entity.IssuedProblem, error) {
	cli, err := r.redis.GetClient()
	if err != nil {
		return nil, err
	}

	data, err := cli.Get(ctx, problemKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrProblemNotFound
		}
		log.Error("查询题目失败: %v", err)
		return nil, err
	}

	problem := new(entity.IssuedProblem)
	if err := json.Unmarshal(data, problem); err != nil {
		return nil, fmt.Errorf("反序列化题目失败: %w", err)
	}

	answered, err := cli.Exists(ctx, answeredKey(id)).Result()
	if err != nil {
		return nil, err
	}
	problem.Answered = answered > 0
	return problem, nil
}

func (r *RedisProblemRepository) MarkAnswered(ctx context.Context, id string) error {
	result, err := r.redis.EvalScript(ctx, "markAnswered", markAnsweredScript, []string{problemKey(id), answeredKey(id)})
	if err != nil {
		log.Error("执行标记作答脚本失败: %v", err)
		return err
	}

	code, ok := result.(int64)
	if !ok {
		return fmt.Errorf("标记作答脚本返回类型错误: %T", result)
	}
	switch code {
	case -1:
		return repository.ErrProblemNotFound
	case 0:
		return repository.ErrProblemAnswered
	default:
		return nil
	}
}
