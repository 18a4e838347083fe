package persistence

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tomo4k1/tamenchan-bootcamp/common/database"
	"github.com/tomo4k1/tamenchan-bootcamp/common/log"
	"github.com/tomo4k1/tamenchan-bootcamp/common/utils"
	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/entity"
	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/repository"
)

const attemptCollection = "attempts"

type AttemptRepository struct {
	mongo *database.MongoManager
}

func NewAttemptRepository(mongo *database.MongoManager) repository.AttemptRepository {
	return &AttemptRepository{mongo: mongo}
}

func (r *AttemptRepository) collection() *mongo.Collection {
	return r.mongo.Db.Collection(attemptCollection)
}

// EnsureIndexes 按时间倒序查询和按难度聚合需要的索引
func (r *AttemptRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "difficulty", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("创建作答记录索引失败: %w", err)
	}
	return nil
}

// Save 保存作答记录
func (r *AttemptRepository) Save(ctx context.Context, attempt *entity.Attempt) error {
	if _, err := r.collection().InsertOne(ctx, attempt); err != nil {
		log.Error("保存作答记录失败: %v", err)
		return err
	}
	return nil
}

// ListRecent 按时间倒序返回最近的记录
func (r *AttemptRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Attempt, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Error("查询作答记录失败: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	attempts := make([]*entity.Attempt, 0, limit)
	if err := cursor.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

// Stats 按难度汇总作答数和正确数
func (r *AttemptRepository) Stats(ctx context.Context) ([]entity.DifficultyStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$difficulty"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "correct", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{"$is_correct", 1, 0}},
			}}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		log.Error("统计作答记录失败: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	stats := make([]entity.DifficultyStats, 0, len(docs))
	for _, doc := range docs {
		stats = append(stats, entity.DifficultyStats{
			Difficulty: utils.ToInt(doc["_id"]),
			Total:      utils.ToInt64(doc["total"]),
			Correct:    utils.ToInt64(doc["correct"]),
		})
	}
	return stats, nil
}
