package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssuedProblem 已经发给玩家、等待作答的题目
// 作答后或过期后失效
type IssuedProblem struct {
	ID         string    `json:"id"`
	Hand       []int     `json:"hand"`
	Waits      []int     `json:"waits"`
	Length     int       `json:"length"`
	Difficulty int       `json:"difficulty"`
	Answered   bool      `json:"answered"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewIssuedProblem 用 ObjectID 的十六进制作为题目 ID
func NewIssuedProblem(hand, waits []int, difficulty int) *IssuedProblem {
	return &IssuedProblem{
		ID:         primitive.NewObjectID().Hex(),
		Hand:       hand,
		Waits:      waits,
		Length:     len(hand),
		Difficulty: difficulty,
		CreatedAt:  time.Now(),
	}
}

// PooledProblem 预生成题库中的题目，还没有分配 ID
type PooledProblem struct {
	Hand  []int `json:"hand"`
	Waits []int `json:"waits"`
}
