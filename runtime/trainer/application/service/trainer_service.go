package service

import (
	"context"
	"errors"

	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/entity"
	"github.com/tomo4k1/tamenchan-bootcamp/runtime/game/engines/chinitsu"
)

var (
	ErrInvalidHand       = errors.New("invalid hand")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)

// TrainerService 清一色听牌练习
type TrainerService interface {
	// IssueProblem 出一道题，优先从预生成题库取
	IssueProblem(ctx context.Context, req *IssueProblemReq) (*IssueProblemResp, error)

	// SubmitAnswer 判定作答并记录，每道题只能作答一次
	SubmitAnswer(ctx context.Context, req *SubmitAnswerReq) (*SubmitAnswerResp, error)

	// AnalyzeHand 任意未完成手牌的待牌及每种待牌的拆解
	AnalyzeHand(ctx context.Context, req *AnalyzeHandReq) (*AnalyzeHandResp, error)

	// ClassifyHand 完整手牌是否和牌
	ClassifyHand(ctx context.Context, req *ClassifyHandReq) (*ClassifyHandResp, error)

	// Decompose 手牌 + 和了牌的拆解
	Decompose(ctx context.Context, req *DecomposeReq) (*DecomposeResp, error)

	Stats(ctx context.Context) (*StatsResp, error)

	RecentAttempts(ctx context.Context, limit int) ([]*entity.Attempt, error)
}

type IssueProblemReq struct {
	Length     int  `json:"length"`     // 0 使用默认 13 张
	Difficulty int  `json:"difficulty"` // 0 使用默认难度
	Reveal     bool `json:"reveal"`     // 是否直接返回答案
}

type IssueProblemResp struct {
	ID              string `json:"id"`
	Hand            []int  `json:"hand"`
	Glyphs          string `json:"glyphs"`
	Length          int    `json:"length"`
	Difficulty      int    `json:"difficulty"`
	DifficultyLabel string `json:"difficultyLabel"`
	Waits           []int  `json:"waits,omitempty"`
	FromPool        bool   `json:"fromPool"`
	Message         string `json:"message"`
}

type SubmitAnswerReq struct {
	ProblemID string `json:"problemId"`
	Waits     []int  `json:"waits"`
	ClientIP  string `json:"-"`
}

// WaitExplanation 某一张待牌和了时的拆解
type WaitExplanation struct {
	Tile   int              `json:"tile"`
	Glyph  string           `json:"glyph"`
	Groups []chinitsu.Group `json:"groups"`
}

type SubmitAnswerResp struct {
	chinitsu.Result
	ProblemID    string            `json:"problemId"`
	Hand         []int             `json:"hand"`
	Message      string            `json:"message"`
	Explanations []WaitExplanation `json:"explanations"`
}

type AnalyzeHandReq struct {
	Hand []int `json:"hand"`
}

type AnalyzeHandResp struct {
	Hand         []int             `json:"hand"`
	Glyphs       string            `json:"glyphs"`
	Waits        []int             `json:"waits"`
	Tenpai       bool              `json:"tenpai"`
	Ukeire       int               `json:"ukeire"` // 待牌剩余张数
	Explanations []WaitExplanation `json:"explanations"`
}

type ClassifyHandReq struct {
	Hand []int `json:"hand"`
}

type ClassifyHandResp struct {
	Hand       []int            `json:"hand"`
	Winning    bool             `json:"winning"`
	SevenPairs bool             `json:"sevenPairs"`
	Groups     []chinitsu.Group `json:"groups"`
}

type DecomposeReq struct {
	Hand []int `json:"hand"`
	Tile int   `json:"tile"`
}

type DecomposeResp struct {
	Hand    []int            `json:"hand"`
	Tile    int              `json:"tile"`
	Winning bool             `json:"winning"`
	Groups  []chinitsu.Group `json:"groups"`
}

type DifficultyStat struct {
	Difficulty int     `json:"difficulty"`
	Label      string  `json:"label"`
	Total      int64   `json:"total"`
	Correct    int64   `json:"correct"`
	Accuracy   float64 `json:"accuracy"`
}

type PoolStat struct {
	Length     int   `json:"length"`
	Difficulty int   `json:"difficulty"`
	Size       int64 `json:"size"`
}

type StatsResp struct {
	Difficulties []DifficultyStat `json:"difficulties"`
	Pools        []PoolStat       `json:"pools"`
}
