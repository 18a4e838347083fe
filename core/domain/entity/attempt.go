package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attempt 一次作答记录
type Attempt struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	ProblemID     string             `bson:"problem_id" json:"problemId"`
	Hand          []int              `bson:"hand" json:"hand"`
	Difficulty    int                `bson:"difficulty" json:"difficulty"`
	SelectedWaits []int              `bson:"selected_waits" json:"selectedWaits"`
	CorrectWaits  []int              `bson:"correct_waits" json:"correctWaits"`
	IsCorrect     bool               `bson:"is_correct" json:"isCorrect"`
	ClientIP      string             `bson:"client_ip,omitempty" json:"-"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}

func NewAttempt(problem *IssuedProblem, selected, correct []int, isCorrect bool) *Attempt {
	return &Attempt{
		ID:            primitive.NewObjectID(),
		ProblemID:     problem.ID,
		Hand:          problem.Hand,
		Difficulty:    problem.Difficulty,
		SelectedWaits: selected,
		CorrectWaits:  correct,
		IsCorrect:     isCorrect,
		CreatedAt:     time.Now(),
	}
}

// DifficultyStats 按难度汇总的正确率
type DifficultyStats struct {
	Difficulty int   `bson:"_id" json:"difficulty"`
	Total      int64 `bson:"total" json:"total"`
	Correct    int64 `bson:"correct" json:"correct"`
}

func (s DifficultyStats) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}
