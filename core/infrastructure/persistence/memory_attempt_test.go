package persistence

import (
	"context"
	"testing"

	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/entity"
)

func newAttempt(difficulty int, correct bool) *entity.Attempt {
	p := entity.NewIssuedProblem([]int{2, 3, 4, 5}, []int{2, 5}, difficulty)
	return entity.NewAttempt(p, []int{2, 5}, []int{2, 5}, correct)
}

func TestMemoryAttemptRepository_ListRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAttemptRepository(3)

	var saved []*entity.Attempt
	for i := 0; i < 5; i++ {
		a := newAttempt(1, true)
		saved = append(saved, a)
		if err := repo.Save(ctx, a); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	got, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("capacity 3 expected 3 attempts, got %d", len(got))
	}
	if got[0] != saved[4] || got[2] != saved[2] {
		t.Fatalf("expected newest first")
	}

	if got, _ := repo.ListRecent(ctx, 1); len(got) != 1 || got[0] != saved[4] {
		t.Fatalf("limit 1 expected newest attempt")
	}
}

func TestMemoryAttemptRepository_Stats(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAttemptRepository(2)
	_ = repo.Save(ctx, newAttempt(3, true))
	_ = repo.Save(ctx, newAttempt(3, false))
	_ = repo.Save(ctx, newAttempt(1, true))
	_ = repo.Save(ctx, newAttempt(3, true))

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 2 || stats[0].Difficulty != 1 || stats[1].Difficulty != 3 {
		t.Fatalf("expected stats for difficulty 1 and 3, got %+v", stats)
	}
	if stats[1].Total != 3 || stats[1].Correct != 2 {
		t.Fatalf("difficulty 3 expected 2/3, got %+v", stats[1])
	}
	if acc := stats[1].Accuracy(); acc < 0.66 || acc > 0.67 {
		t.Fatalf("accuracy expected 0.666, got %f", acc)
	}
}
