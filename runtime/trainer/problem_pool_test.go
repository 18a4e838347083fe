package trainer

import (
	"context"
	"errors"
	"testing"

	"github.com/tomo4k1/tamenchan-bootcamp/common/config"
	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/repository"
	"github.com/tomo4k1/tamenchan-bootcamp/core/infrastructure/realtime"
	"github.com/tomo4k1/tamenchan-bootcamp/runtime/game/engines/chinitsu"
)

func TestPoolKeys(t *testing.T) {
	keys := PoolKeys(config.PoolConf{Lengths: []int{7, 8, 13}, Difficulties: []int{1, 3, 5}})
	want := []repository.PoolKey{
		{Length: 7, Difficulty: 1},
		{Length: 7, Difficulty: 3},
		{Length: 13, Difficulty: 1},
		{Length: 13, Difficulty: 3},
	}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %v", len(want), keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected key %v at %d, got %v", want[i], i, keys[i])
		}
	}
}

func TestFillTopsUpEveryPool(t *testing.T) {
	repo := realtime.NewMemoryProblemPoolRepository()
	cfg := config.PoolConf{Size: 5, Workers: 3, Lengths: []int{7, 10}, Difficulties: []int{1, 2}}
	pool := NewProblemPool(cfg, repo, chinitsu.NewGenerator(&chinitsu.Options{Seed: 42}))
	ctx := context.Background()

	if err := pool.Fill(ctx); err != nil {
		t.Fatalf("fill: %v", err)
	}
	for _, key := range pool.Keys() {
		size, _ := repo.Size(ctx, key)
		if size != 5 {
			t.Fatalf("expected pool %v to hold 5, got %d", key, size)
		}
		p, err := repo.Pop(ctx, key)
		if err != nil {
			t.Fatalf("pop: %v", err)
		}
		if len(p.Hand) != key.Length {
			t.Fatalf("expected %d tiles, got %v", key.Length, p.Hand)
		}
		if len(p.Waits) < key.Difficulty {
			t.Fatalf("expected at least %d waits, got %v", key.Difficulty, p.Waits)
		}
	}

	// 只补缺少的部分
	if err := pool.Fill(ctx); err != nil {
		t.Fatalf("fill: %v", err)
	}
	size, _ := repo.Size(ctx, repository.PoolKey{Length: 7, Difficulty: 1})
	if size != 5 {
		t.Fatalf("expected refill to 5, got %d", size)
	}
}

func TestFillReportsGenerationFailure(t *testing.T) {
	repo := realtime.NewMemoryProblemPoolRepository()
	never := func([]int) []int { return nil }
	gen := chinitsu.NewGenerator(&chinitsu.Options{Seed: 1, MaxAttempts: 5, Waits: never})
	pool := NewProblemPool(config.PoolConf{Size: 2, Workers: 2, Lengths: []int{7}, Difficulties: []int{1}}, repo, gen)

	err := pool.Fill(context.Background())
	if !errors.Is(err, chinitsu.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	size, _ := repo.Size(context.Background(), repository.PoolKey{Length: 7, Difficulty: 1})
	if size != 0 {
		t.Fatalf("expected nothing pushed, got %d", size)
	}
}

func TestStartStop(t *testing.T) {
	repo := realtime.NewMemoryProblemPoolRepository()
	pool := NewProblemPool(config.PoolConf{Size: 1, Workers: 1, Interval: 10, Lengths: []int{7}, Difficulties: []int{1}}, repo, nil)
	pool.Start()
	pool.Stop()
	pool.Stop()
}
