package chinitsu

import (
	"errors"
	"slices"
	"sync"
	"testing"
)

func TestGenerateProblem_Lengths(t *testing.T) {
	for _, length := range []int{7, 10, 13} {
		p, err := GenerateProblem(length, 1)
		if err != nil {
			t.Fatalf("length %d: unexpected error %v", length, err)
		}
		if len(p.Hand) != length {
			t.Fatalf("hand length expected %d, got %d", length, len(p.Hand))
		}
		if !slices.IsSorted(p.Hand) {
			t.Fatalf("hand expected sorted, got %v", p.Hand)
		}
		if err := ValidateTiles(p.Hand); err != nil {
			t.Fatalf("generated hand %v invalid: %v", p.Hand, err)
		}
		if !slices.Equal(p.Waits, GetWaits(p.Hand)) {
			t.Fatalf("waits %v do not match hand %v", p.Waits, p.Hand)
		}
	}
}

func TestGenerateProblem_DifficultyFloor(t *testing.T) {
	g := NewGenerator(&Options{Seed: 99})
	for _, floor := range []int{1, 2, 3} {
		for i := 0; i < 20; i++ {
			p, err := g.Generate(13, floor)
			if err != nil {
				t.Fatalf("floor %d: unexpected error %v", floor, err)
			}
			if len(p.Waits) < floor {
				t.Fatalf("floor %d: got %d waits %v for %v", floor, len(p.Waits), p.Waits, p.Hand)
			}
		}
	}
}

func TestGenerateProblem_ZeroFloorMeansOne(t *testing.T) {
	p, err := NewGenerator(&Options{Seed: 5}).Generate(7, 0)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(p.Waits) == 0 {
		t.Fatalf("floor 0 must still require at least one wait, got %v", p)
	}
}

func TestGenerateProblem_Unreachable(t *testing.T) {
	g := NewGenerator(&Options{MaxAttempts: 50, Seed: 1})
	_, err := g.Generate(7, 10)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %T", err)
	}
	if genErr.MinWaits != 10 || genErr.Attempts != 50 || genErr.Length != 7 {
		t.Fatalf("unexpected error fields %+v", genErr)
	}
}

func TestGenerateProblem_InvalidLength(t *testing.T) {
	if _, err := GenerateProblem(14, 1); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

func TestGenerator_SeedIsDeterministic(t *testing.T) {
	a := NewGenerator(&Options{Seed: 123})
	b := NewGenerator(&Options{Seed: 123})
	for i := 0; i < 10; i++ {
		pa, errA := a.Generate(13, 2)
		pb, errB := b.Generate(13, 2)
		if errA != nil || errB != nil {
			t.Fatalf("unexpected errors %v %v", errA, errB)
		}
		if !slices.Equal(pa.Hand, pb.Hand) {
			t.Fatalf("round %d: same seed produced %v and %v", i, pa.Hand, pb.Hand)
		}
	}
}

func TestGenerator_DrawRespectsBag(t *testing.T) {
	g := NewGenerator(&Options{Seed: 8})
	all := g.draw(36)
	c := CountTiles(all)
	for v := MinTile; v <= MaxTile; v++ {
		if c[v] != MaxCopies {
			t.Fatalf("full draw expected 4 copies of %d, got %d", v, c[v])
		}
	}
	if got := len(g.draw(50)); got != 36 {
		t.Fatalf("oversized draw expected to stop at 36 tiles, got %d", got)
	}
}

func TestGenerator_Concurrent(t *testing.T) {
	g := NewGenerator(&Options{Seed: 77})
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := g.Generate(10, 2)
			if err != nil {
				errs <- err
				return
			}
			if len(p.Waits) < 2 {
				errs <- errors.New("floor violated")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent generate: %v", err)
	}
}

func TestGenerator_CustomWaits(t *testing.T) {
	s := NewSearcher(nil)
	g := NewGenerator(&Options{Seed: 3, Waits: s.Waits})
	p, err := g.Generate(13, 3)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !slices.Equal(p.Waits, GetWaits(p.Hand)) {
		t.Fatalf("searcher waits %v differ from GetWaits %v", p.Waits, GetWaits(p.Hand))
	}
}
