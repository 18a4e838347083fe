package chinitsu

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
)

const (
	DefaultLength      = 13
	DefaultMinWaits    = 1
	DefaultMaxAttempts = 10000
)

var ErrGenerationFailed = errors.New("problem generation failed")

// GenerationError 在尝试次数用完仍凑不出满足难度的手牌时返回
type GenerationError struct {
	Length   int
	MinWaits int
	Attempts int
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate a %d-tile problem with at least %d waits after %d attempts",
		e.Length, e.MinWaits, e.Attempts)
}

func (e *GenerationError) Unwrap() error {
	return ErrGenerationFailed
}

// Problem 一道练习题：排好序的手牌及其全部待牌
type Problem struct {
	Hand  []int `json:"hand"`
	Waits []int `json:"waits"`
}

type Options struct {
	MaxAttempts int
	// Seed 非 0 时使用固定种子，便于复现
	Seed uint64
	// Waits 计算待牌的函数，默认 GetWaits，可以换成带缓存的 Searcher.Waits
	Waits func(hand []int) []int
}

// Generator 随机出题器，可并发使用
type Generator struct {
	maxAttempts int
	waits       func([]int) []int

	mu  sync.Mutex
	rng *rand.Rand // nil 时使用全局随机源
}

func NewGenerator(opts *Options) *Generator {
	g := &Generator{
		maxAttempts: DefaultMaxAttempts,
		waits:       GetWaits,
	}
	if opts == nil {
		return g
	}
	if opts.MaxAttempts > 0 {
		g.maxAttempts = opts.MaxAttempts
	}
	if opts.Waits != nil {
		g.waits = opts.Waits
	}
	if opts.Seed != 0 {
		g.rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	}
	return g
}

var defaultGenerator = NewGenerator(nil)

// GenerateProblem 使用默认出题器
func GenerateProblem(length, minWaits int) (*Problem, error) {
	return defaultGenerator.Generate(length, minWaits)
}

// Generate 从 4×(1..9) 的牌山中无放回地随机抽 length 张，
// 待牌数不少于 minWaits 时返回，否则整手重抽，超过 maxAttempts 次返回 GenerationError
func (g *Generator) Generate(length, minWaits int) (*Problem, error) {
	if err := ValidateProblemLength(length); err != nil {
		return nil, err
	}
	if minWaits < DefaultMinWaits {
		minWaits = DefaultMinWaits
	}

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		hand := SortHand(g.draw(length))
		waits := g.waits(hand)
		if len(waits) >= minWaits {
			return &Problem{Hand: hand, Waits: waits}, nil
		}
	}

	return nil, &GenerationError{Length: length, MinWaits: minWaits, Attempts: g.maxAttempts}
}

func (g *Generator) MaxAttempts() int {
	return g.maxAttempts
}

// draw 部分 Fisher-Yates 洗牌，每张物理牌最多被抽到一次
func (g *Generator) draw(n int) []int {
	var bag [MaxTile * MaxCopies]int
	for i := range bag {
		bag[i] = i/MaxCopies + MinTile
	}
	n = min(n, len(bag))

	if g.rng != nil {
		g.mu.Lock()
		defer g.mu.Unlock()
	}
	for i := 0; i < n; i++ {
		j := i + g.intN(len(bag)-i)
		bag[i], bag[j] = bag[j], bag[i]
	}
	return append([]int(nil), bag[:n]...)
}

func (g *Generator) intN(n int) int {
	if g.rng != nil {
		return g.rng.IntN(n)
	}
	return rand.IntN(n)
}
