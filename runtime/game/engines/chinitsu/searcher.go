package chinitsu

import (
	"slices"
	"sync"
)

// Cache Searcher 可选的外部缓存，common/cache.GeneralCache 满足该接口
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}) bool
}

// Searcher 带缓存的待牌/和牌查询，结果与 GetWaits、IsWinningHand 完全一致
// 以计数表作为 key，同一牌型不同排列共享缓存
type Searcher struct {
	cache Cache

	mu         sync.RWMutex
	waitsCache map[string][]int // 听牌缓存
	agariCache map[string]bool  // 和牌缓存
}

func NewSearcher(cache Cache) *Searcher {
	return &Searcher{
		cache:      cache,
		waitsCache: make(map[string][]int, 4096),
		agariCache: make(map[string]bool, 4096),
	}
}

// Waits 枚举听牌
func (s *Searcher) Waits(hand []int) []int {
	if len(hand)%3 != 1 {
		return []int{}
	}
	c := CountTiles(hand)
	key := "w:" + c.key()

	if v, ok := s.load(key); ok {
		if waits, ok := v.([]int); ok {
			return slices.Clone(waits)
		}
	}

	waits := waitsOf(c)
	s.store(key, slices.Clone(waits))
	return waits
}

// IsWinning 是否和牌
func (s *Searcher) IsWinning(tiles []int) bool {
	if len(tiles)%3 != 2 {
		return false
	}
	c := CountTiles(tiles)
	key := "a:" + c.key()

	if v, ok := s.load(key); ok {
		if agari, ok := v.(bool); ok {
			return agari
		}
	}

	agari := isWinningCounts(c)
	s.store(key, agari)
	return agari
}

func (s *Searcher) load(key string) (interface{}, bool) {
	if s.cache != nil {
		return s.cache.Get(key)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if key[0] == 'w' {
		v, ok := s.waitsCache[key]
		return v, ok
	}
	v, ok := s.agariCache[key]
	return v, ok
}

func (s *Searcher) store(key string, value interface{}) {
	if s.cache != nil {
		s.cache.Set(key, value)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch v := value.(type) {
	case []int:
		s.waitsCache[key] = v
	case bool:
		s.agariCache[key] = v
	}
}
