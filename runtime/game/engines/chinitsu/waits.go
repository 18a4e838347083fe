package chinitsu

// GetWaits 枚举听牌：依次加入 1..9，能和牌的即为待牌
// 手里已有 4 张的牌不再尝试，结果升序且无重复
func GetWaits(hand []int) []int {
	if len(hand)%3 != 1 {
		return []int{}
	}
	return waitsOf(CountTiles(hand))
}

func waitsOf(c Counts) []int {
	waits := make([]int, 0, MaxTile)
	for v := MinTile; v <= MaxTile; v++ {
		if c[v] >= MaxCopies {
			continue
		}
		work := c
		work[v]++
		if isWinningCounts(work) {
			waits = append(waits, v)
		}
	}
	return waits
}

// Ukeire 待牌的剩余张数（不考虑场上已见的牌）
func Ukeire(hand []int, waits []int) int {
	c := CountTiles(hand)
	total := 0
	for _, w := range waits {
		if !IsValidTile(w) {
			continue
		}
		if left := MaxCopies - c[w]; left > 0 {
			total += left
		}
	}
	return total
}
