package chinitsu

// IsWinningHand 判断一手完整的牌（张数 ≡ 2 mod 3）是否和牌
// 只看牌型，不判断役。七对子只在 14 张时成立
// 张数按传入的切片长度判断，越界的值不计数但仍占张数
func IsWinningHand(tiles []int) bool {
	if len(tiles)%3 != 2 {
		return false
	}
	c := CountTiles(tiles)
	return isWinningCounts(c)
}

func isWinningCounts(c Counts) bool {
	n := c.Total()
	if n%3 != 2 {
		return false
	}
	if n == SevenPairsSize && IsSevenPairs(c) {
		return true
	}
	return IsStandardForm(c)
}

// IsSevenPairs 七种不同的对子，四张同牌不算两对
func IsSevenPairs(c Counts) bool {
	pairs := 0
	for v := MinTile; v <= MaxTile; v++ {
		switch c[v] {
		case 0:
		case 2:
			pairs++
		default:
			return false
		}
	}
	return pairs == 7
}

// IsStandardForm 一个雀头 + (n-2)/3 个面子
func IsStandardForm(c Counts) bool {
	n := c.Total()
	if n%3 != 2 {
		return false
	}
	need := (n - 2) / 3
	work := c
	for v := MinTile; v <= MaxTile; v++ {
		if work[v] < 2 {
			continue
		}
		work[v] -= 2
		ok := canFormSets(&work, need)
		work[v] += 2
		if ok {
			return true
		}
	}
	return false
}
