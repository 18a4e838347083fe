package chinitsu

// GetWinningDecomposition 返回 hand+winTile 的一种和牌拆解
// 七对子按牌值升序返回七个对子；否则按雀头从小到大尝试，返回第一个成功的 [雀头, 面子...]
// 不能和牌时返回空切片，和了牌加入后超过 4 张同样视为不能和牌
func GetWinningDecomposition(hand []int, winTile int) []Group {
	if !IsValidTile(winTile) || len(hand)%3 != 1 {
		return []Group{}
	}
	c := CountTiles(hand)
	c[winTile]++
	if c[winTile] > MaxCopies {
		return []Group{}
	}
	return decompose(c)
}

// DecomposeHand 对已经完整的一手牌做同样的拆解
func DecomposeHand(tiles []int) []Group {
	if len(tiles)%3 != 2 {
		return []Group{}
	}
	return decompose(CountTiles(tiles))
}

func decompose(c Counts) []Group {
	n := c.Total()
	if n%3 != 2 {
		return []Group{}
	}

	if n == SevenPairsSize && IsSevenPairs(c) {
		pairs := make([]Group, 0, 7)
		for v := MinTile; v <= MaxTile; v++ {
			if c[v] == 2 {
				pairs = append(pairs, pairOf(v))
			}
		}
		return pairs
	}

	need := (n - 2) / 3
	work := c
	for v := MinTile; v <= MaxTile; v++ {
		if work[v] < 2 {
			continue
		}
		work[v] -= 2
		groups := make([]Group, 1, need+1)
		groups[0] = pairOf(v)
		res, ok := decomposeSets(&work, need, groups)
		work[v] += 2
		if ok {
			return res
		}
	}
	return []Group{}
}
