package chinitsu

// firstTile 返回计数非零的最小牌值，没有则返回 0
func firstTile(c *Counts) int {
	for v := MinTile; v <= MaxTile; v++ {
		if c[v] > 0 {
			return v
		}
	}
	return 0
}

// canFormSets 剩余的牌能否恰好组成 need 个面子（刻子或顺子）
// 每层只从最小的牌开始组，先试刻子再试顺子，失败时还原计数
func canFormSets(c *Counts, need int) bool {
	if need == 0 {
		return true
	}

	first := firstTile(c)
	if first == 0 {
		return false
	}

	if c[first] >= 3 {
		c[first] -= 3
		ok := canFormSets(c, need-1)
		c[first] += 3
		if ok {
			return true
		}
	}

	if first <= MaxTile-2 && c[first+1] > 0 && c[first+2] > 0 {
		c[first]--
		c[first+1]--
		c[first+2]--
		ok := canFormSets(c, need-1)
		c[first]++
		c[first+1]++
		c[first+2]++
		if ok {
			return true
		}
	}

	return false
}

// decomposeSets 与 canFormSets 同样的搜索顺序，成功时把选中的面子追加到 out
// 计数表在返回前总是被还原
func decomposeSets(c *Counts, need int, out []Group) ([]Group, bool) {
	if need == 0 {
		return out, true
	}

	first := firstTile(c)
	if first == 0 {
		return out, false
	}

	if c[first] >= 3 {
		c[first] -= 3
		res, ok := decomposeSets(c, need-1, append(out, tripletOf(first)))
		c[first] += 3
		if ok {
			return res, true
		}
	}

	if first <= MaxTile-2 && c[first+1] > 0 && c[first+2] > 0 {
		c[first]--
		c[first+1]--
		c[first+2]--
		res, ok := decomposeSets(c, need-1, append(out, sequenceOf(first)))
		c[first]++
		c[first+1]++
		c[first+2]++
		if ok {
			return res, true
		}
	}

	return out, false
}
