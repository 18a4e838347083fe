package chinitsu

type GroupKind int

const (
	GroupInvalid  GroupKind = iota
	GroupPair               // 雀头 / 对子
	GroupTriplet            // 刻子
	GroupSequence           // 顺子
)

func (k GroupKind) String() string {
	switch k {
	case GroupPair:
		return "pair"
	case GroupTriplet:
		return "triplet"
	case GroupSequence:
		return "sequence"
	default:
		return "invalid"
	}
}

// Group 和牌拆解中的一组牌：[n,n]、[n,n,n] 或 [n,n+1,n+2]
type Group []int

func (g Group) Kind() GroupKind {
	switch len(g) {
	case 2:
		if g[0] == g[1] && IsValidTile(g[0]) {
			return GroupPair
		}
	case 3:
		if !IsValidTile(g[0]) {
			return GroupInvalid
		}
		if g[0] == g[1] && g[1] == g[2] {
			return GroupTriplet
		}
		if g[1] == g[0]+1 && g[2] == g[0]+2 && g[0] <= MaxTile-2 {
			return GroupSequence
		}
	}
	return GroupInvalid
}

func (g Group) String() string {
	return FormatHand(g)
}

func pairOf(v int) Group    { return Group{v, v} }
func tripletOf(v int) Group { return Group{v, v, v} }
func sequenceOf(v int) Group {
	return Group{v, v + 1, v + 2}
}

// FlattenGroups 把拆解结果展开成升序牌序列
func FlattenGroups(groups []Group) []int {
	var tiles []int
	for _, g := range groups {
		tiles = append(tiles, g...)
	}
	return SortHand(tiles)
}
