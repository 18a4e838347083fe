package chinitsu

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	MinTile   = 1
	MaxTile   = 9
	MaxCopies = 4 // 同一种牌的物理张数上限

	SevenPairsSize = 14
)

var (
	ErrInvalidTile   = errors.New("invalid tile value")
	ErrTooManyCopies = errors.New("more than four copies of a tile")
	ErrInvalidLength = errors.New("invalid hand length")
)

// Counts 牌的计数表，下标 1..9 对应牌值，下标 0 不使用
type Counts [MaxTile + 1]int

// CountTiles 统计每种牌的张数，超出 1..9 的值直接忽略
func CountTiles(tiles []int) Counts {
	var c Counts
	for _, t := range tiles {
		if IsValidTile(t) {
			c[t]++
		}
	}
	return c
}

// Total 计数表中的牌总数
func (c Counts) Total() int {
	total := 0
	for v := MinTile; v <= MaxTile; v++ {
		total += c[v]
	}
	return total
}

// Tiles 按升序展开成牌序列
func (c Counts) Tiles() []int {
	tiles := make([]int, 0, c.Total())
	for v := MinTile; v <= MaxTile; v++ {
		for i := 0; i < c[v]; i++ {
			tiles = append(tiles, v)
		}
	}
	return tiles
}

func (c Counts) key() string {
	var b [MaxTile]byte
	for v := MinTile; v <= MaxTile; v++ {
		b[v-1] = byte('0' + c[v])
	}
	return string(b[:])
}

func IsValidTile(v int) bool {
	return v >= MinTile && v <= MaxTile
}

// SortHand 返回升序排列的副本，不修改入参
func SortHand(hand []int) []int {
	sorted := slices.Clone(hand)
	slices.Sort(sorted)
	return sorted
}

// ValidateProblemLength 出题手牌只允许 7/10/13 张
func ValidateProblemLength(n int) error {
	switch n {
	case 7, 10, 13:
		return nil
	default:
		return fmt.Errorf("%w: %d (expected 7, 10 or 13)", ErrInvalidLength, n)
	}
}

// ParseHand 解析 "1112345678999" 这样的紧凑写法，空格、逗号、短横线会被跳过
func ParseHand(s string) ([]int, error) {
	hand := make([]int, 0, len(s))
	for _, r := range s {
		switch {
		case r == ' ' || r == ',' || r == '-' || r == '\t':
			continue
		case r >= '1' && r <= '9':
			hand = append(hand, int(r-'0'))
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidTile, r)
		}
	}
	if err := ValidateTiles(hand); err != nil {
		return nil, err
	}
	return hand, nil
}

// ValidateTiles 检查牌值范围和张数上限
func ValidateTiles(tiles []int) error {
	var c Counts
	for _, t := range tiles {
		if !IsValidTile(t) {
			return fmt.Errorf("%w: %d", ErrInvalidTile, t)
		}
		c[t]++
		if c[t] > MaxCopies {
			return fmt.Errorf("%w: %d", ErrTooManyCopies, t)
		}
	}
	return nil
}

var glyphs = [MaxTile + 1]string{"", "🀇", "🀈", "🀉", "🀊", "🀋", "🀌", "🀍", "🀎", "🀏"}

// Glyph 牌值对应的万子字符，未知值显示为 "?"
func Glyph(v int) string {
	if !IsValidTile(v) {
		return "?"
	}
	return glyphs[v]
}

func RenderHand(hand []int) string {
	var sb strings.Builder
	for _, t := range hand {
		sb.WriteString(Glyph(t))
	}
	return sb.String()
}

// FormatHand 输出紧凑数字写法，与 ParseHand 互逆
func FormatHand(hand []int) string {
	var sb strings.Builder
	for _, t := range hand {
		if IsValidTile(t) {
			sb.WriteByte(byte('0' + t))
		} else {
			sb.WriteByte('?')
		}
	}
	return sb.String()
}
