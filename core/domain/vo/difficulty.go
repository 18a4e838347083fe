package vo

import (
	"fmt"
	"strconv"
	"strings"
)

// Difficulty 难度，数值即最少待牌数
type Difficulty int

const (
	// DifficultyEasy 初級：任意待牌数
	DifficultyEasy Difficulty = iota + 1
	// DifficultyNormal 中級：2 面以上
	DifficultyNormal
	// DifficultyHard 上級：3 面以上
	DifficultyHard
)

const DefaultDifficulty = DifficultyHard

var difficultyLabels = map[Difficulty]struct {
	label       string
	description string
}{
	DifficultyEasy:   {"初級", "全種"},
	DifficultyNormal: {"中級", "2面以上"},
	DifficultyHard:   {"上級", "3面以上"},
}

func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

func (d Difficulty) Valid() bool {
	_, ok := difficultyLabels[d]
	return ok
}

// MinWaits 出题时要求的最少待牌数
func (d Difficulty) MinWaits() int {
	return int(d)
}

func (d Difficulty) Label() string {
	if l, ok := difficultyLabels[d]; ok {
		return l.label
	}
	return "不明"
}

func (d Difficulty) Description() string {
	if l, ok := difficultyLabels[d]; ok {
		return l.description
	}
	return ""
}

func (d Difficulty) String() string {
	return fmt.Sprintf("%s(%s)", d.Label(), d.Description())
}

// ParseDifficulty 支持数字和名称：1/easy/初級、2/normal/中級、3/hard/上級
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if n, err := strconv.Atoi(s); err == nil {
		d := Difficulty(n)
		if !d.Valid() {
			return 0, fmt.Errorf("unknown difficulty: %d", n)
		}
		return d, nil
	}
	switch s {
	case "easy", "初級":
		return DifficultyEasy, nil
	case "normal", "medium", "中級":
		return DifficultyNormal, nil
	case "hard", "上級":
		return DifficultyHard, nil
	}
	return 0, fmt.Errorf("unknown difficulty: %q", s)
}
