package chinitsu

import "slices"

// Result 一次作答的判定结果
type Result struct {
	IsCorrect     bool  `json:"isCorrect"`
	SelectedWaits []int `json:"selectedWaits"`
	CorrectWaits  []int `json:"correctWaits"`
}

// CheckAnswer 选中的待牌与正确待牌完全一致（与顺序、重复无关）才算正确
func CheckAnswer(selected, waits []int) Result {
	normalized := NormalizeSelection(selected)
	correct := NormalizeSelection(waits)
	return Result{
		IsCorrect:     slices.Equal(normalized, correct),
		SelectedWaits: normalized,
		CorrectWaits:  correct,
	}
}

// NormalizeSelection 排序并去重
func NormalizeSelection(selected []int) []int {
	return slices.Compact(SortHand(selected))
}

// 作答反馈文案
const (
	MessageStart   = "準備はいい？爆速で解いてこ！🔥"
	MessageCorrect = "キャー！天才すぎ！💖 その調子！"
	MessageWrong   = "おっしい〜💦 でも次は絶対イケるし！"
	MessageLoading = "問題作ってるよ〜ん⏳"
)

func ResultMessage(r Result) string {
	if r.IsCorrect {
		return MessageCorrect
	}
	return MessageWrong
}
