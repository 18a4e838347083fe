package api

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/vo"
	"github.com/tomo4k1/tamenchan-bootcamp/runtime/game/engines/chinitsu"
)

var errHandFormat = errors.New("hand must be an array of tiles or a digit string")

// HandInput 手牌既可以是 [1,1,1,2] 也可以是 "1112"
type HandInput []int

func (h *HandInput) UnmarshalJSON(data []byte) error {
	var tiles []int
	if err := json.Unmarshal(data, &tiles); err == nil {
		*h = tiles
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errHandFormat
	}
	tiles, err := chinitsu.ParseHand(s)
	if err != nil {
		return err
	}
	*h = tiles
	return nil
}

// DifficultyInput 难度既可以是数字也可以是 "hard"、"上級" 这样的名称，缺省为 0
type DifficultyInput int

func (d *DifficultyInput) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return errors.New("difficulty must be a number or a name")
		}
		if n == 0 {
			*d = 0
			return nil
		}
		s = strconv.Itoa(n)
	}
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := vo.ParseDifficulty(s)
	if err != nil {
		return err
	}
	*d = DifficultyInput(parsed)
	return nil
}
