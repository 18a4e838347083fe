package api

import (
	"errors"
	"io"

	"github.com/tomo4k1/tamenchan-bootcamp/common/http"
	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/vo"
	"github.com/tomo4k1/tamenchan-bootcamp/runtime/trainer/application/service"
)

// IssueProblemHandler 出题，请求体可以为空
func (h *Handler) IssueProblemHandler(c *http.Context) error {
	var req struct {
		Length     int             `json:"length"`
		Difficulty DifficultyInput `json:"difficulty"`
		Reveal     bool            `json:"reveal"`
	}
	if err := c.BindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return http.ErrBadRequest("请求参数错误", err)
	}

	resp, err := h.svc.IssueProblem(c.Ctx(), &service.IssueProblemReq{
		Length:     req.Length,
		Difficulty: int(req.Difficulty),
		Reveal:     req.Reveal,
	})
	if err != nil {
		return toAPIError(err)
	}
	c.Success(resp)
	return nil
}

func (h *Handler) SubmitAnswerHandler(c *http.Context) error {
	var req struct {
		Waits HandInput `json:"waits"`
	}
	if err := c.BindJSON(&req); err != nil {
		return http.ErrBadRequest("请求参数错误", err)
	}

	resp, err := h.svc.SubmitAnswer(c.Ctx(), &service.SubmitAnswerReq{
		ProblemID: c.GetParam("id"),
		Waits:     req.Waits,
		ClientIP:  c.ClientIP(),
	})
	if err != nil {
		return toAPIError(err)
	}
	c.SuccessWithMessage(resp.Message, resp)
	return nil
}

type difficultyView struct {
	Level       int    `json:"level"`
	Label       string `json:"label"`
	Description string `json:"description"`
	MinWaits    int    `json:"minWaits"`
}

func DifficultiesHandler(c *http.Context) error {
	list := make([]difficultyView, 0, len(vo.Difficulties()))
	for _, d := range vo.Difficulties() {
		list = append(list, difficultyView{
			Level:       int(d),
			Label:       d.Label(),
			Description: d.Description(),
			MinWaits:    d.MinWaits(),
		})
	}
	c.SuccessWithList(list, int64(len(list)))
	return nil
}
