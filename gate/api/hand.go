package api

import (
	"github.com/tomo4k1/tamenchan-bootcamp/common/http"
	"github.com/tomo4k1/tamenchan-bootcamp/runtime/trainer/application/service"
)

type handReq struct {
	Hand HandInput `json:"hand" binding:"required"`
	Tile int       `json:"tile"`
}

// WaitsHandler 未完成手牌的待牌
func (h *Handler) WaitsHandler(c *http.Context) error {
	var req handReq
	if err := c.BindJSON(&req); err != nil {
		return http.ErrBadRequest("请求参数错误", err)
	}
	resp, err := h.svc.AnalyzeHand(c.Ctx(), &service.AnalyzeHandReq{Hand: req.Hand})
	if err != nil {
		return toAPIError(err)
	}
	c.Success(resp)
	return nil
}

// ClassifyHandler 完整手牌是否和牌
func (h *Handler) ClassifyHandler(c *http.Context) error {
	var req handReq
	if err := c.BindJSON(&req); err != nil {
		return http.ErrBadRequest("请求参数错误", err)
	}
	resp, err := h.svc.ClassifyHand(c.Ctx(), &service.ClassifyHandReq{Hand: req.Hand})
	if err != nil {
		return toAPIError(err)
	}
	c.Success(resp)
	return nil
}

// DecomposeHandler 手牌加和了牌的拆解
func (h *Handler) DecomposeHandler(c *http.Context) error {
	var req handReq
	if err := c.BindJSON(&req); err != nil {
		return http.ErrBadRequest("请求参数错误", err)
	}
	resp, err := h.svc.Decompose(c.Ctx(), &service.DecomposeReq{Hand: req.Hand, Tile: req.Tile})
	if err != nil {
		return toAPIError(err)
	}
	c.Success(resp)
	return nil
}
