package api

import (
	"strconv"

	"github.com/tomo4k1/tamenchan-bootcamp/common/http"
)

func (h *Handler) StatsHandler(c *http.Context) error {
	resp, err := h.svc.Stats(c.Ctx())
	if err != nil {
		return toAPIError(err)
	}
	c.Success(resp)
	return nil
}

// RecentAttemptsHandler ?limit= 默认 20，最多 100
func (h *Handler) RecentAttemptsHandler(c *http.Context) error {
	limit, err := strconv.Atoi(c.GetQueryWithDefault("limit", "20"))
	if err != nil {
		return http.ErrBadRequest("limit 必须是整数", err)
	}
	attempts, err := h.svc.RecentAttempts(c.Ctx(), limit)
	if err != nil {
		return toAPIError(err)
	}
	c.SuccessWithList(attempts, int64(len(attempts)))
	return nil
}
