package api

import (
	"errors"
	nethttp "net/http"

	"github.com/tomo4k1/tamenchan-bootcamp/common/http"
	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/repository"
	"github.com/tomo4k1/tamenchan-bootcamp/runtime/game/engines/chinitsu"
	"github.com/tomo4k1/tamenchan-bootcamp/runtime/trainer/application/service"
)

// toAPIError 业务错误转成带状态码的响应，未知错误原样返回按 500 处理
func toAPIError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, chinitsu.ErrGenerationFailed):
		return http.NewError(nethttp.StatusUnprocessableEntity, http.CodeGenerationFailed, "出题失败，请降低难度后重试", err)
	case errors.Is(err, repository.ErrProblemNotFound):
		return http.ErrNotFound("题目不存在或已过期", err)
	case errors.Is(err, repository.ErrProblemAnswered):
		return http.NewError(nethttp.StatusConflict, http.CodeConflict, "题目已经作答过了", err)
	case errors.Is(err, chinitsu.ErrInvalidTile),
		errors.Is(err, chinitsu.ErrTooManyCopies),
		errors.Is(err, chinitsu.ErrInvalidLength),
		errors.Is(err, service.ErrInvalidHand),
		errors.Is(err, service.ErrInvalidDifficulty):
		return http.ErrBadRequest("请求参数错误", err)
	default:
		return err
	}
}
