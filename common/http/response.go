package http

import (
	"errors"
	"net/http"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// 预定义的响应码
const (
	CodeSuccess          = 0     // 成功
	CodeError            = -1    // 通用错误
	CodeInvalidParam     = 10001 // 参数错误
	CodeNotFound         = 10004 // 资源不存在
	CodeServerError      = 10005 // 服务器内部错误
	CodeTooManyRequests  = 10006 // 请求过于频繁
	CodeConflict         = 10007 // 状态冲突
	CodeGenerationFailed = 20001 // 出题失败
)

// 预定义的响应消息
const (
	MsgSuccess         = "success"
	MsgInvalidParam    = "invalid parameters"
	MsgNotFound        = "not found"
	MsgServerError     = "internal server error"
	MsgTooManyRequests = "too many requests"
)

// NewResponse 创建响应
func NewResponse(code int, message string, data interface{}) *Response {
	return &Response{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// Error 处理函数可以直接返回的业务错误，携带 HTTP 状态码和响应码
type Error struct {
	Status  int
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(status, code int, message string, err error) *Error {
	return &Error{Status: status, Code: code, Message: message, Err: err}
}

func ErrBadRequest(message string, err error) *Error {
	if message == "" {
		message = MsgInvalidParam
	}
	return NewError(http.StatusBadRequest, CodeInvalidParam, message, err)
}

func ErrNotFound(message string, err error) *Error {
	if message == "" {
		message = MsgNotFound
	}
	return NewError(http.StatusNotFound, CodeNotFound, message, err)
}

// Success 成功响应
func (c *Context) Success(data interface{}) {
	c.JSON(http.StatusOK, NewResponse(CodeSuccess, MsgSuccess, data))
}

// SuccessWithMessage 成功响应（自定义消息）
func (c *Context) SuccessWithMessage(message string, data interface{}) {
	c.JSON(http.StatusOK, NewResponse(CodeSuccess, message, data))
}

// Fail 把处理函数返回的 error 写成响应，*Error 保留其状态码，其余按 500 处理
func (c *Context) Fail(err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, NewResponse(apiErr.Code, apiErr.Error(), nil))
		return
	}
	c.InternalServerError(err.Error())
}

// BadRequest 400 错误请求
func (c *Context) BadRequest(message string) {
	if message == "" {
		message = MsgInvalidParam
	}
	c.JSON(http.StatusBadRequest, NewResponse(CodeInvalidParam, message, nil))
}

// NotFound 404 资源不存在
func (c *Context) NotFound(message string) {
	if message == "" {
		message = MsgNotFound
	}
	c.JSON(http.StatusNotFound, NewResponse(CodeNotFound, message, nil))
}

// InternalServerError 500 服务器内部错误
func (c *Context) InternalServerError(message string) {
	if message == "" {
		message = MsgServerError
	}
	c.JSON(http.StatusInternalServerError, NewResponse(CodeServerError, message, nil))
}

// PageResponse 列表响应
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
}

// SuccessWithList 列表成功响应
func (c *Context) SuccessWithList(list interface{}, total int64) {
	c.JSON(http.StatusOK, NewResponse(CodeSuccess, MsgSuccess, &PageResponse{List: list, Total: total}))
}
