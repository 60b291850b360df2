package http

import (
	"errors"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"MedievalKingdoms/internal/shared/transport"
	"MedievalKingdoms/modules/kit/errx"
)

type response struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Reason string `json:"reason,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// RespondOK 统一成功响应：{"code":0,"msg":"ok","data":...}。
func RespondOK(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, response{Code: transport.OK, Msg: "ok", Data: data})
}

// RespondError 把 errx 错误映射为统一响应：
// - 业务拒绝：HTTP 200，code=Rejected，reason 携带服务内枚举
// - 参数错误：HTTP 400
// - 系统错误：HTTP 500，对外隐藏细节
func RespondError(c *gin.Context, err error) {
	transport.SetErrorReason(c.Request.Context(), err.Error())

	var e *errx.Error
	if !errors.As(err, &e) {
		c.JSON(nethttp.StatusInternalServerError, response{Code: transport.SystemError, Msg: "服务器内部错误"})
		return
	}

	switch e.Code() {
	case errx.CodeInternal, errx.CodeUnavailable, errx.CodeTimeout:
		c.JSON(nethttp.StatusInternalServerError, response{Code: transport.SystemError, Msg: e.Msg()})
	case errx.CodeReqParamError:
		c.JSON(nethttp.StatusBadRequest, response{Code: transport.InvalidParam, Msg: e.Msg()})
	default:
		c.JSON(nethttp.StatusOK, response{Code: transport.Rejected, Msg: e.Msg(), Reason: e.Reason()})
	}
}

// RespondParamError 请求绑定失败的统一出口。
func RespondParamError(c *gin.Context, err error) {
	transport.SetErrorReason(c.Request.Context(), err.Error())
	c.JSON(nethttp.StatusBadRequest, response{Code: transport.InvalidParam, Msg: "请求参数错误"})
}
