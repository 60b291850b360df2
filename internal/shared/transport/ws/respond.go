package ws

import (
	"errors"

	"MedievalKingdoms/internal/shared/transport"
	"MedievalKingdoms/modules/kit/errx"
)

// OK 填充成功响应。
func OK(resp *WsMsgResp, data any) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = transport.OK
	resp.Body.Msg = data
}

// Fail 把 errx 错误映射为 ws 响应码，口径与 HTTP 层一致。
func Fail(resp *WsMsgResp, err error) {
	if resp == nil || resp.Body == nil {
		return
	}

	var e *errx.Error
	if !errors.As(err, &e) {
		resp.Body.Code = transport.SystemError
		resp.Body.Msg = "服务器内部错误"
		return
	}

	switch e.Code() {
	case errx.CodeInternal, errx.CodeUnavailable, errx.CodeTimeout:
		resp.Body.Code = transport.SystemError
	case errx.CodeReqParamError:
		resp.Body.Code = transport.InvalidParam
	default:
		resp.Body.Code = transport.Rejected
	}
	resp.Body.Msg = e.Msg()
}
