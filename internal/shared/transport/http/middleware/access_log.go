package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"MedievalKingdoms/internal/shared/transport"
	"MedievalKingdoms/modules/kit/logx"
)

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(data []byte) (int, error) {
	_, _ = w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	_, _ = w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// AccessLog 统一写访问日志。业务码取响应体里的 code 字段；
// 取不到时按 HTTP 状态归类（4xx/5xx 记系统错误码）。
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		ctx := transport.NewContextWithParent(c.Request.Context(), c.Request.Method+" "+route)
		c.Request = c.Request.WithContext(ctx)

		bw := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = bw

		c.Next()

		transport.SetBizCode(ctx, bizCodeOf(bw.body.Bytes(), c.Writer.Status()))
		transport.WriteAccessLog(ctx, log)
	}
}

func bizCodeOf(body []byte, httpStatus int) transport.BizCode {
	var payload struct {
		Code *int `json:"code"`
	}
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil && payload.Code != nil {
		return transport.BizCode(*payload.Code)
	}
	if httpStatus >= http.StatusBadRequest {
		return transport.BizCode(transport.SystemError)
	}
	return transport.BizCode(transport.OK)
}
