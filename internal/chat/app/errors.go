package app

import "MedievalKingdoms/modules/kit/errx"

type Code = errx.Code

const (
	CodeEmptyContent     Code = "CHAT_EMPTY_CONTENT"
	CodeContentTooLong   Code = "CHAT_CONTENT_TOO_LONG"
	CodeReceiverNotFound Code = "CHAT_RECEIVER_NOT_FOUND"
	CodeInternalServer   Code = errx.CodeInternal
	CodeUnavailable      Code = errx.CodeUnavailable
)

type Error = errx.Error

func Wrap(code Code, msg string, cause error) *Error {
	return errx.NewSys(code, msg).WithCause(cause)
}

var (
	ErrEmptyContent     = errx.NewBiz(CodeEmptyContent, "消息内容不能为空")
	ErrContentTooLong   = errx.NewBiz(CodeContentTooLong, "消息内容过长")
	ErrReceiverNotFound = errx.NewBiz(CodeReceiverNotFound, "收件人不存在")
)
