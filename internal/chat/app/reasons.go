package app

import "MedievalKingdoms/internal/shared/reasoncode"

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{Code: c, Message: m}
}

var (
	ReasonEmptyContent     = NewReason(reasoncode.ChatEmptyContent, "消息内容不能为空")
	ReasonContentTooLong   = NewReason(reasoncode.ChatContentTooLong, "消息内容过长")
	ReasonReceiverNotFound = NewReason(reasoncode.ChatReceiverNotFound, "收件人不存在")
)

var ReasonMessageRepoUnavailable = NewReason("CHAT_MESSAGE_REPO_UNAVAILABLE", "消息存储库不可用")
