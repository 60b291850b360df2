package app

import (
	"time"

	"MedievalKingdoms/internal/chat/domain"
)

// MessageView 世界频道消息视图。
type MessageView struct {
	Id        string `json:"id"`
	Username  string `json:"username"`
	Empire    string `json:"empire"`
	Content   string `json:"content"`
	Type      string `json:"messageType"`
	Timestamp string `json:"timestamp"`
}

// PrivateMessageView 私信视图。
type PrivateMessageView struct {
	Id        string `json:"id"`
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Content   string `json:"content"`
	Read      bool   `json:"read"`
	Timestamp string `json:"timestamp"`
}

func toMessageView(m *domain.Message) *MessageView {
	return &MessageView{
		Id:        m.Id,
		Username:  m.Username,
		Empire:    m.Empire,
		Content:   m.Content,
		Type:      m.Type,
		Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
	}
}

func toPrivateView(m *domain.PrivateMessage) *PrivateMessageView {
	return &PrivateMessageView{
		Id:        m.Id,
		Sender:    m.Sender,
		Receiver:  m.Receiver,
		Content:   m.Content,
		Read:      m.Read,
		Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
	}
}
