package model

import (
	"time"

	"MedievalKingdoms/internal/chat/domain"
)

// MessageDoc 世界频道消息文档。
type MessageDoc struct {
	Id        string    `bson:"_id"`
	Username  string    `bson:"username"`
	Empire    string    `bson:"empire"`
	Content   string    `bson:"content"`
	Type      string    `bson:"messageType"`
	Timestamp time.Time `bson:"timestamp"`
}

func MessageToDoc(m *domain.Message) MessageDoc {
	return MessageDoc{
		Id:        m.Id,
		Username:  m.Username,
		Empire:    m.Empire,
		Content:   m.Content,
		Type:      m.Type,
		Timestamp: m.Timestamp,
	}
}

func DocToMessage(doc MessageDoc) *domain.Message {
	return &domain.Message{
		Id:        doc.Id,
		Username:  doc.Username,
		Empire:    doc.Empire,
		Content:   doc.Content,
		Type:      doc.Type,
		Timestamp: doc.Timestamp,
	}
}

// PrivateMessageDoc 私信文档。
type PrivateMessageDoc struct {
	Id        string    `bson:"_id"`
	Sender    string    `bson:"sender"`
	Receiver  string    `bson:"receiver"`
	Content   string    `bson:"content"`
	Read      bool      `bson:"read"`
	Timestamp time.Time `bson:"timestamp"`
}

func PrivateToDoc(m *domain.PrivateMessage) PrivateMessageDoc {
	return PrivateMessageDoc{
		Id:        m.Id,
		Sender:    m.Sender,
		Receiver:  m.Receiver,
		Content:   m.Content,
		Read:      m.Read,
		Timestamp: m.Timestamp,
	}
}

func DocToPrivate(doc PrivateMessageDoc) *domain.PrivateMessage {
	return &domain.PrivateMessage{
		Id:        doc.Id,
		Sender:    doc.Sender,
		Receiver:  doc.Receiver,
		Content:   doc.Content,
		Read:      doc.Read,
		Timestamp: doc.Timestamp,
	}
}
