package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxContentLen 单条消息最大长度。
const MaxContentLen = 500

const (
	TypeGlobal = "global"
	TypeSystem = "system"
)

// SystemUsername 系统公告的发件人。
const SystemUsername = "SYSTEM"

var (
	ErrEmptyContent   = errors.New("message content is required")
	ErrContentTooLong = errors.New("message too long")
)

// Message 世界频道消息。
type Message struct {
	Id        string
	Username  string
	Empire    string
	Content   string
	Type      string
	Timestamp time.Time
}

// NewGlobalMessage 创建世界频道消息，内容修剪空白后校验。
func NewGlobalMessage(username, empire, content string) (*Message, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}
	return &Message{
		Id:        uuid.NewString(),
		Username:  username,
		Empire:    empire,
		Content:   content,
		Type:      TypeGlobal,
		Timestamp: time.Now().UTC(),
	}, nil
}

// NewSystemMessage 创建系统公告。
func NewSystemMessage(content string) (*Message, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}
	return &Message{
		Id:        uuid.NewString(),
		Username:  SystemUsername,
		Empire:    "system",
		Content:   content,
		Type:      TypeSystem,
		Timestamp: time.Now().UTC(),
	}, nil
}

// PrivateMessage 私信。
type PrivateMessage struct {
	Id        string
	Sender    string
	Receiver  string
	Content   string
	Read      bool
	Timestamp time.Time
}

func NewPrivateMessage(sender, receiver, content string) (*PrivateMessage, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}
	return &PrivateMessage{
		Id:        uuid.NewString(),
		Sender:    sender,
		Receiver:  receiver,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}, nil
}

func normalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	if len(content) > MaxContentLen {
		return "", ErrContentTooLong
	}
	return content, nil
}
