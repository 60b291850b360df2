package port

import (
	"context"
	"time"

	"MedievalKingdoms/internal/chat/domain"
)

// MessageStore 聊天消息存储端口。
type MessageStore interface {
	InsertGlobal(ctx context.Context, m *domain.Message) error
	// RecentGlobal 最近的世界频道消息，按时间正序返回。
	RecentGlobal(ctx context.Context, limit int64) ([]*domain.Message, error)
	// TrimGlobal 把世界频道裁剪到 cap 条以内，返回删除数。
	TrimGlobal(ctx context.Context, cap int64) (int64, error)

	InsertPrivate(ctx context.Context, m *domain.PrivateMessage) error
	// ListPrivateFor 某玩家收发的私信，按时间正序。
	ListPrivateFor(ctx context.Context, username string, limit int64) ([]*domain.PrivateMessage, error)
	// PurgePrivateBefore 清理留存期之外的私信，返回删除数。
	PurgePrivateBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
