package port

import (
	"context"
	"errors"

	"MedievalKingdoms/internal/shop/domain"
)

// ErrInsufficientItems 库存不足（含条件扣减未命中）。
var ErrInsufficientItems = errors.New("insufficient shop items")

// PurchaseStore 购买流水存储端口。
type PurchaseStore interface {
	Insert(ctx context.Context, p *domain.Purchase) error
	ListByPlayer(ctx context.Context, playerId int64, limit int64) ([]*domain.Purchase, error)
}

// InventoryStore 道具库存端口。Consume 必须是单次条件扣减，
// 并发消耗不会把库存扣成负数。
type InventoryStore interface {
	Grant(ctx context.Context, playerId int64, itemId string, qty int64) error
	Consume(ctx context.Context, playerId int64, itemId string, qty int64) error
	Get(ctx context.Context, playerId int64) (map[string]int64, error)
}
