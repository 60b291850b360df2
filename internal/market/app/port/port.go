package port

import (
	"context"
	"errors"
	"time"

	"MedievalKingdoms/internal/market/domain"
)

// ErrOfferNotFound 挂单不存在、已过期或已被他人抢先成交。
var ErrOfferNotFound = errors.New("trade offer not found")

// OfferStore 挂单存储端口。
type OfferStore interface {
	Insert(ctx context.Context, o *domain.TradeOffer) error
	Get(ctx context.Context, id string) (*domain.TradeOffer, error)
	ListOpen(ctx context.Context, excludeCreator int64, now time.Time, limit int64) ([]*domain.TradeOffer, error)
	ListByCreator(ctx context.Context, creatorId int64, limit int64) ([]*domain.TradeOffer, error)
	Claim(ctx context.Context, id string, acceptorId int64, acceptorUsername string, now time.Time) error
	Release(ctx context.Context, id string) error
	PurgeExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
