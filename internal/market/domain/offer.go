package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"MedievalKingdoms/internal/shared/gamedata/resource"
)

var (
	ErrEmptyBasket     = errors.New("offering and requesting must both be non-empty")
	ErrInvalidResource = errors.New("invalid resource kind")
	ErrInvalidAmount   = errors.New("resource amount must be positive")
)

// TradeOffer 挂单。创建时不托管资源，成交时双方即时结算。
type TradeOffer struct {
	Id               string
	CreatorId        int64
	CreatorUsername  string
	Offering         resource.Basket
	Requesting       resource.Basket
	Duration         time.Duration
	CreatedAt        time.Time
	ExpiresAt        time.Time
	Active           bool
	AcceptorId       int64
	AcceptorUsername string
	CompletedAt      time.Time
}

// NewTradeOffer 创建挂单并校验两侧篮子：不可为空、种类合法、数量为正。
func NewTradeOffer(creatorId int64, creatorUsername string, offering, requesting resource.Basket, duration time.Duration) (*TradeOffer, error) {
	if len(offering) == 0 || len(requesting) == 0 {
		return nil, ErrEmptyBasket
	}
	for _, basket := range []resource.Basket{offering, requesting} {
		for kind, amount := range basket {
			if !resource.Valid(kind) {
				return nil, ErrInvalidResource
			}
			if amount <= 0 {
				return nil, ErrInvalidAmount
			}
		}
	}
	if duration <= 0 {
		duration = time.Hour
	}

	now := time.Now().UTC()
	return &TradeOffer{
		Id:              uuid.NewString(),
		CreatorId:       creatorId,
		CreatorUsername: creatorUsername,
		Offering:        offering.Clone(),
		Requesting:      requesting.Clone(),
		Duration:        duration,
		CreatedAt:       now,
		ExpiresAt:       now.Add(duration),
		Active:          true,
	}, nil
}

// Expired 是否已过期。
func (o *TradeOffer) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
