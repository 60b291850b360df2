package domain

import (
	"time"

	"github.com/google/uuid"

	"MedievalKingdoms/internal/shared/gamedata/resource"
)

// Purchase 购买流水。
type Purchase struct {
	Id          string
	PlayerId    int64
	Username    string
	ItemId      string
	ItemName    string
	Quantity    int64
	TotalCost   resource.Basket
	PurchasedAt time.Time
}

func NewPurchase(playerId int64, username string, item *Item, quantity int64) *Purchase {
	return &Purchase{
		Id:          uuid.NewString(),
		PlayerId:    playerId,
		Username:    username,
		ItemId:      item.Id,
		ItemName:    item.Name,
		Quantity:    quantity,
		TotalCost:   item.TotalCost(quantity),
		PurchasedAt: time.Now().UTC(),
	}
}
