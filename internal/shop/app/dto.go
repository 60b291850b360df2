package app

import (
	"time"

	"MedievalKingdoms/internal/shared/gamedata/resource"
	"MedievalKingdoms/internal/shop/domain"
)

// ItemView 货架上的道具。
type ItemView struct {
	Id          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Rarity      string           `json:"rarity"`
	Price       map[string]int64 `json:"price"`
	Available   bool             `json:"available"`
}

// PurchaseView 购买结果 / 流水。
type PurchaseView struct {
	Id          string           `json:"id"`
	ItemId      string           `json:"itemId"`
	ItemName    string           `json:"itemName"`
	Quantity    int64            `json:"quantity"`
	TotalCost   map[string]int64 `json:"totalCost"`
	PurchasedAt string           `json:"purchasedAt"`
}

func toItemView(item *domain.Item) *ItemView {
	return &ItemView{
		Id:          item.Id,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Rarity:      item.Rarity,
		Price:       basketToMap(item.Price),
		Available:   item.Available,
	}
}

func toPurchaseView(p *domain.Purchase) *PurchaseView {
	return &PurchaseView{
		Id:          p.Id,
		ItemId:      p.ItemId,
		ItemName:    p.ItemName,
		Quantity:    p.Quantity,
		TotalCost:   basketToMap(p.TotalCost),
		PurchasedAt: p.PurchasedAt.UTC().Format(time.RFC3339),
	}
}

func basketToMap(b resource.Basket) map[string]int64 {
	out := make(map[string]int64, len(b))
	for kind, v := range b {
		out[string(kind)] = v
	}
	return out
}
