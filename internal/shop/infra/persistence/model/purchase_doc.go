package model

import (
	"time"

	"MedievalKingdoms/internal/shared/gamedata/resource"
	"MedievalKingdoms/internal/shop/domain"
)

// PurchaseDoc 购买流水文档。
type PurchaseDoc struct {
	Id           string           `bson:"_id"`
	PlayerId     int64            `bson:"playerId"`
	Username     string           `bson:"playerUsername"`
	ItemId       string           `bson:"itemId"`
	ItemName     string           `bson:"itemName"`
	Quantity     int64            `bson:"quantity"`
	TotalCost    map[string]int64 `bson:"totalCost"`
	PurchaseDate time.Time        `bson:"purchaseDate"`
}

func PurchaseToDoc(p *domain.Purchase) PurchaseDoc {
	cost := make(map[string]int64, len(p.TotalCost))
	for kind, v := range p.TotalCost {
		cost[string(kind)] = v
	}
	return PurchaseDoc{
		Id:           p.Id,
		PlayerId:     p.PlayerId,
		Username:     p.Username,
		ItemId:       p.ItemId,
		ItemName:     p.ItemName,
		Quantity:     p.Quantity,
		TotalCost:    cost,
		PurchaseDate: p.PurchasedAt,
	}
}

func DocToPurchase(doc PurchaseDoc) *domain.Purchase {
	cost := make(resource.Basket, len(doc.TotalCost))
	for kind, v := range doc.TotalCost {
		cost[resource.Kind(kind)] = v
	}
	return &domain.Purchase{
		Id:          doc.Id,
		PlayerId:    doc.PlayerId,
		Username:    doc.Username,
		ItemId:      doc.ItemId,
		ItemName:    doc.ItemName,
		Quantity:    doc.Quantity,
		TotalCost:   cost,
		PurchasedAt: doc.PurchaseDate,
	}
}
