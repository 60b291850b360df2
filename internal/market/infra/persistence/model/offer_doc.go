package model

import (
	"time"

	"MedievalKingdoms/internal/market/domain"
	"MedievalKingdoms/internal/shared/gamedata/resource"
)

type OfferDoc struct {
	Id               string           `bson:"_id"`
	CreatorId        int64            `bson:"creatorId"`
	CreatorUsername  string           `bson:"creatorUsername"`
	Offering         map[string]int64 `bson:"offering"`
	Requesting       map[string]int64 `bson:"requesting"`
	DurationSecs     int64            `bson:"duration"`
	CreatedAt        time.Time        `bson:"createdAt"`
	ExpiresAt        time.Time        `bson:"expiresAt"`
	Active           bool             `bson:"active"`
	AcceptorId       int64            `bson:"acceptorId,omitempty"`
	AcceptorUsername string           `bson:"acceptorUsername,omitempty"`
	CompletedAt      time.Time        `bson:"completedAt,omitempty"`
}

func basketToDoc(b resource.Basket) map[string]int64 {
	out := make(map[string]int64, len(b))
	for kind, v := range b {
		out[string(kind)] = v
	}
	return out
}

func docToBasket(m map[string]int64) resource.Basket {
	out := make(resource.Basket, len(m))
	for kind, v := range m {
		out[resource.Kind(kind)] = v
	}
	return out
}

func OfferToDoc(o *domain.TradeOffer) OfferDoc {
	return OfferDoc{
		Id:               o.Id,
		CreatorId:        o.CreatorId,
		CreatorUsername:  o.CreatorUsername,
		Offering:         basketToDoc(o.Offering),
		Requesting:       basketToDoc(o.Requesting),
		DurationSecs:     int64(o.Duration.Seconds()),
		CreatedAt:        o.CreatedAt,
		ExpiresAt:        o.ExpiresAt,
		Active:           o.Active,
		AcceptorId:       o.AcceptorId,
		AcceptorUsername: o.AcceptorUsername,
		CompletedAt:      o.CompletedAt,
	}
}

func DocToOffer(doc OfferDoc) *domain.TradeOffer {
	return &domain.TradeOffer{
		Id:               doc.Id,
		CreatorId:        doc.CreatorId,
		CreatorUsername:  doc.CreatorUsername,
		Offering:         docToBasket(doc.Offering),
		Requesting:       docToBasket(doc.Requesting),
		Duration:         time.Duration(doc.DurationSecs) * time.Second,
		CreatedAt:        doc.CreatedAt,
		ExpiresAt:        doc.ExpiresAt,
		Active:           doc.Active,
		AcceptorId:       doc.AcceptorId,
		AcceptorUsername: doc.AcceptorUsername,
		CompletedAt:      doc.CompletedAt,
	}
}
