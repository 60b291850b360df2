package app

import (
	"time"

	marketdomain "MedievalKingdoms/internal/market/domain"
	"MedievalKingdoms/internal/shared/gamedata/resource"
)

// OfferView 挂单视图。
type OfferView struct {
	Id               string           `json:"id"`
	CreatorId        int64            `json:"creatorId"`
	CreatorUsername  string           `json:"creatorUsername"`
	Offering         map[string]int64 `json:"offering"`
	Requesting       map[string]int64 `json:"requesting"`
	CreatedAt        string           `json:"createdAt"`
	ExpiresAt        string           `json:"expiresAt"`
	Active           bool             `json:"active"`
	AcceptorId       int64            `json:"acceptorId,omitempty"`
	AcceptorUsername string           `json:"acceptorUsername,omitempty"`
	CompletedAt      string           `json:"completedAt,omitempty"`
}

func toOfferView(o *marketdomain.TradeOffer) *OfferView {
	return &OfferView{
		Id:               o.Id,
		CreatorId:        o.CreatorId,
		CreatorUsername:  o.CreatorUsername,
		Offering:         basketToMap(o.Offering),
		Requesting:       basketToMap(o.Requesting),
		CreatedAt:        formatTime(o.CreatedAt),
		ExpiresAt:        formatTime(o.ExpiresAt),
		Active:           o.Active,
		AcceptorId:       o.AcceptorId,
		AcceptorUsername: o.AcceptorUsername,
		CompletedAt:      formatTime(o.CompletedAt),
	}
}

func toOfferViews(offers []*marketdomain.TradeOffer) []*OfferView {
	out := make([]*OfferView, 0, len(offers))
	for _, o := range offers {
		out = append(out, toOfferView(o))
	}
	return out
}

func basketToMap(b resource.Basket) map[string]int64 {
	out := make(map[string]int64, len(b))
	for kind, v := range b {
		out[string(kind)] = v
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
