package model

import (
	"time"

	"MedievalKingdoms/internal/kingdom/domain"
	"MedievalKingdoms/internal/shared/gamedata/building"
	"MedievalKingdoms/internal/shared/gamedata/empire"
	"MedievalKingdoms/internal/shared/gamedata/resource"
	"MedievalKingdoms/internal/shared/gamedata/units"
)

type BuildingDoc struct {
	Id           string `bson:"id"`
	Type         string `bson:"type"`
	Level        int    `bson:"level"`
	Constructing bool   `bson:"constructing"`
}

type KingdomDoc struct {
	Id           int64            `bson:"_id"`
	Username     string           `bson:"username"`
	Empire       string           `bson:"empire"`
	Resources    map[string]int64 `bson:"resources"`
	Buildings    []BuildingDoc    `bson:"buildings"`
	Army         map[string]int64 `bson:"army"`
	Power        int64            `bson:"power"`
	AllianceId   string           `bson:"allianceId,omitempty"`
	LastRaidTime time.Time        `bson:"lastRaidTime,omitempty"`
	LastActive   time.Time        `bson:"lastActive"`
	CreatedAt    time.Time        `bson:"createdAt"`
}

func BuildingsToDoc(bs []*domain.Building) []BuildingDoc {
	buildings := make([]BuildingDoc, 0, len(bs))
	for _, b := range bs {
		buildings = append(buildings, BuildingDoc{
			Id:           b.Id,
			Type:         string(b.Type),
			Level:        b.Level,
			Constructing: b.Constructing,
		})
	}
	return buildings
}

func ResourcesToDoc(res resource.Basket) map[string]int64 {
	out := make(map[string]int64, len(res))
	for kind, v := range res {
		out[string(kind)] = v
	}
	return out
}

func ArmyToDoc(army units.Roster) map[string]int64 {
	out := make(map[string]int64, len(army))
	for t, v := range army {
		out[string(t)] = v
	}
	return out
}

func KingdomToDoc(k *domain.Kingdom) KingdomDoc {
	return KingdomDoc{
		Id:           k.Id,
		Username:     k.Username,
		Empire:       string(k.Empire),
		Resources:    ResourcesToDoc(k.Resources),
		Buildings:    BuildingsToDoc(k.Buildings),
		Army:         ArmyToDoc(k.Army),
		Power:        k.Power,
		AllianceId:   k.AllianceId,
		LastRaidTime: k.LastRaidTime,
		LastActive:   k.LastActive,
		CreatedAt:    k.CreatedAt,
	}
}

func DocToKingdom(doc KingdomDoc) *domain.Kingdom {
	buildings := make([]*domain.Building, 0, len(doc.Buildings))
	for _, b := range doc.Buildings {
		buildings = append(buildings, &domain.Building{
			Id:           b.Id,
			Type:         building.Type(b.Type),
			Level:        b.Level,
			Constructing: b.Constructing,
		})
	}

	res := make(resource.Basket, len(doc.Resources))
	for kind, v := range doc.Resources {
		res[resource.Kind(kind)] = v
	}
	army := make(units.Roster, len(doc.Army))
	for t, v := range doc.Army {
		army[units.Type(t)] = v
	}

	return &domain.Kingdom{
		Id:           doc.Id,
		Username:     doc.Username,
		Empire:       empire.Normalize(doc.Empire),
		Resources:    res,
		Buildings:    buildings,
		Army:         army,
		Power:        doc.Power,
		AllianceId:   doc.AllianceId,
		LastRaidTime: doc.LastRaidTime,
		LastActive:   doc.LastActive,
		CreatedAt:    doc.CreatedAt,
	}
}
