package model

import (
	"time"

	"MedievalKingdoms/internal/kingdom/domain"
	"MedievalKingdoms/internal/shared/gamedata/building"
)

type ConstructionDoc struct {
	Id             string    `bson:"_id"`
	PlayerId       int64     `bson:"playerId"`
	BuildingId     string    `bson:"buildingId"`
	BuildingType   string    `bson:"buildingType"`
	TargetLevel    int       `bson:"targetLevel"`
	StartTime      time.Time `bson:"startTime"`
	CompletionTime time.Time `bson:"completionTime"`
	Completed      bool      `bson:"completed"`
}

func ConstructionToDoc(c *domain.Construction) ConstructionDoc {
	return ConstructionDoc{
		Id:             c.Id,
		PlayerId:       c.PlayerId,
		BuildingId:     c.BuildingId,
		BuildingType:   string(c.BuildingType),
		TargetLevel:    c.TargetLevel,
		StartTime:      c.StartTime,
		CompletionTime: c.CompletionTime,
		Completed:      c.Completed,
	}
}

func DocToConstruction(doc ConstructionDoc) *domain.Construction {
	return &domain.Construction{
		Id:             doc.Id,
		PlayerId:       doc.PlayerId,
		BuildingId:     doc.BuildingId,
		BuildingType:   building.Type(doc.BuildingType),
		TargetLevel:    doc.TargetLevel,
		StartTime:      doc.StartTime,
		CompletionTime: doc.CompletionTime,
		Completed:      doc.Completed,
	}
}
