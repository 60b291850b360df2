package domain

import (
	"time"

	"github.com/google/uuid"

	"MedievalKingdoms/internal/shared/gamedata/building"
)

// Construction 是一条在途（或已完成）的建造队列项。
type Construction struct {
	Id             string
	PlayerId       int64
	BuildingId     string
	BuildingType   building.Type
	TargetLevel    int
	StartTime      time.Time
	CompletionTime time.Time
	Completed      bool
}

// NewConstruction 创建建造队列项。
func NewConstruction(playerId int64, b *Building, targetLevel int, buildTime time.Duration) *Construction {
	start := time.Now().UTC()
	return &Construction{
		Id:             uuid.NewString(),
		PlayerId:       playerId,
		BuildingId:     b.Id,
		BuildingType:   b.Type,
		TargetLevel:    targetLevel,
		StartTime:      start,
		CompletionTime: start.Add(buildTime),
	}
}

// Due 是否已到完工时间。
func (c *Construction) Due(now time.Time) bool {
	return !c.Completed && !now.Before(c.CompletionTime)
}
