package app

import (
	"time"

	"MedievalKingdoms/internal/kingdom/domain"
	"MedievalKingdoms/internal/shared/gamedata/building"
	"MedievalKingdoms/internal/shared/gamedata/empire"
)

// 对外时间统一为 ISO-8601 UTC 字符串。
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

type BuildingView struct {
	Id           string           `json:"id"`
	Type         string           `json:"type"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Level        int              `json:"level"`
	MaxLevel     int              `json:"maxLevel"`
	Constructing bool             `json:"constructing"`
	NextCost     map[string]int64 `json:"nextCost,omitempty"`
	NextTimeSecs int64            `json:"nextTimeSeconds,omitempty"`
}

type ProfileView struct {
	PlayerId   int64            `json:"playerId"`
	Username   string           `json:"username"`
	Empire     string           `json:"empire"`
	EmpireName string           `json:"empireName"`
	Resources  map[string]int64 `json:"resources"`
	Generation map[string]int64 `json:"generation"`
	Buildings  []BuildingView   `json:"buildings"`
	Army       map[string]int64 `json:"army"`
	TotalArmy  int64            `json:"totalArmySize"`
	Power      int64            `json:"power"`
	AllianceId string           `json:"allianceId,omitempty"`
	Protected  bool             `json:"underProtection"`
	CreatedAt  string           `json:"createdAt"`
	LastActive string           `json:"lastActive"`
}

type ConstructionView struct {
	Id             string `json:"id"`
	BuildingId     string `json:"buildingId"`
	BuildingType   string `json:"buildingType"`
	TargetLevel    int    `json:"targetLevel"`
	StartTime      string `json:"startTime"`
	CompletionTime string `json:"completionTime"`
	RemainingSecs  int64  `json:"remainingSeconds"`
	Completed      bool   `json:"completed"`
}

type RecruitView struct {
	Unit      string           `json:"unit"`
	Quantity  int64            `json:"quantity"`
	Cost      map[string]int64 `json:"cost"`
	Resources map[string]int64 `json:"resources"`
	Army      map[string]int64 `json:"army"`
	Power     int64            `json:"power"`
}

func toProfileView(k *domain.Kingdom, protectionWindow time.Duration) *ProfileView {
	now := time.Now().UTC()

	buildings := make([]BuildingView, 0, len(k.Buildings))
	for _, b := range k.Buildings {
		view := BuildingView{
			Id:           b.Id,
			Type:         string(b.Type),
			Level:        b.Level,
			Constructing: b.Constructing,
		}
		if info, ok := building.GetInfo(b.Type); ok {
			view.Name = info.Name
			view.Description = info.Description
			view.MaxLevel = info.MaxLevel
			if b.Level < info.MaxLevel {
				next := b.Level + 1
				view.NextCost = basketToMap(building.Cost(b.Type, next))
				view.NextTimeSecs = int64(building.BuildTime(b.Type, next, k.Empire).Seconds())
			}
		}
		buildings = append(buildings, view)
	}

	return &ProfileView{
		PlayerId:   k.Id,
		Username:   k.Username,
		Empire:     string(k.Empire),
		EmpireName: empire.GetInfo(k.Empire).Name,
		Resources:  basketToMap(k.Resources),
		Generation: basketToMap(k.Generation()),
		Buildings:  buildings,
		Army:       rosterToMap(k.Army),
		TotalArmy:  k.Army.Total(),
		Power:      k.Power,
		AllianceId: k.AllianceId,
		Protected:  k.UnderProtection(now, protectionWindow),
		CreatedAt:  formatTime(k.CreatedAt),
		LastActive: formatTime(k.LastActive),
	}
}

func toConstructionView(c *domain.Construction, now time.Time) ConstructionView {
	remaining := int64(c.CompletionTime.Sub(now).Seconds())
	if remaining < 0 || c.Completed {
		remaining = 0
	}
	return ConstructionView{
		Id:             c.Id,
		BuildingId:     c.BuildingId,
		BuildingType:   string(c.BuildingType),
		TargetLevel:    c.TargetLevel,
		StartTime:      formatTime(c.StartTime),
		CompletionTime: formatTime(c.CompletionTime),
		RemainingSecs:  remaining,
		Completed:      c.Completed,
	}
}
