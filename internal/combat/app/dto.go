package app

import (
	"time"

	"MedievalKingdoms/internal/combat"
)

type RaidView struct {
	Id               string           `json:"id"`
	AttackerId       int64            `json:"attackerId"`
	DefenderId       int64            `json:"defenderId"`
	AttackerUsername string           `json:"attackerUsername"`
	DefenderUsername string           `json:"defenderUsername"`
	ArmySize         int64            `json:"armySize"`
	Success          bool             `json:"success"`
	Stolen           map[string]int64 `json:"stolenResources"`
	AttackerLosses   int64            `json:"attackerLosses"`
	DefenderLosses   int64            `json:"defenderLosses"`
	Timestamp        string           `json:"timestamp"`
	BattleReport     string           `json:"battleReport"`
}

func toRaidView(o *combat.Outcome) *RaidView {
	stolen := make(map[string]int64, len(o.Stolen))
	for kind, v := range o.Stolen {
		stolen[string(kind)] = v
	}
	return &RaidView{
		Id:               o.Id,
		AttackerId:       o.AttackerId,
		DefenderId:       o.DefenderId,
		AttackerUsername: o.AttackerUsername,
		DefenderUsername: o.DefenderUsername,
		ArmySize:         o.ArmySize,
		Success:          o.Success,
		Stolen:           stolen,
		AttackerLosses:   o.AttackerLosses,
		DefenderLosses:   o.DefenderLosses,
		Timestamp:        o.Timestamp.UTC().Format(time.RFC3339),
		BattleReport:     o.BattleReport,
	}
}
