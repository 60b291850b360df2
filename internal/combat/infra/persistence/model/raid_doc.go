package model

import (
	"time"

	"MedievalKingdoms/internal/combat"
	"MedievalKingdoms/internal/shared/gamedata/resource"
)

type RaidDoc struct {
	Id               string           `bson:"_id"`
	AttackerId       int64            `bson:"attackerId"`
	DefenderId       int64            `bson:"defenderId"`
	AttackerUsername string           `bson:"attackerUsername"`
	DefenderUsername string           `bson:"defenderUsername"`
	ArmySize         int64            `bson:"armySize"`
	Success          bool             `bson:"success"`
	Stolen           map[string]int64 `bson:"stolenResources"`
	AttackerLosses   int64            `bson:"attackerLosses"`
	DefenderLosses   int64            `bson:"defenderLosses"`
	Timestamp        time.Time        `bson:"timestamp"`
	BattleReport     string           `bson:"battleReport"`
}

func OutcomeToDoc(o *combat.Outcome) RaidDoc {
	stolen := make(map[string]int64, len(o.Stolen))
	for kind, v := range o.Stolen {
		stolen[string(kind)] = v
	}
	return RaidDoc{
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
		Timestamp:        o.Timestamp,
		BattleReport:     o.BattleReport,
	}
}

func DocToOutcome(doc RaidDoc) *combat.Outcome {
	stolen := make(resource.Basket, len(doc.Stolen))
	for kind, v := range doc.Stolen {
		stolen[resource.Kind(kind)] = v
	}
	return &combat.Outcome{
		Id:               doc.Id,
		AttackerId:       doc.AttackerId,
		DefenderId:       doc.DefenderId,
		AttackerUsername: doc.AttackerUsername,
		DefenderUsername: doc.DefenderUsername,
		ArmySize:         doc.ArmySize,
		Success:          doc.Success,
		Stolen:           stolen,
		AttackerLosses:   doc.AttackerLosses,
		DefenderLosses:   doc.DefenderLosses,
		Timestamp:        doc.Timestamp,
		BattleReport:     doc.BattleReport,
	}
}
