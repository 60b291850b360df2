package app

import (
	"MedievalKingdoms/internal/shared/gamedata/resource"
	"MedievalKingdoms/internal/shared/gamedata/units"
)

func basketToMap(b resource.Basket) map[string]int64 {
	out := make(map[string]int64, len(b))
	for kind, v := range b {
		out[string(kind)] = v
	}
	return out
}

func rosterToMap(r units.Roster) map[string]int64 {
	out := make(map[string]int64, len(r))
	for t, v := range r {
		out[string(t)] = v
	}
	return out
}
