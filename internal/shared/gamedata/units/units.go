package units

import "MedievalKingdoms/internal/shared/gamedata/resource"

// Type 兵种。
type Type string

const (
	Soldiers Type = "soldiers"
	Archers  Type = "archers"
	Cavalry  Type = "cavalry"
)

// All 返回全部兵种（顺序固定）。
func All() []Type {
	return []Type{Soldiers, Archers, Cavalry}
}

// Valid 判断是否为合法兵种。
func Valid(t Type) bool {
	_, ok := recruitCosts[t]
	return ok
}

// 单个单位的招募花费。
var recruitCosts = map[Type]resource.Basket{
	Soldiers: {resource.Gold: 50, resource.Food: 30},
	Archers:  {resource.Gold: 75, resource.Wood: 25, resource.Food: 20},
	Cavalry:  {resource.Gold: 150, resource.Food: 50, resource.Wood: 30},
}

// RecruitCost 招募 quantity 个单位的总花费；未知兵种返回空篮子。
func RecruitCost(t Type, quantity int64) resource.Basket {
	base, ok := recruitCosts[t]
	if !ok || quantity <= 0 {
		return resource.Basket{}
	}

	cost := make(resource.Basket, len(base))
	for kind, amount := range base {
		cost[kind] = amount * quantity
	}
	return cost
}

// Roster 是玩家的兵力编成。零值可直接使用。
type Roster map[Type]int64

// Clone 深拷贝。
func (r Roster) Clone() Roster {
	out := make(Roster, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Total 全军总数。
func (r Roster) Total() int64 {
	var total int64
	for _, v := range r {
		total += v
	}
	return total
}

// Add 增加某兵种数量。返回新编成，不修改原值。
func (r Roster) Add(t Type, n int64) Roster {
	out := r.Clone()
	out[t] += n
	return out
}

// RemoveSoldiers 按战损扣除步兵（战损只从步兵中扣，扣到 0 为止）。
func (r Roster) RemoveSoldiers(n int64) Roster {
	out := r.Clone()
	out[Soldiers] -= n
	if out[Soldiers] < 0 {
		out[Soldiers] = 0
	}
	return out
}
