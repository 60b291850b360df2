package building

import (
	"math"
	"time"

	"MedievalKingdoms/internal/shared/gamedata/empire"
	"MedievalKingdoms/internal/shared/gamedata/resource"
)

// Type 建筑类型。
type Type string

const (
	Castle     Type = "castle"
	Farm       Type = "farm"
	Lumbermill Type = "lumbermill"
	Mine       Type = "mine"
	Barracks   Type = "barracks"
	Blacksmith Type = "blacksmith"
)

// All 返回全部建筑类型（顺序固定，新玩家初始建筑按此顺序创建）。
func All() []Type {
	return []Type{Castle, Farm, Lumbermill, Mine, Barracks, Blacksmith}
}

// Valid 判断是否为合法建筑类型。
func Valid(t Type) bool {
	_, ok := catalog[t]
	return ok
}

type Info struct {
	Name        string
	Description string
	BaseCost    resource.Basket
	BaseTime    time.Duration // 1 级建造耗时
	Production  resource.Basket
	MaxLevel    int
}

var catalog = map[Type]Info{
	Castle: {
		Name:        "Castle",
		Description: "The heart of your kingdom. Increases population capacity.",
		BaseCost:    resource.Basket{resource.Gold: 100, resource.Wood: 80, resource.Stone: 120},
		BaseTime:    120 * time.Second,
		Production:  resource.Basket{resource.Gold: 2},
		MaxLevel:    20,
	},
	Farm: {
		Name:        "Farm",
		Description: "Produces food to feed your population.",
		BaseCost:    resource.Basket{resource.Gold: 50, resource.Wood: 60, resource.Stone: 30},
		BaseTime:    60 * time.Second,
		Production:  resource.Basket{resource.Food: 3},
		MaxLevel:    25,
	},
	Lumbermill: {
		Name:        "Lumbermill",
		Description: "Harvests wood from the nearby forests.",
		BaseCost:    resource.Basket{resource.Gold: 40, resource.Wood: 30, resource.Stone: 50},
		BaseTime:    45 * time.Second,
		Production:  resource.Basket{resource.Wood: 2},
		MaxLevel:    25,
	},
	Mine: {
		Name:        "Mine",
		Description: "Extracts stone and precious metals.",
		BaseCost:    resource.Basket{resource.Gold: 80, resource.Wood: 40, resource.Stone: 60},
		BaseTime:    90 * time.Second,
		Production:  resource.Basket{resource.Stone: 2, resource.Gold: 1},
		MaxLevel:    25,
	},
	Barracks: {
		Name:        "Barracks",
		Description: "Trains soldiers to defend your kingdom.",
		BaseCost:    resource.Basket{resource.Gold: 120, resource.Wood: 100, resource.Stone: 80},
		BaseTime:    100 * time.Second,
		Production:  resource.Basket{},
		MaxLevel:    15,
	},
	Blacksmith: {
		Name:        "Blacksmith",
		Description: "Crafts weapons and tools for your kingdom.",
		BaseCost:    resource.Basket{resource.Gold: 90, resource.Wood: 70, resource.Stone: 50},
		BaseTime:    75 * time.Second,
		Production:  resource.Basket{resource.Gold: 1},
		MaxLevel:    20,
	},
}

// 每级战力贡献；表外建筑按 50 计。
var powerPerLevel = map[Type]int64{
	Castle:     150,
	Barracks:   120,
	Blacksmith: 100,
	Mine:       80,
	Farm:       60,
	Lumbermill: 60,
}

// GetInfo 查询建筑静态数据；未知类型返回零值。
func GetInfo(t Type) (Info, bool) {
	info, ok := catalog[t]
	return info, ok
}

// Cost 计算升到 level 级的资源花费：base * 1.5^(level-1)，逐项向下取整。
func Cost(t Type, level int) resource.Basket {
	info, ok := catalog[t]
	if !ok {
		return resource.Basket{}
	}

	multiplier := math.Pow(1.5, float64(level-1))
	cost := make(resource.Basket, len(info.BaseCost))
	for kind, base := range info.BaseCost {
		cost[kind] = int64(float64(base) * multiplier)
	}
	return cost
}

// BuildTime 计算升到 level 级的建造耗时：base * 1.3^(level-1) * 阵营倍率，向下取整到秒。
func BuildTime(t Type, level int, e empire.Empire) time.Duration {
	info, ok := catalog[t]
	if !ok {
		return 60 * time.Second
	}

	multiplier := math.Pow(1.3, float64(level-1))
	empireMul := empire.ConstructionTimeMultiplier(e, string(t))
	seconds := int64(info.BaseTime.Seconds() * multiplier * empireMul)
	return time.Duration(seconds) * time.Second
}

// Production 建筑在 level 级的每秒产出（线性：base * level），未套阵营加成。
func Production(t Type, level int) resource.Basket {
	info, ok := catalog[t]
	if !ok {
		return resource.Basket{}
	}

	out := make(resource.Basket, len(info.Production))
	for kind, base := range info.Production {
		out[kind] = base * int64(level)
	}
	return out
}

// PowerOf 单座建筑的战力贡献。
func PowerOf(t Type, level int) int64 {
	per, ok := powerPerLevel[t]
	if !ok {
		per = 50
	}
	return per * int64(level)
}
