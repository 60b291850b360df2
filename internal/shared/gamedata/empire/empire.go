package empire

import "MedievalKingdoms/internal/shared/gamedata/resource"

// Empire 帝国阵营。阵营决定初始资源、产出加成与攻防倍率。
type Empire string

const (
	Norman   Empire = "norman"
	Viking   Empire = "viking"
	Saxon    Empire = "saxon"
	Celtic   Empire = "celtic"
	Frankish Empire = "frankish"
)

// All 返回全部阵营（顺序固定，供展示与遍历）。
func All() []Empire {
	return []Empire{Norman, Viking, Saxon, Celtic, Frankish}
}

// Normalize 把外部输入归一化为合法阵营；未知阵营回落到 Norman。
func Normalize(v string) Empire {
	e := Empire(v)
	if _, ok := catalog[e]; ok {
		return e
	}
	return Norman
}

type Info struct {
	Name              string
	Bonuses           map[resource.Kind]int // 资源产出加成（百分比）
	StartingResources resource.Basket
}

var catalog = map[Empire]Info{
	Norman: {
		Name: "Norman Empire",
		Bonuses: map[resource.Kind]int{
			resource.Gold:  25,
			resource.Stone: 20,
		},
		StartingResources: resource.Basket{
			resource.Gold:  1875,
			resource.Wood:  800,
			resource.Stone: 720,
			resource.Food:  400,
		},
	},
	Viking: {
		Name: "Viking Kingdom",
		Bonuses: map[resource.Kind]int{
			resource.Wood: 30,
			resource.Food: 15,
		},
		StartingResources: resource.Basket{
			resource.Gold:  1500,
			resource.Wood:  1040,
			resource.Stone: 600,
			resource.Food:  460,
		},
	},
	Saxon: {
		Name: "Saxon Realm",
		Bonuses: map[resource.Kind]int{
			resource.Food: 25,
			resource.Gold: 15,
		},
		StartingResources: resource.Basket{
			resource.Gold:  1725,
			resource.Wood:  800,
			resource.Stone: 600,
			resource.Food:  500,
		},
	},
	Celtic: {
		Name: "Celtic Clans",
		Bonuses: map[resource.Kind]int{
			resource.Wood:  20,
			resource.Stone: 20,
		},
		StartingResources: resource.Basket{
			resource.Gold:  1500,
			resource.Wood:  960,
			resource.Stone: 720,
			resource.Food:  400,
		},
	},
	Frankish: {
		Name: "Frankish Empire",
		Bonuses: map[resource.Kind]int{
			resource.Gold: 20,
			resource.Food: 20,
		},
		StartingResources: resource.Basket{
			resource.Gold:  1800,
			resource.Wood:  800,
			resource.Stone: 600,
			resource.Food:  480,
		},
	},
}

// GetInfo 查询阵营信息；未知阵营回落到 Norman。
func GetInfo(e Empire) Info {
	if info, ok := catalog[e]; ok {
		return info
	}
	return catalog[Norman]
}

// StartingResources 返回阵营的初始资源。
func StartingResources(e Empire) resource.Basket {
	return GetInfo(e).StartingResources.Clone()
}

// ApplyResourceBonus 对单项产出套用阵营加成，向下取整。
func ApplyResourceBonus(e Empire, kind resource.Kind, base int64) int64 {
	pct := GetInfo(e).Bonuses[kind]
	return int64(float64(base) * (1 + float64(pct)/100))
}

// ConstructionTimeMultiplier 建造时间倍率。诺曼建城堡快 25%。
func ConstructionTimeMultiplier(e Empire, buildingType string) float64 {
	if e == Norman && buildingType == "castle" {
		return 0.75
	}
	return 1.0
}

// RaidDamageMultiplier 掠夺强度倍率。维京人掠夺 +30%。
func RaidDamageMultiplier(e Empire) float64 {
	if e == Viking {
		return 1.30
	}
	return 1.0
}

// DefenseBonus 防御倍率。撒克逊 +20%，诺曼 +10%。
func DefenseBonus(e Empire) float64 {
	switch e {
	case Saxon:
		return 1.20
	case Norman:
		return 1.10
	default:
		return 1.0
	}
}
