package domain

import (
	"MedievalKingdoms/internal/shared/gamedata/resource"
	"MedievalKingdoms/internal/shared/gamedata/units"
)

// Effect 道具效果，封闭变体：每种效果由服务层的专属处理器执行，
// 不做字符串分发。
type Effect interface {
	isEffect()
}

// ResourceGrant 按件发放一篮子资源。
type ResourceGrant struct {
	Amount resource.Basket
}

// ArmyGrant 按件发放一批兵力。
type ArmyGrant struct {
	Units units.Roster
}

// ConstructionRush 立即完成一条在途建造，每件加速一条。
// 只做即刻完工，不改变建造时间的计算口径。
type ConstructionRush struct{}

// EmpireChangeToken 发放换阵营凭证，换阵营时消耗。
type EmpireChangeToken struct{}

func (ResourceGrant) isEffect()     {}
func (ArmyGrant) isEffect()         {}
func (ConstructionRush) isEffect()  {}
func (EmpireChangeToken) isEffect() {}

// Item 商店道具。
type Item struct {
	Id          string
	Name        string
	Description string
	Category    string
	Rarity      string
	Price       resource.Basket
	Effect      Effect
	Available   bool
}

// TotalCost 按购买数量计算总价。
func (i *Item) TotalCost(quantity int64) resource.Basket {
	out := make(resource.Basket, len(i.Price))
	for kind, v := range i.Price {
		out[kind] = v * quantity
	}
	return out
}

// EmpireChangeItemId 换阵营凭证的道具 id，换阵营接口按它扣减库存。
const EmpireChangeItemId = "race_change_scroll"

var catalog = []*Item{
	{
		Id:          EmpireChangeItemId,
		Name:        "Race Change Scroll",
		Description: "Allows you to change your empire race once. Use wisely!",
		Category:    "Special",
		Rarity:      "legendary",
		Price:       resource.Basket{resource.Gold: 1000},
		Effect:      EmpireChangeToken{},
		Available:   true,
	},
	{
		Id:          "resource_pack",
		Name:        "Resource Pack",
		Description: "Contains 500 of each basic resource (Gold, Wood, Stone, Food)",
		Category:    "Resources",
		Rarity:      "common",
		Price:       resource.Basket{resource.Gold: 2000},
		Effect: ResourceGrant{Amount: resource.Basket{
			resource.Gold:  500,
			resource.Wood:  500,
			resource.Stone: 500,
			resource.Food:  500,
		}},
		Available: true,
	},
	{
		Id:          "army_boost",
		Name:        "Army Training Boost",
		Description: "Instantly train 50 soldiers, 25 archers, and 10 cavalry",
		Category:    "Military",
		Rarity:      "rare",
		Price:       resource.Basket{resource.Gold: 1500, resource.Food: 500},
		Effect: ArmyGrant{Units: units.Roster{
			units.Soldiers: 50,
			units.Archers:  25,
			units.Cavalry:  10,
		}},
		Available: true,
	},
	{
		Id:          "construction_boost",
		Name:        "Construction Speed Boost",
		Description: "Complete one building upgrade instantly",
		Category:    "Buildings",
		Rarity:      "uncommon",
		Price:       resource.Basket{resource.Gold: 800, resource.Wood: 200, resource.Stone: 200},
		Effect:      ConstructionRush{},
		Available:   true,
	},
}

// Catalog 全部上架道具。
func Catalog() []*Item {
	out := make([]*Item, len(catalog))
	copy(out, catalog)
	return out
}

// FindItem 按 id 查找道具，未找到返回 nil。
func FindItem(id string) *Item {
	for _, item := range catalog {
		if item.Id == id {
			return item
		}
	}
	return nil
}
