package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"MedievalKingdoms/internal/shared/gamedata/building"
	"MedievalKingdoms/internal/shared/gamedata/empire"
	"MedievalKingdoms/internal/shared/gamedata/resource"
	"MedievalKingdoms/internal/shared/gamedata/units"
)

// 领域规则错误；app 层负责翻译成对外业务码。
var (
	ErrBuildingNotFound      = errors.New("building not found")
	ErrAlreadyConstructing   = errors.New("building already constructing")
	ErrMaxLevelReached       = errors.New("building max level reached")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrInvalidUnitType       = errors.New("invalid unit type")
	ErrInvalidQuantity       = errors.New("invalid quantity")
)

// Building 是王国内的一座建筑。
type Building struct {
	Id           string
	Type         building.Type
	Level        int
	Constructing bool
}

// Kingdom 玩家王国聚合根。所有修改必须通过聚合方法走，
// 以保证资源永不为负、单建筑同一时间只有一个在途升级。
type Kingdom struct {
	Id           int64
	Username     string
	Empire       empire.Empire
	Resources    resource.Basket
	Buildings    []*Building
	Army         units.Roster
	Power        int64
	AllianceId   string
	LastRaidTime time.Time // 零值表示从未被掠夺
	LastActive   time.Time
	CreatedAt    time.Time
}

// NewKingdom 创建新王国：阵营初始资源、全套 1 级建筑、25 名步兵。
func NewKingdom(id int64, username string, e empire.Empire) *Kingdom {
	now := time.Now().UTC()

	buildings := make([]*Building, 0, len(building.All()))
	for _, typ := range building.All() {
		buildings = append(buildings, &Building{
			Id:    uuid.NewString(),
			Type:  typ,
			Level: 1,
		})
	}

	k := &Kingdom{
		Id:         id,
		Username:   username,
		Empire:     e,
		Resources:  empire.StartingResources(e),
		Buildings:  buildings,
		Army:       units.Roster{units.Soldiers: 25},
		LastActive: now,
		CreatedAt:  now,
	}
	k.RecomputePower()
	return k
}

// Snapshot 深拷贝聚合，供 actor 之外的只读消费（战斗快照、查询响应）。
func (k *Kingdom) Snapshot() *Kingdom {
	buildings := make([]*Building, 0, len(k.Buildings))
	for _, b := range k.Buildings {
		cp := *b
		buildings = append(buildings, &cp)
	}
	return &Kingdom{
		Id:           k.Id,
		Username:     k.Username,
		Empire:       k.Empire,
		Resources:    k.Resources.Clone(),
		Buildings:    buildings,
		Army:         k.Army.Clone(),
		Power:        k.Power,
		AllianceId:   k.AllianceId,
		LastRaidTime: k.LastRaidTime,
		LastActive:   k.LastActive,
		CreatedAt:    k.CreatedAt,
	}
}

// Building 按建筑 id 查找。
func (k *Kingdom) Building(id string) *Building {
	for _, b := range k.Buildings {
		if b.Id == id {
			return b
		}
	}
	return nil
}

// BuildingByType 按类型查找（每个王国同类型建筑只有一座）。
func (k *Kingdom) BuildingByType(t building.Type) *Building {
	for _, b := range k.Buildings {
		if b.Type == t {
			return b
		}
	}
	return nil
}

// Generation 每秒资源产出（各建筑线性产出之和，已套阵营加成）。
func (k *Kingdom) Generation() resource.Basket {
	gen := resource.Basket{}
	for _, b := range k.Buildings {
		for kind, amount := range building.Production(b.Type, b.Level) {
			gen[kind] += empire.ApplyResourceBonus(k.Empire, kind, amount)
		}
	}
	return gen
}

// Accrue 把 elapsed 时长的产出累加进资源。返回本次累加量。
func (k *Kingdom) Accrue(elapsed time.Duration) resource.Basket {
	seconds := int64(elapsed.Seconds())
	if seconds <= 0 {
		return resource.Basket{}
	}

	delta := resource.Basket{}
	for kind, perSecond := range k.Generation() {
		delta[kind] = perSecond * seconds
	}
	k.Resources = k.Resources.Add(delta)
	return delta
}

// BeginUpgrade 发起升级：校验建筑存在、无在途升级、未到上限、资源充足，
// 通过后扣资源并标记在途。返回目标等级与建造耗时。
func (k *Kingdom) BeginUpgrade(buildingId string) (targetLevel int, buildTime time.Duration, err error) {
	b := k.Building(buildingId)
	if b == nil {
		return 0, 0, ErrBuildingNotFound
	}
	if b.Constructing {
		return 0, 0, ErrAlreadyConstructing
	}

	info, ok := building.GetInfo(b.Type)
	if !ok {
		return 0, 0, ErrBuildingNotFound
	}
	targetLevel = b.Level + 1
	if targetLevel > info.MaxLevel {
		return 0, 0, ErrMaxLevelReached
	}

	cost := building.Cost(b.Type, targetLevel)
	if !k.Resources.CanAfford(cost) {
		return 0, 0, ErrInsufficientResources
	}

	k.Resources = k.Resources.Sub(cost)
	b.Constructing = true
	return targetLevel, building.BuildTime(b.Type, targetLevel, k.Empire), nil
}

// CompleteUpgrade 完成升级：落等级、清在途标记、重算战力。
// 建筑已不存在时静默忽略（竞态下的兜底）。
func (k *Kingdom) CompleteUpgrade(buildingId string, targetLevel int) {
	b := k.Building(buildingId)
	if b == nil {
		return
	}
	if targetLevel > b.Level {
		b.Level = targetLevel
	}
	b.Constructing = false
	k.RecomputePower()
}

// Recruit 招募兵力：校验兵种与数量、资源充足，通过后扣资源入编。
func (k *Kingdom) Recruit(t units.Type, quantity int64) (resource.Basket, error) {
	if !units.Valid(t) {
		return nil, ErrInvalidUnitType
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	cost := units.RecruitCost(t, quantity)
	if !k.Resources.CanAfford(cost) {
		return nil, ErrInsufficientResources
	}

	k.Resources = k.Resources.Sub(cost)
	k.Army = k.Army.Add(t, quantity)
	k.RecomputePower()
	return cost, nil
}

// RecomputePower 重算排行战力：建筑战力 + 全军每单位 50 点 +
// 每 100 资源 1 点。与战斗结算里的兵力权重（每单位 10 点）是两套口径。
func (k *Kingdom) RecomputePower() int64 {
	var power int64
	for _, b := range k.Buildings {
		power += building.PowerOf(b.Type, b.Level)
	}
	power += k.Army.Total() * 50
	power += k.Resources.Total() / 100
	k.Power = power
	return power
}

// UnderProtection 被掠夺后 window 时长内处于保护期。
func (k *Kingdom) UnderProtection(now time.Time, window time.Duration) bool {
	if k.LastRaidTime.IsZero() {
		return false
	}
	return now.Sub(k.LastRaidTime) < window
}

// Touch 刷新活跃时间（登录、任何主动操作时调用）。
func (k *Kingdom) Touch(now time.Time) {
	k.LastActive = now.UTC()
}
