package actors

import (
	"MedievalKingdoms/internal/kingdom/domain"
	"MedievalKingdoms/internal/shared/gamedata/empire"
	"MedievalKingdoms/internal/shared/gamedata/resource"
	"MedievalKingdoms/internal/shared/gamedata/units"
)

// Command 是发往王国 actor 的指令；ManagerActor 按 PlayerID 路由。
type Command interface {
	PlayerID() int64
}

// Get 读取王国快照（深拷贝，调用方可安全持有）。
type Get struct {
	Player int64
}

func (c *Get) PlayerID() int64 { return c.Player }

type GetReply struct {
	Kingdom *domain.Kingdom
	Err     error
}

// Upgrade 发起建筑升级，成功时写入建造队列。
type Upgrade struct {
	Player     int64
	BuildingId string
}

func (c *Upgrade) PlayerID() int64 { return c.Player }

type UpgradeReply struct {
	Kingdom      *domain.Kingdom
	Construction *domain.Construction
	Err          error
}

// Recruit 招募兵力。
type Recruit struct {
	Player   int64
	Unit     units.Type
	Quantity int64
}

func (c *Recruit) PlayerID() int64 { return c.Player }

type RecruitReply struct {
	Kingdom *domain.Kingdom
	Cost    resource.Basket
	Err     error
}

// AccrueTick 资源累计（后台产出循环触发）。
type AccrueTick struct {
	Player int64
}

func (c *AccrueTick) PlayerID() int64 { return c.Player }

type AccrueReply struct {
	Delta resource.Basket
	Err   error
}

// CompleteConstruction 建造完工落账（调度循环触发）。
type CompleteConstruction struct {
	Player int64
	Item   *domain.Construction
}

func (c *CompleteConstruction) PlayerID() int64 { return c.Player }

type CompleteConstructionReply struct {
	Err error
}

// ApplyDelta 资源增减。RequireAfford 时余额不足整体拒绝；
// 否则逐项扣减最低扣到 0（掠夺/交易补偿场景）。
type ApplyDelta struct {
	Player        int64
	Delta         resource.Basket
	RequireAfford bool
}

func (c *ApplyDelta) PlayerID() int64 { return c.Player }

type ApplyDeltaReply struct {
	Resources resource.Basket
	Err       error
}

// ApplyRaidOutcome 对一方应用掠夺结算：资源变动、战损、保护期标记。
type ApplyRaidOutcome struct {
	Player        int64
	ResourceDelta resource.Basket // 攻方为正、守方为负
	ArmyLoss      int64
	MarkRaided    bool // 仅守方置位，进入保护期
}

func (c *ApplyRaidOutcome) PlayerID() int64 { return c.Player }

type ApplyRaidOutcomeReply struct {
	Err error
}

// GrantArmy 直接增兵（商店道具）。
type GrantArmy struct {
	Player int64
	Units  units.Roster
}

func (c *GrantArmy) PlayerID() int64 { return c.Player }

type GrantArmyReply struct {
	Kingdom *domain.Kingdom
	Err     error
}

// ChangeEmpire 更换阵营（商店道具），资源与建筑保持不变。
type ChangeEmpire struct {
	Player int64
	To     empire.Empire
}

func (c *ChangeEmpire) PlayerID() int64 { return c.Player }

type ChangeEmpireReply struct {
	Kingdom *domain.Kingdom
	Err     error
}

// RushConstruction 立即完成一条在途建造（商店道具）。
type RushConstruction struct {
	Player int64
}

func (c *RushConstruction) PlayerID() int64 { return c.Player }

type RushConstructionReply struct {
	Construction *domain.Construction // 被加速的项；无在途建造时为 nil
	Err          error
}

// RecomputePower 重算并落盘战力（排行榜循环触发）。
type RecomputePower struct {
	Player int64
}

func (c *RecomputePower) PlayerID() int64 { return c.Player }

type RecomputePowerReply struct {
	Power int64
	Err   error
}

// SetAlliance 更新所属联盟（加入 / 退出同一条指令，退出时传空串）。
type SetAlliance struct {
	Player     int64
	AllianceId string
}

func (c *SetAlliance) PlayerID() int64 { return c.Player }

type SetAllianceReply struct {
	Err error
}

// Touch 刷新活跃时间。
type Touch struct {
	Player int64
}

func (c *Touch) PlayerID() int64 { return c.Player }

type TouchReply struct {
	Err error
}
