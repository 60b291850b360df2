package actors

import (
	"context"
	"errors"
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"MedievalKingdoms/internal/kingdom/app/port"
	"MedievalKingdoms/internal/kingdom/domain"
)

type State int

const (
	None State = iota
	Init
	Online
	LoadFailed
	Stopping
)

const persistTimeout = 3 * time.Second

// KingdomActor 是单个玩家王国的唯一写者：聚合常驻内存，
// 所有修改经由邮箱串行执行，先改内存再定向落盘。
type KingdomActor struct {
	state       State
	playerId    int64
	kingdom     *domain.Kingdom
	loadErr     error
	lastAccrual time.Time
	repo        port.KingdomRepository
	queue       port.ConstructionRepository
}

func NewKingdomActor(playerId int64, repo port.KingdomRepository, queue port.ConstructionRepository) *KingdomActor {
	return &KingdomActor{
		state:    None,
		playerId: playerId,
		repo:     repo,
		queue:    queue,
	}
}

func (a *KingdomActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.state = Init
		a.init(ctx)
		return
	case *actor.Stopping:
		a.state = Stopping
		return
	case *actor.Stopped:
		return
	case *actor.Restarting:
		a.state = Init
		return
	case Command:
		a.handle(ctx, msg)
	default:
		return
	}
}

func (a *KingdomActor) init(ctx actor.Context) {
	loadCtx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	k, err := a.repo.Load(loadCtx, a.playerId)
	if err != nil {
		// 不立即 Stop：让后续指令拿到明确错误，而不是 ask 超时
		a.state = LoadFailed
		a.loadErr = err
		ctx.Logger().Error("kingdom load failed", "player_id", a.playerId, "err", err)
		return
	}
	a.state = Online
	a.kingdom = k
	a.lastAccrual = time.Now().UTC()
}

func (a *KingdomActor) handle(ctx actor.Context, cmd Command) {
	if a.state != Online {
		err := a.loadErr
		if err == nil {
			err = errors.New("kingdom actor not online")
		}
		respondError(ctx, cmd, err)
		return
	}

	switch msg := cmd.(type) {
	case *Get:
		respond(ctx, &GetReply{Kingdom: a.kingdom.Snapshot()})
	case *Upgrade:
		a.onUpgrade(ctx, msg)
	case *Recruit:
		a.onRecruit(ctx, msg)
	case *AccrueTick:
		a.onAccrue(ctx)
	case *CompleteConstruction:
		a.onCompleteConstruction(ctx, msg)
	case *ApplyDelta:
		a.onApplyDelta(ctx, msg)
	case *ApplyRaidOutcome:
		a.onApplyRaidOutcome(ctx, msg)
	case *GrantArmy:
		a.onGrantArmy(ctx, msg)
	case *ChangeEmpire:
		a.onChangeEmpire(ctx, msg)
	case *RushConstruction:
		a.onRushConstruction(ctx, msg)
	case *RecomputePower:
		a.onRecomputePower(ctx)
	case *SetAlliance:
		a.onSetAlliance(ctx, msg)
	case *Touch:
		a.onTouch(ctx)
	default:
		respondError(ctx, cmd, errors.New("unknown kingdom command"))
	}
}

func (a *KingdomActor) onUpgrade(ctx actor.Context, msg *Upgrade) {
	k := a.kingdom
	b := k.Building(msg.BuildingId)

	targetLevel, buildTime, err := k.BeginUpgrade(msg.BuildingId)
	if err != nil {
		respond(ctx, &UpgradeReply{Err: err})
		return
	}

	item := domain.NewConstruction(k.Id, b, targetLevel, buildTime)
	if err := a.persist(func(pctx context.Context) error {
		if err := a.queue.Insert(pctx, item); err != nil {
			return err
		}
		return a.repo.UpdateBuildings(pctx, k.Id, k)
	}); err != nil {
		// 落盘失败回滚内存，保持内存与文档一致
		k.Resources = k.Resources.Add(costOf(b.Type, targetLevel))
		b.Constructing = false
		respond(ctx, &UpgradeReply{Err: err})
		return
	}

	respond(ctx, &UpgradeReply{Kingdom: k.Snapshot(), Construction: item})
}

func (a *KingdomActor) onRecruit(ctx actor.Context, msg *Recruit) {
	k := a.kingdom

	cost, err := k.Recruit(msg.Unit, msg.Quantity)
	if err != nil {
		respond(ctx, &RecruitReply{Err: err})
		return
	}

	if err := a.persist(func(pctx context.Context) error {
		return a.repo.UpdateArmy(pctx, k.Id, k)
	}); err != nil {
		k.Resources = k.Resources.Add(cost)
		k.Army = k.Army.Add(msg.Unit, -msg.Quantity)
		k.RecomputePower()
		respond(ctx, &RecruitReply{Err: err})
		return
	}

	respond(ctx, &RecruitReply{Kingdom: k.Snapshot(), Cost: cost})
}

func (a *KingdomActor) onAccrue(ctx actor.Context) {
	now := time.Now().UTC()
	delta := a.kingdom.Accrue(now.Sub(a.lastAccrual))
	a.lastAccrual = now

	if len(delta) == 0 {
		respond(ctx, &AccrueReply{Delta: delta})
		return
	}

	if err := a.persist(func(pctx context.Context) error {
		return a.repo.UpdateResources(pctx, a.playerId, a.kingdom.Resources)
	}); err != nil {
		respond(ctx, &AccrueReply{Err: err})
		return
	}
	respond(ctx, &AccrueReply{Delta: delta})
}

func (a *KingdomActor) onCompleteConstruction(ctx actor.Context, msg *CompleteConstruction) {
	if msg.Item == nil {
		respond(ctx, &CompleteConstructionReply{Err: errors.New("nil construction item")})
		return
	}

	k := a.kingdom
	k.CompleteUpgrade(msg.Item.BuildingId, msg.Item.TargetLevel)

	if err := a.persist(func(pctx context.Context) error {
		return a.repo.UpdateBuildings(pctx, k.Id, k)
	}); err != nil {
		respond(ctx, &CompleteConstructionReply{Err: err})
		return
	}
	respond(ctx, &CompleteConstructionReply{})
}

func (a *KingdomActor) onApplyDelta(ctx actor.Context, msg *ApplyDelta) {
	k := a.kingdom

	if msg.RequireAfford {
		debit := negativePart(msg.Delta)
		if !k.Resources.CanAfford(debit) {
			respond(ctx, &ApplyDeltaReply{Err: domain.ErrInsufficientResources})
			return
		}
	}

	before := k.Resources.Clone()
	k.Resources = applyClamped(k.Resources, msg.Delta)

	if err := a.persist(func(pctx context.Context) error {
		return a.repo.UpdateResources(pctx, k.Id, k.Resources)
	}); err != nil {
		k.Resources = before
		respond(ctx, &ApplyDeltaReply{Err: err})
		return
	}
	respond(ctx, &ApplyDeltaReply{Resources: k.Resources.Clone()})
}

func (a *KingdomActor) onApplyRaidOutcome(ctx actor.Context, msg *ApplyRaidOutcome) {
	k := a.kingdom
	before := k.Snapshot()

	k.Resources = applyClamped(k.Resources, msg.ResourceDelta)
	k.Army = k.Army.RemoveSoldiers(msg.ArmyLoss)
	if msg.MarkRaided {
		k.LastRaidTime = time.Now().UTC()
	}
	k.RecomputePower()

	if err := a.persist(func(pctx context.Context) error {
		return a.repo.UpdateRaidOutcome(pctx, k.Id, k, msg.MarkRaided)
	}); err != nil {
		k.Resources = before.Resources
		k.Army = before.Army
		k.LastRaidTime = before.LastRaidTime
		k.Power = before.Power
		respond(ctx, &ApplyRaidOutcomeReply{Err: err})
		return
	}
	respond(ctx, &ApplyRaidOutcomeReply{})
}

func (a *KingdomActor) onGrantArmy(ctx actor.Context, msg *GrantArmy) {
	k := a.kingdom
	before := k.Army.Clone()

	for unit, n := range msg.Units {
		if n > 0 {
			k.Army = k.Army.Add(unit, n)
		}
	}
	k.RecomputePower()

	if err := a.persist(func(pctx context.Context) error {
		return a.repo.UpdateArmy(pctx, k.Id, k)
	}); err != nil {
		k.Army = before
		k.RecomputePower()
		respond(ctx, &GrantArmyReply{Err: err})
		return
	}
	respond(ctx, &GrantArmyReply{Kingdom: k.Snapshot()})
}

func (a *KingdomActor) onChangeEmpire(ctx actor.Context, msg *ChangeEmpire) {
	k := a.kingdom
	before := k.Empire

	k.Empire = msg.To
	if err := a.persist(func(pctx context.Context) error {
		return a.repo.UpdateEmpire(pctx, k.Id, string(k.Empire))
	}); err != nil {
		k.Empire = before
		respond(ctx, &ChangeEmpireReply{Err: err})
		return
	}
	respond(ctx, &ChangeEmpireReply{Kingdom: k.Snapshot()})
}

func (a *KingdomActor) onRushConstruction(ctx actor.Context, msg *RushConstruction) {
	k := a.kingdom

	var items []*domain.Construction
	err := a.persist(func(pctx context.Context) error {
		var listErr error
		items, listErr = a.queue.ListPending(pctx, k.Id)
		return listErr
	})
	if err != nil {
		respond(ctx, &RushConstructionReply{Err: err})
		return
	}
	if len(items) == 0 {
		respond(ctx, &RushConstructionReply{})
		return
	}

	// 最早完工的一条立即落账
	item := items[0]
	var flipped bool
	if err := a.persist(func(pctx context.Context) error {
		var markErr error
		flipped, markErr = a.queue.MarkCompleted(pctx, item.Id)
		return markErr
	}); err != nil {
		respond(ctx, &RushConstructionReply{Err: err})
		return
	}
	if !flipped {
		// 已被调度循环抢先完成
		respond(ctx, &RushConstructionReply{})
		return
	}

	k.CompleteUpgrade(item.BuildingId, item.TargetLevel)
	if err := a.persist(func(pctx context.Context) error {
		return a.repo.UpdateBuildings(pctx, k.Id, k)
	}); err != nil {
		respond(ctx, &RushConstructionReply{Err: err})
		return
	}
	item.Completed = true
	respond(ctx, &RushConstructionReply{Construction: item})
}

func (a *KingdomActor) onRecomputePower(ctx actor.Context) {
	power := a.kingdom.RecomputePower()
	if err := a.persist(func(pctx context.Context) error {
		return a.repo.UpdatePower(pctx, a.playerId, power)
	}); err != nil {
		respond(ctx, &RecomputePowerReply{Err: err})
		return
	}
	respond(ctx, &RecomputePowerReply{Power: power})
}

func (a *KingdomActor) onSetAlliance(ctx actor.Context, msg *SetAlliance) {
	prev := a.kingdom.AllianceId
	a.kingdom.AllianceId = msg.AllianceId
	if err := a.persist(func(pctx context.Context) error {
		return a.repo.UpdateAlliance(pctx, a.playerId, msg.AllianceId)
	}); err != nil {
		a.kingdom.AllianceId = prev
		respond(ctx, &SetAllianceReply{Err: err})
		return
	}
	respond(ctx, &SetAllianceReply{})
}

func (a *KingdomActor) onTouch(ctx actor.Context) {
	now := time.Now().UTC()
	a.kingdom.Touch(now)
	if err := a.persist(func(pctx context.Context) error {
		return a.repo.UpdateLastActive(pctx, a.playerId, now)
	}); err != nil {
		respond(ctx, &TouchReply{Err: err})
		return
	}
	respond(ctx, &TouchReply{})
}

func (a *KingdomActor) persist(fn func(ctx context.Context) error) error {
	pctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	return fn(pctx)
}
