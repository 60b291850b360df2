package app

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"MedievalKingdoms/internal/combat"
	"MedievalKingdoms/internal/kingdom/actors"
	"MedievalKingdoms/internal/kingdom/app/port"
	"MedievalKingdoms/internal/kingdom/domain"
	"MedievalKingdoms/internal/shared/gamedata/resource"
	"MedievalKingdoms/modules/kit/logx"
)

// Gateway 王国 actor runtime 门面。
type Gateway interface {
	Ask(ctx context.Context, cmd actors.Command) (any, error)
}

// RaidHistory 战报存储端口。
type RaidHistory interface {
	Insert(ctx context.Context, o *combat.Outcome) error
	ListByPlayer(ctx context.Context, playerId int64, limit int64) ([]*combat.Outcome, error)
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Notifier 在线推送端口（ws hub）。
type Notifier interface {
	PushTo(uid int64, name string, data any)
}

const raidPushRoute = "combat.raided"

type RaidService struct {
	gw               Gateway
	kingdoms         port.KingdomRepository
	history          RaidHistory
	notifier         Notifier
	rng              combat.Rand
	protectionWindow time.Duration
	log              logx.Logger
}

// NewRaidService rng 传 nil 时使用全局随机源；测试注入固定种子。
func NewRaidService(gw Gateway, kingdoms port.KingdomRepository, history RaidHistory, notifier Notifier, rng combat.Rand, protectionWindow time.Duration, log logx.Logger) *RaidService {
	if rng == nil {
		rng = globalRand{}
	}
	if protectionWindow <= 0 {
		protectionWindow = time.Hour
	}
	return &RaidService{
		gw:               gw,
		kingdoms:         kingdoms,
		history:          history,
		notifier:         notifier,
		rng:              rng,
		protectionWindow: protectionWindow,
		log:              log,
	}
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// LaunchRaid 对目标玩家发起掠夺：快照 → 纯函数结算 → 双方各一次落账。
// 双方落账不构成跨玩家原子事务：攻方失败则整体失败；
// 守方失败时攻方收益已入账，记日志补偿排查。
func (s *RaidService) LaunchRaid(ctx context.Context, attackerId int64, targetUsername string) (*RaidView, error) {
	if targetUsername == "" {
		return nil, ErrTargetNotFound.WithReason(ReasonTargetNotFound)
	}

	target, err := s.kingdoms.FindByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, port.ErrKingdomNotFound) {
			return nil, ErrTargetNotFound.WithReason(ReasonTargetNotFound)
		}
		return nil, Wrap(CodeUnavailable, "目标查询失败", err)
	}

	attacker, err := s.snapshot(ctx, attackerId)
	if err != nil {
		return nil, err
	}
	defender, err := s.snapshot(ctx, target.Id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := combat.CanRaid(attacker, defender, now, s.protectionWindow); err != nil {
		return nil, s.translateCheck(err)
	}

	outcome := combat.Resolve(attacker, defender, s.rng)

	// 攻方先落账：收益 + 战损
	if err := s.apply(ctx, &actors.ApplyRaidOutcome{
		Player:        attacker.Id,
		ResourceDelta: outcome.Stolen,
		ArmyLoss:      outcome.AttackerLosses,
	}); err != nil {
		return nil, Wrap(CodeUnavailable, "掠夺结算失败", err).WithReason(ReasonRaidApplyFail)
	}

	// 守方落账：损失 + 保护期
	if err := s.apply(ctx, &actors.ApplyRaidOutcome{
		Player:        defender.Id,
		ResourceDelta: negate(outcome.Stolen),
		ArmyLoss:      outcome.DefenderLosses,
		MarkRaided:    true,
	}); err != nil && s.log != nil {
		s.log.Error("raid defender settle failed, manual reconcile needed",
			zap.String("raid_id", outcome.Id),
			zap.Int64("defender_id", defender.Id),
			zap.Error(err))
	}

	if err := s.history.Insert(ctx, outcome); err != nil && s.log != nil {
		s.log.Error("raid history insert failed", zap.String("raid_id", outcome.Id), zap.Error(err))
	}

	if s.notifier != nil {
		s.notifier.PushTo(defender.Id, raidPushRoute, toRaidView(outcome))
	}

	return toRaidView(outcome), nil
}

// RaidHistory 某玩家的战报列表。
func (s *RaidService) RaidHistory(ctx context.Context, playerId int64, limit int64) ([]*RaidView, error) {
	outcomes, err := s.history.ListByPlayer(ctx, playerId, limit)
	if err != nil {
		return nil, Wrap(CodeUnavailable, "战报读取失败", err).WithReason(ReasonRaidRepoUnavailable)
	}

	views := make([]*RaidView, 0, len(outcomes))
	for _, o := range outcomes {
		views = append(views, toRaidView(o))
	}
	return views, nil
}

func (s *RaidService) snapshot(ctx context.Context, playerId int64) (*domain.Kingdom, error) {
	res, err := s.gw.Ask(ctx, &actors.Get{Player: playerId})
	if err != nil {
		return nil, Wrap(CodeUnavailable, "王国服务暂不可用", err)
	}
	reply, ok := res.(*actors.GetReply)
	if !ok {
		return nil, Wrap(CodeInternalServer, "actor 返回类型非法", nil)
	}
	if reply.Err != nil {
		if errors.Is(reply.Err, port.ErrKingdomNotFound) {
			return nil, ErrTargetNotFound.WithReason(ReasonTargetNotFound)
		}
		return nil, Wrap(CodeUnavailable, "王国快照读取失败", reply.Err)
	}
	return reply.Kingdom, nil
}

func (s *RaidService) apply(ctx context.Context, cmd *actors.ApplyRaidOutcome) error {
	res, err := s.gw.Ask(ctx, cmd)
	if err != nil {
		return err
	}
	reply, ok := res.(*actors.ApplyRaidOutcomeReply)
	if !ok {
		return errors.New("actor 返回类型非法")
	}
	return reply.Err
}

func (s *RaidService) translateCheck(err error) error {
	switch {
	case errors.Is(err, combat.ErrSelfRaid):
		return ErrSelfRaid.WithReason(ReasonSelfRaid)
	case errors.Is(err, combat.ErrNoArmy):
		return ErrNoArmy.WithReason(ReasonNoArmy)
	case errors.Is(err, combat.ErrTargetProtected):
		return ErrTargetProtected.WithReason(ReasonTargetProtected)
	default:
		return Wrap(CodeInternalServer, "掠夺校验失败", err)
	}
}

func negate(b resource.Basket) resource.Basket {
	out := make(resource.Basket, len(b))
	for kind, v := range b {
		out[kind] = -v
	}
	return out
}
