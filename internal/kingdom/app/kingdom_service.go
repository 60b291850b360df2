package app

import (
	"context"
	"errors"
	"time"

	"MedievalKingdoms/internal/kingdom/actors"
	"MedievalKingdoms/internal/kingdom/app/port"
	"MedievalKingdoms/internal/kingdom/domain"
	"MedievalKingdoms/internal/shared/gamedata/units"
)

// Gateway 是王国 actor runtime 的最小门面，app 层经由它串行化所有写操作。
type Gateway interface {
	Ask(ctx context.Context, cmd actors.Command) (any, error)
}

type KingdomService struct {
	gw               Gateway
	repo             port.KingdomRepository
	queue            port.ConstructionRepository
	protectionWindow time.Duration
}

func NewKingdomService(gw Gateway, repo port.KingdomRepository, queue port.ConstructionRepository, protectionWindow time.Duration) *KingdomService {
	if protectionWindow <= 0 {
		protectionWindow = time.Hour
	}
	return &KingdomService{
		gw:               gw,
		repo:             repo,
		queue:            queue,
		protectionWindow: protectionWindow,
	}
}

// Profile 王国全景（资源、建筑、兵力、产出、保护期）。
func (s *KingdomService) Profile(ctx context.Context, playerId int64) (*ProfileView, error) {
	reply, err := ask[*actors.GetReply](ctx, s.gw, &actors.Get{Player: playerId})
	if err != nil {
		return nil, err
	}
	if reply.Err != nil {
		return nil, s.translate(reply.Err)
	}
	return toProfileView(reply.Kingdom, s.protectionWindow), nil
}

// UpgradeBuilding 发起建筑升级，返回建造队列项。
func (s *KingdomService) UpgradeBuilding(ctx context.Context, playerId int64, buildingId string) (*ConstructionView, error) {
	if buildingId == "" {
		return nil, ErrBuildingNotFound.WithReason(ReasonBuildingNotFound)
	}

	reply, err := ask[*actors.UpgradeReply](ctx, s.gw, &actors.Upgrade{Player: playerId, BuildingId: buildingId})
	if err != nil {
		return nil, err
	}
	if reply.Err != nil {
		return nil, s.translate(reply.Err)
	}

	view := toConstructionView(reply.Construction, time.Now().UTC())
	return &view, nil
}

// ConstructionQueue 玩家的在途建造队列。
func (s *KingdomService) ConstructionQueue(ctx context.Context, playerId int64) ([]ConstructionView, error) {
	items, err := s.queue.ListPending(ctx, playerId)
	if err != nil {
		return nil, Wrap(CodeUnavailable, "建造队列读取失败", err).WithReason(ReasonQueueRepoUnavailable)
	}

	now := time.Now().UTC()
	views := make([]ConstructionView, 0, len(items))
	for _, item := range items {
		views = append(views, toConstructionView(item, now))
	}
	return views, nil
}

// RecruitUnits 招募兵力。
func (s *KingdomService) RecruitUnits(ctx context.Context, playerId int64, unit string, quantity int64) (*RecruitView, error) {
	reply, err := ask[*actors.RecruitReply](ctx, s.gw, &actors.Recruit{
		Player:   playerId,
		Unit:     units.Type(unit),
		Quantity: quantity,
	})
	if err != nil {
		return nil, err
	}
	if reply.Err != nil {
		return nil, s.translate(reply.Err)
	}

	return &RecruitView{
		Unit:      unit,
		Quantity:  quantity,
		Cost:      basketToMap(reply.Cost),
		Resources: basketToMap(reply.Kingdom.Resources),
		Army:      rosterToMap(reply.Kingdom.Army),
		Power:     reply.Kingdom.Power,
	}, nil
}

// Leaderboard 全服战力排行榜。
func (s *KingdomService) Leaderboard(ctx context.Context, limit int64) ([]port.LeaderboardEntry, error) {
	entries, err := s.repo.Leaderboard(ctx, limit)
	if err != nil {
		return nil, Wrap(CodeUnavailable, "排行榜读取失败", err).WithReason(ReasonKingdomRepoUnavailable)
	}
	return entries, nil
}

// Touch 刷新活跃时间（网关在鉴权通过后调用）。
func (s *KingdomService) Touch(ctx context.Context, playerId int64) {
	// 失败只影响活跃判定，不打断业务
	_, _ = s.gw.Ask(ctx, &actors.Touch{Player: playerId})
}

// ask 发送指令并断言 reply 类型。
func ask[T any](ctx context.Context, gw Gateway, cmd actors.Command) (T, error) {
	var zero T
	res, err := gw.Ask(ctx, cmd)
	if err != nil {
		return zero, Wrap(CodeUnavailable, "王国服务暂不可用", err).WithReason(ReasonActorAskFail)
	}
	reply, ok := res.(T)
	if !ok {
		return zero, Wrap(CodeInternalServer, "actor 返回类型非法", nil).WithReason(ReasonActorAskFail)
	}
	return reply, nil
}

// translate 把领域/端口错误翻译为对外错误码。
func (s *KingdomService) translate(err error) error {
	switch {
	case errors.Is(err, port.ErrKingdomNotFound):
		return ErrKingdomNotFound.WithReason(ReasonKingdomNotFound)
	case errors.Is(err, domain.ErrBuildingNotFound):
		return ErrBuildingNotFound.WithReason(ReasonBuildingNotFound)
	case errors.Is(err, domain.ErrAlreadyConstructing):
		return ErrAlreadyConstructing.WithReason(ReasonAlreadyConstructing)
	case errors.Is(err, domain.ErrMaxLevelReached):
		return ErrMaxLevelReached.WithReason(ReasonMaxLevelReached)
	case errors.Is(err, domain.ErrInsufficientResources):
		return ErrInsufficientResources.WithReason(ReasonInsufficientResources)
	case errors.Is(err, domain.ErrInvalidUnitType):
		return ErrInvalidUnitType.WithReason(ReasonInvalidUnitType)
	case errors.Is(err, domain.ErrInvalidQuantity):
		return ErrInvalidQuantity
	default:
		return Wrap(CodeInternalServer, "王国操作失败", err)
	}
}
