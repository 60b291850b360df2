package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"MedievalKingdoms/internal/kingdom/actors"
	kingdomdomain "MedievalKingdoms/internal/kingdom/domain"
	"MedievalKingdoms/internal/market/app/port"
	marketdomain "MedievalKingdoms/internal/market/domain"
	"MedievalKingdoms/internal/shared/gamedata/resource"
	"MedievalKingdoms/modules/kit/logx"
)

// Gateway 王国 actor runtime 门面。
type Gateway interface {
	Ask(ctx context.Context, cmd actors.Command) (any, error)
}

type TradeService struct {
	gw              Gateway
	offers          port.OfferStore
	defaultDuration time.Duration
	log             logx.Logger
}

func NewTradeService(gw Gateway, offers port.OfferStore, defaultDuration time.Duration, log logx.Logger) *TradeService {
	if defaultDuration <= 0 {
		defaultDuration = time.Hour
	}
	return &TradeService{
		gw:              gw,
		offers:          offers,
		defaultDuration: defaultDuration,
		log:             log,
	}
}

// CreateOffer 创建挂单。只校验创建时余额充足，不托管资源：
// 成交时再结算，届时余额不足按扣到 0 处理。
func (s *TradeService) CreateOffer(ctx context.Context, creatorId int64, offering, requesting map[string]int64, durationSecs int64) (*OfferView, error) {
	duration := s.defaultDuration
	if durationSecs > 0 {
		duration = time.Duration(durationSecs) * time.Second
	}

	creator, err := s.snapshot(ctx, creatorId)
	if err != nil {
		return nil, err
	}

	offer, err := marketdomain.NewTradeOffer(creatorId, creator.Username, mapToBasket(offering), mapToBasket(requesting), duration)
	if err != nil {
		return nil, ErrInvalidOffer.WithData("cause", err.Error())
	}

	if !creator.Resources.CanAfford(offer.Offering) {
		return nil, ErrInsufficientSell.WithReason(ReasonInsufficientSell)
	}

	if err := s.offers.Insert(ctx, offer); err != nil {
		return nil, Wrap(CodeUnavailable, "挂单写入失败", err).WithReason(ReasonOfferRepoUnavailable)
	}
	return toOfferView(offer), nil
}

// AcceptOffer 接受挂单。流程：
//  1. 单次条件更新抢占挂单（并发接受只有一方命中）；
//  2. 接受方整体结算（付 requesting 得 offering），余额不足回滚抢占；
//  3. 创建方结算（付 offering 得 requesting），扣减侧最低扣到 0。
func (s *TradeService) AcceptOffer(ctx context.Context, acceptorId int64, offerId string) (*OfferView, error) {
	offer, err := s.offers.Get(ctx, offerId)
	if err != nil {
		if errors.Is(err, port.ErrOfferNotFound) {
			return nil, ErrOfferNotFound.WithReason(ReasonOfferNotFound)
		}
		return nil, Wrap(CodeUnavailable, "挂单读取失败", err).WithReason(ReasonOfferRepoUnavailable)
	}
	if offer.CreatorId == acceptorId {
		return nil, ErrOwnOffer.WithReason(ReasonOwnOffer)
	}

	now := time.Now().UTC()
	// 过期单还没被清理循环收走时也要给明确的拒绝原因，
	// 不跟"不存在"混在一个码里
	if offer.Expired(now) {
		return nil, ErrOfferExpired.WithReason(ReasonOfferExpired)
	}

	acceptor, err := s.snapshot(ctx, acceptorId)
	if err != nil {
		return nil, err
	}
	if err := s.offers.Claim(ctx, offerId, acceptorId, acceptor.Username, now); err != nil {
		if errors.Is(err, port.ErrOfferNotFound) {
			return nil, ErrOfferNotFound.WithReason(ReasonOfferNotFound)
		}
		return nil, Wrap(CodeUnavailable, "挂单抢占失败", err).WithReason(ReasonOfferRepoUnavailable)
	}

	// 接受方：-requesting +offering，要求扣减侧余额充足
	acceptorDelta := offer.Offering.Clone()
	for kind, v := range offer.Requesting {
		acceptorDelta[kind] -= v
	}
	if err := s.applyDelta(ctx, acceptorId, acceptorDelta, true); err != nil {
		// 结算失败回滚抢占，挂单重新可见
		if releaseErr := s.offers.Release(ctx, offerId); releaseErr != nil && s.log != nil {
			s.log.Error("trade offer release failed", zap.String("offer_id", offerId), zap.Error(releaseErr))
		}
		if errors.Is(err, kingdomdomain.ErrInsufficientResources) {
			return nil, ErrInsufficientPay.WithReason(ReasonInsufficientPay)
		}
		return nil, Wrap(CodeUnavailable, "交易结算失败", err).WithReason(ReasonTradeSettleFail)
	}

	// 创建方：-offering +requesting，创建后可能已花掉部分 offering，扣减侧最低扣到 0
	creatorDelta := offer.Requesting.Clone()
	for kind, v := range offer.Offering {
		creatorDelta[kind] -= v
	}
	if err := s.applyDelta(ctx, offer.CreatorId, creatorDelta, false); err != nil && s.log != nil {
		s.log.Error("trade creator settle failed, manual reconcile needed",
			zap.String("offer_id", offerId),
			zap.Int64("creator_id", offer.CreatorId),
			zap.Error(err))
	}

	offer.Active = false
	offer.AcceptorId = acceptorId
	offer.AcceptorUsername = acceptor.Username
	offer.CompletedAt = now
	return toOfferView(offer), nil
}

// OpenOffers 他人发布的可接受挂单。
func (s *TradeService) OpenOffers(ctx context.Context, playerId int64, limit int64) ([]*OfferView, error) {
	offers, err := s.offers.ListOpen(ctx, playerId, time.Now().UTC(), limit)
	if err != nil {
		return nil, Wrap(CodeUnavailable, "挂单读取失败", err).WithReason(ReasonOfferRepoUnavailable)
	}
	return toOfferViews(offers), nil
}

// MyOffers 自己的挂单（含历史）。
func (s *TradeService) MyOffers(ctx context.Context, playerId int64, limit int64) ([]*OfferView, error) {
	offers, err := s.offers.ListByCreator(ctx, playerId, limit)
	if err != nil {
		return nil, Wrap(CodeUnavailable, "挂单读取失败", err).WithReason(ReasonOfferRepoUnavailable)
	}
	return toOfferViews(offers), nil
}

func (s *TradeService) snapshot(ctx context.Context, playerId int64) (*kingdomdomain.Kingdom, error) {
	res, err := s.gw.Ask(ctx, &actors.Get{Player: playerId})
	if err != nil {
		return nil, Wrap(CodeUnavailable, "王国服务暂不可用", err)
	}
	reply, ok := res.(*actors.GetReply)
	if !ok {
		return nil, Wrap(CodeInternalServer, "actor 返回类型非法", nil)
	}
	if reply.Err != nil {
		return nil, Wrap(CodeUnavailable, "王国快照读取失败", reply.Err)
	}
	return reply.Kingdom, nil
}

func (s *TradeService) applyDelta(ctx context.Context, playerId int64, delta resource.Basket, requireAfford bool) error {
	res, err := s.gw.Ask(ctx, &actors.ApplyDelta{
		Player:        playerId,
		Delta:         delta,
		RequireAfford: requireAfford,
	})
	if err != nil {
		return err
	}
	reply, ok := res.(*actors.ApplyDeltaReply)
	if !ok {
		return errors.New("actor 返回类型非法")
	}
	return reply.Err
}

func mapToBasket(m map[string]int64) resource.Basket {
	out := make(resource.Basket, len(m))
	for kind, v := range m {
		out[resource.Kind(kind)] = v
	}
	return out
}
