package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"MedievalKingdoms/internal/kingdom/actors"
	kingdomdomain "MedievalKingdoms/internal/kingdom/domain"
	"MedievalKingdoms/internal/shared/gamedata/empire"
	"MedievalKingdoms/internal/shared/gamedata/resource"
	"MedievalKingdoms/internal/shared/gamedata/units"
	"MedievalKingdoms/internal/shop/app/port"
	"MedievalKingdoms/internal/shop/domain"
	"MedievalKingdoms/modules/kit/logx"
)

// Gateway 王国 actor runtime 门面。
type Gateway interface {
	Ask(ctx context.Context, cmd actors.Command) (any, error)
}

type ShopService struct {
	gw        Gateway
	purchases port.PurchaseStore
	inventory port.InventoryStore
	log       logx.Logger
}

func NewShopService(gw Gateway, purchases port.PurchaseStore, inventory port.InventoryStore, log logx.Logger) *ShopService {
	return &ShopService{
		gw:        gw,
		purchases: purchases,
		inventory: inventory,
		log:       log,
	}
}

// Items 货架。
func (s *ShopService) Items() []*ItemView {
	items := domain.Catalog()
	out := make([]*ItemView, 0, len(items))
	for _, item := range items {
		out = append(out, toItemView(item))
	}
	return out
}

// Purchase 购买道具。先整体扣款（余额不足整体拒绝），再按效果变体
// 执行对应处理器；效果执行失败退款。
func (s *ShopService) Purchase(ctx context.Context, playerId int64, itemId string, quantity int64) (*PurchaseView, error) {
	item := domain.FindItem(itemId)
	if item == nil {
		return nil, ErrItemNotFound.WithReason(ReasonItemNotFound).WithData("item_id", itemId)
	}
	if !item.Available {
		return nil, ErrItemUnavailable.WithData("item_id", itemId)
	}
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	k, err := s.snapshot(ctx, playerId)
	if err != nil {
		return nil, err
	}

	totalCost := item.TotalCost(quantity)
	if err := s.applyDelta(ctx, playerId, negate(totalCost), true); err != nil {
		if errors.Is(err, kingdomdomain.ErrInsufficientResources) {
			return nil, ErrInsufficientGold.WithReason(ReasonInsufficientGold)
		}
		return nil, Wrap(CodeUnavailable, "扣款失败", err)
	}

	if err := s.applyEffect(ctx, playerId, item, quantity); err != nil {
		// 效果执行失败退款
		if refundErr := s.applyDelta(ctx, playerId, totalCost, false); refundErr != nil && s.log != nil {
			s.log.Error("shop purchase refund failed, manual reconcile needed",
				zap.Int64("player_id", playerId),
				zap.String("item_id", itemId),
				zap.Error(refundErr))
		}
		return nil, err
	}

	purchase := domain.NewPurchase(playerId, k.Username, item, quantity)
	if err := s.purchases.Insert(ctx, purchase); err != nil && s.log != nil {
		s.log.Error("shop purchase record insert failed",
			zap.Int64("player_id", playerId),
			zap.String("item_id", itemId),
			zap.Error(err))
	}
	return toPurchaseView(purchase), nil
}

// applyEffect 每种效果一个处理器。
func (s *ShopService) applyEffect(ctx context.Context, playerId int64, item *domain.Item, quantity int64) error {
	switch effect := item.Effect.(type) {
	case domain.ResourceGrant:
		return s.applyResourceGrant(ctx, playerId, effect, quantity)
	case domain.ArmyGrant:
		return s.applyArmyGrant(ctx, playerId, effect, quantity)
	case domain.ConstructionRush:
		return s.applyConstructionRush(ctx, playerId, quantity)
	case domain.EmpireChangeToken:
		return s.applyEmpireChangeToken(ctx, playerId, item.Id, quantity)
	default:
		return Wrap(CodeInternalServer, "未知道具效果", nil).WithData("item_id", item.Id)
	}
}

func (s *ShopService) applyResourceGrant(ctx context.Context, playerId int64, effect domain.ResourceGrant, quantity int64) error {
	grant := make(resource.Basket, len(effect.Amount))
	for kind, v := range effect.Amount {
		grant[kind] = v * quantity
	}
	if err := s.applyDelta(ctx, playerId, grant, false); err != nil {
		return Wrap(CodeUnavailable, "资源发放失败", err).WithReason(ReasonEffectApplyFail)
	}
	return nil
}

func (s *ShopService) applyArmyGrant(ctx context.Context, playerId int64, effect domain.ArmyGrant, quantity int64) error {
	grant := make(units.Roster, len(effect.Units))
	for typ, v := range effect.Units {
		grant[typ] = v * quantity
	}
	res, err := s.gw.Ask(ctx, &actors.GrantArmy{Player: playerId, Units: grant})
	if err != nil {
		return Wrap(CodeUnavailable, "兵力发放失败", err).WithReason(ReasonEffectApplyFail)
	}
	reply, ok := res.(*actors.GrantArmyReply)
	if !ok {
		return Wrap(CodeInternalServer, "actor 返回类型非法", nil)
	}
	if reply.Err != nil {
		return Wrap(CodeUnavailable, "兵力发放失败", reply.Err).WithReason(ReasonEffectApplyFail)
	}
	return nil
}

// applyConstructionRush 每件加速一条在途建造；一条都没有时视为无效购买。
func (s *ShopService) applyConstructionRush(ctx context.Context, playerId int64, quantity int64) error {
	rushed := int64(0)
	for i := int64(0); i < quantity; i++ {
		res, err := s.gw.Ask(ctx, &actors.RushConstruction{Player: playerId})
		if err != nil {
			return Wrap(CodeUnavailable, "建造加速失败", err).WithReason(ReasonEffectApplyFail)
		}
		reply, ok := res.(*actors.RushConstructionReply)
		if !ok {
			return Wrap(CodeInternalServer, "actor 返回类型非法", nil)
		}
		if reply.Err != nil {
			return Wrap(CodeUnavailable, "建造加速失败", reply.Err).WithReason(ReasonEffectApplyFail)
		}
		if reply.Construction == nil {
			break
		}
		rushed++
	}
	if rushed == 0 {
		return ErrNothingConstructing.WithReason(ReasonNothingConstructing)
	}
	return nil
}

func (s *ShopService) applyEmpireChangeToken(ctx context.Context, playerId int64, itemId string, quantity int64) error {
	if err := s.inventory.Grant(ctx, playerId, itemId, quantity); err != nil {
		return Wrap(CodeUnavailable, "凭证发放失败", err).WithReason(ReasonInventoryRepoUnavailable)
	}
	return nil
}

// ChangeEmpire 消耗一张换阵营凭证更换阵营，资源与建筑保持不变。
func (s *ShopService) ChangeEmpire(ctx context.Context, playerId int64, to string) (string, error) {
	target := empire.Empire(to)
	if empire.Normalize(to) != target {
		return "", ErrInvalidEmpire.WithData("empire", to)
	}

	if err := s.inventory.Consume(ctx, playerId, domain.EmpireChangeItemId, 1); err != nil {
		if errors.Is(err, port.ErrInsufficientItems) {
			return "", ErrNoToken.WithReason(ReasonNoToken)
		}
		return "", Wrap(CodeUnavailable, "凭证扣减失败", err).WithReason(ReasonInventoryRepoUnavailable)
	}

	res, err := s.gw.Ask(ctx, &actors.ChangeEmpire{Player: playerId, To: target})
	if err == nil {
		if reply, ok := res.(*actors.ChangeEmpireReply); ok {
			err = reply.Err
		} else {
			err = errors.New("actor 返回类型非法")
		}
	}
	if err != nil {
		// 换阵营失败返还凭证
		if grantErr := s.inventory.Grant(ctx, playerId, domain.EmpireChangeItemId, 1); grantErr != nil && s.log != nil {
			s.log.Error("empire change token refund failed, manual reconcile needed",
				zap.Int64("player_id", playerId), zap.Error(grantErr))
		}
		return "", Wrap(CodeUnavailable, "换阵营失败", err)
	}
	return string(target), nil
}

// Purchases 我的购买流水。
func (s *ShopService) Purchases(ctx context.Context, playerId int64, limit int64) ([]*PurchaseView, error) {
	purchases, err := s.purchases.ListByPlayer(ctx, playerId, limit)
	if err != nil {
		return nil, Wrap(CodeUnavailable, "购买流水读取失败", err).WithReason(ReasonPurchaseRepoUnavailable)
	}
	out := make([]*PurchaseView, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, toPurchaseView(p))
	}
	return out, nil
}

// Inventory 我的道具库存。
func (s *ShopService) Inventory(ctx context.Context, playerId int64) (map[string]int64, error) {
	items, err := s.inventory.Get(ctx, playerId)
	if err != nil {
		return nil, Wrap(CodeUnavailable, "道具库存读取失败", err).WithReason(ReasonInventoryRepoUnavailable)
	}
	return items, nil
}

func (s *ShopService) snapshot(ctx context.Context, playerId int64) (*kingdomdomain.Kingdom, error) {
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

func (s *ShopService) applyDelta(ctx context.Context, playerId int64, delta resource.Basket, requireAfford bool) error {
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

func negate(b resource.Basket) resource.Basket {
	out := make(resource.Basket, len(b))
	for kind, v := range b {
		out[kind] = -v
	}
	return out
}
