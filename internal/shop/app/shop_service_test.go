package app

import (
	"context"
	"errors"
	"testing"

	"MedievalKingdoms/internal/kingdom/actors"
	kingdomdomain "MedievalKingdoms/internal/kingdom/domain"
	"MedievalKingdoms/internal/shared/gamedata/empire"
	"MedievalKingdoms/internal/shared/gamedata/resource"
	"MedievalKingdoms/internal/shared/gamedata/units"
	"MedievalKingdoms/internal/shop/app/port"
	"MedievalKingdoms/internal/shop/domain"
)

// fakeGateway 在调用方 goroutine 内直接对王国内存状态结算。
type fakeGateway struct {
	kingdom *kingdomdomain.Kingdom
	pending []*kingdomdomain.Construction
	rushed  int
}

func (f *fakeGateway) Ask(_ context.Context, cmd actors.Command) (any, error) {
	switch msg := cmd.(type) {
	case *actors.Get:
		return &actors.GetReply{Kingdom: f.kingdom.Snapshot()}, nil
	case *actors.ApplyDelta:
		if msg.RequireAfford {
			cost := resource.Basket{}
			for kind, v := range msg.Delta {
				if v < 0 {
					cost[kind] = -v
				}
			}
			if !f.kingdom.Resources.CanAfford(cost) {
				return &actors.ApplyDeltaReply{Err: kingdomdomain.ErrInsufficientResources}, nil
			}
		}
		for kind, v := range msg.Delta {
			f.kingdom.Resources[kind] += v
			if f.kingdom.Resources[kind] < 0 {
				f.kingdom.Resources[kind] = 0
			}
		}
		return &actors.ApplyDeltaReply{Resources: f.kingdom.Resources.Clone()}, nil
	case *actors.GrantArmy:
		for typ, v := range msg.Units {
			f.kingdom.Army[typ] += v
		}
		f.kingdom.RecomputePower()
		return &actors.GrantArmyReply{Kingdom: f.kingdom.Snapshot()}, nil
	case *actors.RushConstruction:
		if len(f.pending) == 0 {
			return &actors.RushConstructionReply{}, nil
		}
		item := f.pending[0]
		f.pending = f.pending[1:]
		f.rushed++
		f.kingdom.CompleteUpgrade(item.BuildingId, item.TargetLevel)
		return &actors.RushConstructionReply{Construction: item}, nil
	case *actors.ChangeEmpire:
		f.kingdom.Empire = msg.To
		return &actors.ChangeEmpireReply{Kingdom: f.kingdom.Snapshot()}, nil
	}
	return nil, errors.New("unexpected command")
}

type fakePurchaseStore struct {
	purchases []*domain.Purchase
	insertErr error
}

func (f *fakePurchaseStore) Insert(_ context.Context, p *domain.Purchase) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.purchases = append(f.purchases, p)
	return nil
}

func (f *fakePurchaseStore) ListByPlayer(_ context.Context, playerId int64, _ int64) ([]*domain.Purchase, error) {
	var out []*domain.Purchase
	for _, p := range f.purchases {
		if p.PlayerId == playerId {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeInventoryStore struct {
	items map[int64]map[string]int64
}

func newFakeInventoryStore() *fakeInventoryStore {
	return &fakeInventoryStore{items: make(map[int64]map[string]int64)}
}

func (f *fakeInventoryStore) Grant(_ context.Context, playerId int64, itemId string, qty int64) error {
	if f.items[playerId] == nil {
		f.items[playerId] = make(map[string]int64)
	}
	f.items[playerId][itemId] += qty
	return nil
}

func (f *fakeInventoryStore) Consume(_ context.Context, playerId int64, itemId string, qty int64) error {
	if f.items[playerId] == nil || f.items[playerId][itemId] < qty {
		return port.ErrInsufficientItems
	}
	f.items[playerId][itemId] -= qty
	return nil
}

func (f *fakeInventoryStore) Get(_ context.Context, playerId int64) (map[string]int64, error) {
	if f.items[playerId] == nil {
		return map[string]int64{}, nil
	}
	return f.items[playerId], nil
}

func newShopFixture() (*ShopService, *fakeGateway, *fakePurchaseStore, *fakeInventoryStore) {
	k := kingdomdomain.NewKingdom(1, "ragnar", empire.Viking)
	k.Resources = resource.Basket{resource.Gold: 10000, resource.Wood: 2000, resource.Stone: 2000, resource.Food: 2000}

	gw := &fakeGateway{kingdom: k}
	purchases := &fakePurchaseStore{}
	inventory := newFakeInventoryStore()
	return NewShopService(gw, purchases, inventory, nil), gw, purchases, inventory
}

func TestShopService_货架(t *testing.T) {
	svc, _, _, _ := newShopFixture()

	items := svc.Items()
	if len(items) != 4 {
		t.Fatalf("期望 4 件道具, got=%d", len(items))
	}
	byId := make(map[string]*ItemView, len(items))
	for _, item := range items {
		byId[item.Id] = item
	}
	if byId["resource_pack"].Price["gold"] != 2000 {
		t.Fatalf("资源包价格非法: %+v", byId["resource_pack"])
	}
	if byId["army_boost"].Price["food"] != 500 {
		t.Fatalf("军队加速价格非法: %+v", byId["army_boost"])
	}
}

func TestShopService_购买资源包(t *testing.T) {
	svc, gw, purchases, _ := newShopFixture()

	view, err := svc.Purchase(context.Background(), 1, "resource_pack", 2)
	if err != nil {
		t.Fatalf("购买失败: %v", err)
	}
	if view.Quantity != 2 || view.TotalCost["gold"] != 4000 {
		t.Fatalf("购买视图非法: %+v", view)
	}
	// 扣款 4000 gold，发放 2×500 每种资源
	if got := gw.kingdom.Resources.Get(resource.Gold); got != 10000-4000+1000 {
		t.Fatalf("gold 结算非法: %d", got)
	}
	if got := gw.kingdom.Resources.Get(resource.Wood); got != 2000+1000 {
		t.Fatalf("wood 结算非法: %d", got)
	}
	if len(purchases.purchases) != 1 {
		t.Fatalf("期望 1 条购买流水, got=%d", len(purchases.purchases))
	}
}

func TestShopService_购买军队加速(t *testing.T) {
	svc, gw, _, _ := newShopFixture()

	if _, err := svc.Purchase(context.Background(), 1, "army_boost", 1); err != nil {
		t.Fatalf("购买失败: %v", err)
	}
	army := gw.kingdom.Army
	if army[units.Soldiers] != 25+50 || army[units.Archers] != 25 || army[units.Cavalry] != 10 {
		t.Fatalf("兵力发放非法: %v", army)
	}
	if got := gw.kingdom.Resources.Get(resource.Gold); got != 10000-1500 {
		t.Fatalf("gold 扣款非法: %d", got)
	}
	if got := gw.kingdom.Resources.Get(resource.Food); got != 2000-500 {
		t.Fatalf("food 扣款非法: %d", got)
	}
}

func TestShopService_购买建造加速(t *testing.T) {
	svc, gw, _, _ := newShopFixture()

	b := gw.kingdom.BuildingByType("farm")
	targetLevel, buildTime, err := gw.kingdom.BeginUpgrade(b.Id)
	if err != nil {
		t.Fatalf("发起升级失败: %v", err)
	}
	gw.pending = append(gw.pending, kingdomdomain.NewConstruction(1, b, targetLevel, buildTime))

	if _, err := svc.Purchase(context.Background(), 1, "construction_boost", 1); err != nil {
		t.Fatalf("购买失败: %v", err)
	}
	if gw.rushed != 1 {
		t.Fatalf("期望加速 1 条建造, got=%d", gw.rushed)
	}
	if b.Level != targetLevel || b.Constructing {
		t.Fatalf("建筑应立即完工: level=%d constructing=%v", b.Level, b.Constructing)
	}
}

func TestShopService_建造加速_无在途建造退款(t *testing.T) {
	svc, gw, purchases, _ := newShopFixture()

	goldBefore := gw.kingdom.Resources.Get(resource.Gold)
	_, err := svc.Purchase(context.Background(), 1, "construction_boost", 1)
	if !errors.Is(err, ErrNothingConstructing) {
		t.Fatalf("期望 ErrNothingConstructing, got=%v", err)
	}
	if got := gw.kingdom.Resources.Get(resource.Gold); got != goldBefore {
		t.Fatalf("无效购买应退款: before=%d after=%d", goldBefore, got)
	}
	if len(purchases.purchases) != 0 {
		t.Fatalf("失败购买不应留流水")
	}
}

func TestShopService_购买换阵营凭证并换阵营(t *testing.T) {
	svc, gw, _, inventory := newShopFixture()

	if _, err := svc.Purchase(context.Background(), 1, "race_change_scroll", 1); err != nil {
		t.Fatalf("购买失败: %v", err)
	}
	if inventory.items[1][domain.EmpireChangeItemId] != 1 {
		t.Fatalf("凭证未入库: %v", inventory.items)
	}

	got, err := svc.ChangeEmpire(context.Background(), 1, "saxon")
	if err != nil {
		t.Fatalf("换阵营失败: %v", err)
	}
	if got != "saxon" || gw.kingdom.Empire != empire.Saxon {
		t.Fatalf("阵营未更换: %v", gw.kingdom.Empire)
	}
	if inventory.items[1][domain.EmpireChangeItemId] != 0 {
		t.Fatalf("凭证应被消耗: %v", inventory.items)
	}

	// 凭证用尽后再次换阵营被拒
	if _, err := svc.ChangeEmpire(context.Background(), 1, "norman"); !errors.Is(err, ErrNoToken) {
		t.Fatalf("期望 ErrNoToken, got=%v", err)
	}
}

func TestShopService_换阵营_目标非法(t *testing.T) {
	svc, _, _, inventory := newShopFixture()
	_ = inventory.Grant(context.Background(), 1, domain.EmpireChangeItemId, 1)

	if _, err := svc.ChangeEmpire(context.Background(), 1, "atlantean"); !errors.Is(err, ErrInvalidEmpire) {
		t.Fatalf("期望 ErrInvalidEmpire, got=%v", err)
	}
	if inventory.items[1][domain.EmpireChangeItemId] != 1 {
		t.Fatalf("非法目标不应消耗凭证")
	}
}

func TestShopService_余额不足整体拒绝(t *testing.T) {
	svc, gw, _, _ := newShopFixture()
	gw.kingdom.Resources = resource.Basket{resource.Gold: 100}

	if _, err := svc.Purchase(context.Background(), 1, "resource_pack", 1); !errors.Is(err, ErrInsufficientGold) {
		t.Fatalf("期望 ErrInsufficientGold, got=%v", err)
	}
	if got := gw.kingdom.Resources.Get(resource.Gold); got != 100 {
		t.Fatalf("失败购买不应扣款: %d", got)
	}
}

func TestShopService_道具校验(t *testing.T) {
	svc, _, _, _ := newShopFixture()

	if _, err := svc.Purchase(context.Background(), 1, "excalibur", 1); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("期望 ErrItemNotFound, got=%v", err)
	}
	if _, err := svc.Purchase(context.Background(), 1, "resource_pack", -1); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("期望 ErrInvalidQuantity, got=%v", err)
	}
}

func TestShopService_购买流水查询(t *testing.T) {
	svc, _, _, _ := newShopFixture()

	if _, err := svc.Purchase(context.Background(), 1, "resource_pack", 1); err != nil {
		t.Fatalf("购买失败: %v", err)
	}
	if _, err := svc.Purchase(context.Background(), 1, "army_boost", 1); err != nil {
		t.Fatalf("购买失败: %v", err)
	}

	views, err := svc.Purchases(context.Background(), 1, 50)
	if err != nil || len(views) != 2 {
		t.Fatalf("期望 2 条流水, got=%d err=%v", len(views), err)
	}
}
