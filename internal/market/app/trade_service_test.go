package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"MedievalKingdoms/internal/kingdom/actors"
	kingdomdomain "MedievalKingdoms/internal/kingdom/domain"
	"MedievalKingdoms/internal/market/app/port"
	marketdomain "MedievalKingdoms/internal/market/domain"
	"MedievalKingdoms/internal/shared/gamedata/empire"
	"MedievalKingdoms/internal/shared/gamedata/resource"
	"MedievalKingdoms/modules/kit/errx"
)

// fakeGateway 在调用方 goroutine 内直接对王国内存状态结算，绕过 actor system。
type fakeGateway struct {
	kingdoms map[int64]*kingdomdomain.Kingdom
	askErr   error
}

func (f *fakeGateway) Ask(_ context.Context, cmd actors.Command) (any, error) {
	if f.askErr != nil {
		return nil, f.askErr
	}
	k, ok := f.kingdoms[cmd.PlayerID()]
	switch msg := cmd.(type) {
	case *actors.Get:
		if !ok {
			return &actors.GetReply{Err: errors.New("kingdom not found")}, nil
		}
		return &actors.GetReply{Kingdom: k.Snapshot()}, nil
	case *actors.ApplyDelta:
		if !ok {
			return &actors.ApplyDeltaReply{Err: errors.New("kingdom not found")}, nil
		}
		if msg.RequireAfford {
			cost := resource.Basket{}
			for kind, v := range msg.Delta {
				if v < 0 {
					cost[kind] = -v
				}
			}
			if !k.Resources.CanAfford(cost) {
				return &actors.ApplyDeltaReply{Err: kingdomdomain.ErrInsufficientResources}, nil
			}
		}
		for kind, v := range msg.Delta {
			k.Resources[kind] += v
			if k.Resources[kind] < 0 {
				k.Resources[kind] = 0
			}
		}
		return &actors.ApplyDeltaReply{Resources: k.Resources.Clone()}, nil
	}
	return nil, errors.New("unexpected command")
}

// fakeOfferStore 以内存 map 模拟挂单集合，Claim 复刻条件更新语义。
type fakeOfferStore struct {
	offers       map[string]*marketdomain.TradeOffer
	insertErr    error
	claimErr     error
	releaseCalls int
}

func newFakeOfferStore() *fakeOfferStore {
	return &fakeOfferStore{offers: make(map[string]*marketdomain.TradeOffer)}
}

func (f *fakeOfferStore) Insert(_ context.Context, o *marketdomain.TradeOffer) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.offers[o.Id] = o
	return nil
}

func (f *fakeOfferStore) Get(_ context.Context, id string) (*marketdomain.TradeOffer, error) {
	o, ok := f.offers[id]
	if !ok {
		return nil, port.ErrOfferNotFound
	}
	return o, nil
}

func (f *fakeOfferStore) ListOpen(_ context.Context, excludeCreator int64, now time.Time, _ int64) ([]*marketdomain.TradeOffer, error) {
	var out []*marketdomain.TradeOffer
	for _, o := range f.offers {
		if o.Active && !o.Expired(now) && o.CreatorId != excludeCreator {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOfferStore) ListByCreator(_ context.Context, creatorId int64, _ int64) ([]*marketdomain.TradeOffer, error) {
	var out []*marketdomain.TradeOffer
	for _, o := range f.offers {
		if o.CreatorId == creatorId {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOfferStore) Claim(_ context.Context, id string, acceptorId int64, acceptorUsername string, now time.Time) error {
	if f.claimErr != nil {
		return f.claimErr
	}
	o, ok := f.offers[id]
	if !ok || !o.Active || o.Expired(now) {
		return port.ErrOfferNotFound
	}
	o.Active = false
	o.AcceptorId = acceptorId
	o.AcceptorUsername = acceptorUsername
	o.CompletedAt = now
	return nil
}

func (f *fakeOfferStore) Release(_ context.Context, id string) error {
	f.releaseCalls++
	o, ok := f.offers[id]
	if !ok {
		return port.ErrOfferNotFound
	}
	o.Active = true
	o.AcceptorId = 0
	o.AcceptorUsername = ""
	o.CompletedAt = time.Time{}
	return nil
}

func (f *fakeOfferStore) PurgeExpiredBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func newMarketFixture() (*TradeService, *fakeGateway, *fakeOfferStore) {
	creator := kingdomdomain.NewKingdom(1, "ragnar", empire.Viking)
	creator.Resources = resource.Basket{resource.Gold: 500, resource.Wood: 300, resource.Stone: 100, resource.Food: 200}
	acceptor := kingdomdomain.NewKingdom(2, "aelfred", empire.Saxon)
	acceptor.Resources = resource.Basket{resource.Gold: 400, resource.Wood: 50, resource.Stone: 80, resource.Food: 150}

	gw := &fakeGateway{kingdoms: map[int64]*kingdomdomain.Kingdom{1: creator, 2: acceptor}}
	store := newFakeOfferStore()
	return NewTradeService(gw, store, time.Hour, nil), gw, store
}

func reasonOf(t *testing.T, err error) string {
	t.Helper()
	var e *errx.Error
	if !errors.As(err, &e) {
		t.Fatalf("期望 *errx.Error, got=%T", err)
	}
	return e.Reason()
}

func TestTradeService_创建挂单成功(t *testing.T) {
	svc, _, store := newMarketFixture()

	view, err := svc.CreateOffer(context.Background(), 1,
		map[string]int64{"wood": 100}, map[string]int64{"gold": 50}, 0)
	if err != nil {
		t.Fatalf("创建挂单失败: %v", err)
	}
	if !view.Active || view.CreatorUsername != "ragnar" {
		t.Fatalf("挂单视图非法: %+v", view)
	}
	if view.Offering["wood"] != 100 || view.Requesting["gold"] != 50 {
		t.Fatalf("挂单资源篮子非法: %+v", view)
	}
	if len(store.offers) != 1 {
		t.Fatalf("期望写入 1 条挂单, got=%d", len(store.offers))
	}
	// 创建时只校验余额，不托管资源
	creatorWood := mustKingdom(t, svc, 1).Resources.Get(resource.Wood)
	if creatorWood != 300 {
		t.Fatalf("创建挂单不应扣资源, wood=%d", creatorWood)
	}
}

func TestTradeService_创建挂单_出售资源不足(t *testing.T) {
	svc, _, store := newMarketFixture()

	_, err := svc.CreateOffer(context.Background(), 1,
		map[string]int64{"wood": 9999}, map[string]int64{"gold": 50}, 0)
	if !errors.Is(err, ErrInsufficientSell) {
		t.Fatalf("期望 ErrInsufficientSell, got=%v", err)
	}
	if got := reasonOf(t, err); got != ReasonInsufficientSell.Code {
		t.Fatalf("reason 非法: %v", got)
	}
	if len(store.offers) != 0 {
		t.Fatalf("失败路径不应写入挂单")
	}
}

func TestTradeService_创建挂单_篮子非法(t *testing.T) {
	svc, _, _ := newMarketFixture()

	cases := []struct {
		name       string
		offering   map[string]int64
		requesting map[string]int64
	}{
		{"空出售篮子", nil, map[string]int64{"gold": 50}},
		{"非法资源种类", map[string]int64{"mithril": 10}, map[string]int64{"gold": 50}},
		{"数量非正", map[string]int64{"wood": 0}, map[string]int64{"gold": 50}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateOffer(context.Background(), 1, tc.offering, tc.requesting, 0)
			if !errors.Is(err, ErrInvalidOffer) {
				t.Fatalf("期望 ErrInvalidOffer, got=%v", err)
			}
		})
	}
}

func TestTradeService_接受挂单_双方即时结算(t *testing.T) {
	svc, gw, _ := newMarketFixture()

	created, err := svc.CreateOffer(context.Background(), 1,
		map[string]int64{"wood": 100}, map[string]int64{"gold": 50}, 0)
	if err != nil {
		t.Fatalf("创建挂单失败: %v", err)
	}

	view, err := svc.AcceptOffer(context.Background(), 2, created.Id)
	if err != nil {
		t.Fatalf("接受挂单失败: %v", err)
	}
	if view.Active || view.AcceptorId != 2 || view.AcceptorUsername != "aelfred" {
		t.Fatalf("成交视图非法: %+v", view)
	}
	if view.CompletedAt == "" {
		t.Fatalf("成交时间缺失")
	}

	// 接受方: -50 gold +100 wood
	acceptor := gw.kingdoms[2]
	if acceptor.Resources.Get(resource.Gold) != 350 || acceptor.Resources.Get(resource.Wood) != 150 {
		t.Fatalf("接受方结算非法: %v", acceptor.Resources)
	}
	// 创建方: +50 gold -100 wood
	creator := gw.kingdoms[1]
	if creator.Resources.Get(resource.Gold) != 550 || creator.Resources.Get(resource.Wood) != 200 {
		t.Fatalf("创建方结算非法: %v", creator.Resources)
	}
}

func TestTradeService_接受自己的挂单被拒(t *testing.T) {
	svc, _, _ := newMarketFixture()

	created, err := svc.CreateOffer(context.Background(), 1,
		map[string]int64{"wood": 100}, map[string]int64{"gold": 50}, 0)
	if err != nil {
		t.Fatalf("创建挂单失败: %v", err)
	}
	if _, err := svc.AcceptOffer(context.Background(), 1, created.Id); !errors.Is(err, ErrOwnOffer) {
		t.Fatalf("期望 ErrOwnOffer, got=%v", err)
	}
}

func TestTradeService_挂单已被抢占或过期(t *testing.T) {
	svc, gw, store := newMarketFixture()

	created, err := svc.CreateOffer(context.Background(), 1,
		map[string]int64{"wood": 100}, map[string]int64{"gold": 50}, 0)
	if err != nil {
		t.Fatalf("创建挂单失败: %v", err)
	}
	// 并发下另一玩家已抢先成交
	store.offers[created.Id].Active = false

	if _, err := svc.AcceptOffer(context.Background(), 2, created.Id); !errors.Is(err, ErrOfferNotFound) {
		t.Fatalf("期望 ErrOfferNotFound, got=%v", err)
	}
	if gw.kingdoms[2].Resources.Get(resource.Gold) != 400 {
		t.Fatalf("抢占失败不应结算接受方")
	}
	if gw.kingdoms[1].Resources.Get(resource.Wood) != 300 {
		t.Fatalf("抢占失败不应结算创建方")
	}
}

func TestTradeService_接受过期挂单_返回过期错误(t *testing.T) {
	svc, gw, store := newMarketFixture()

	created, err := svc.CreateOffer(context.Background(), 1,
		map[string]int64{"wood": 100}, map[string]int64{"gold": 50}, 0)
	if err != nil {
		t.Fatalf("创建挂单失败: %v", err)
	}
	// 过期但尚未被清理循环收走
	store.offers[created.Id].ExpiresAt = time.Now().UTC().Add(-time.Minute)

	_, err = svc.AcceptOffer(context.Background(), 2, created.Id)
	if !errors.Is(err, ErrOfferExpired) {
		t.Fatalf("期望 ErrOfferExpired, got=%v", err)
	}
	if got := reasonOf(t, err); got != ReasonOfferExpired.Code {
		t.Fatalf("reason 非法: %v", got)
	}
	if gw.kingdoms[2].Resources.Get(resource.Gold) != 400 {
		t.Fatalf("过期挂单不应结算接受方")
	}
	if !store.offers[created.Id].Active {
		t.Fatalf("过期挂单不应被抢占")
	}
}

func TestTradeService_接受方余额不足_回滚抢占(t *testing.T) {
	svc, gw, store := newMarketFixture()

	// requesting 超出接受方持有的 gold(400)
	created, err := svc.CreateOffer(context.Background(), 1,
		map[string]int64{"wood": 100}, map[string]int64{"gold": 450}, 0)
	if err != nil {
		t.Fatalf("创建挂单失败: %v", err)
	}

	_, err = svc.AcceptOffer(context.Background(), 2, created.Id)
	if !errors.Is(err, ErrInsufficientPay) {
		t.Fatalf("期望 ErrInsufficientPay, got=%v", err)
	}
	if store.releaseCalls != 1 {
		t.Fatalf("期望回滚抢占 1 次, got=%d", store.releaseCalls)
	}
	if !store.offers[created.Id].Active {
		t.Fatalf("回滚后挂单应重新可见")
	}
	if gw.kingdoms[2].Resources.Get(resource.Gold) != 400 || gw.kingdoms[2].Resources.Get(resource.Wood) != 50 {
		t.Fatalf("余额不足不应结算接受方: %v", gw.kingdoms[2].Resources)
	}
}

func TestTradeService_创建方余额不足_扣减到0(t *testing.T) {
	svc, gw, _ := newMarketFixture()

	created, err := svc.CreateOffer(context.Background(), 1,
		map[string]int64{"wood": 100}, map[string]int64{"gold": 50}, 0)
	if err != nil {
		t.Fatalf("创建挂单失败: %v", err)
	}
	// 挂单后创建方又花掉了大部分 wood
	gw.kingdoms[1].Resources[resource.Wood] = 30

	view, err := svc.AcceptOffer(context.Background(), 2, created.Id)
	if err != nil {
		t.Fatalf("接受挂单失败: %v", err)
	}
	if view.Active {
		t.Fatalf("成交后挂单不应仍然可见")
	}
	// 接受方照常拿满 offering
	if gw.kingdoms[2].Resources.Get(resource.Wood) != 150 {
		t.Fatalf("接受方应拿满 offering: %v", gw.kingdoms[2].Resources)
	}
	// 创建方 wood 扣到 0，gold 照常入账
	creator := gw.kingdoms[1]
	if creator.Resources.Get(resource.Wood) != 0 || creator.Resources.Get(resource.Gold) != 550 {
		t.Fatalf("创建方结算非法: %v", creator.Resources)
	}
}

func TestTradeService_挂单列表过滤(t *testing.T) {
	svc, _, _ := newMarketFixture()

	if _, err := svc.CreateOffer(context.Background(), 1,
		map[string]int64{"wood": 100}, map[string]int64{"gold": 50}, 0); err != nil {
		t.Fatalf("创建挂单失败: %v", err)
	}

	open, err := svc.OpenOffers(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("查询可接受挂单失败: %v", err)
	}
	if len(open) != 0 {
		t.Fatalf("不应看到自己的挂单, got=%d", len(open))
	}

	open, err = svc.OpenOffers(context.Background(), 2, 20)
	if err != nil {
		t.Fatalf("查询可接受挂单失败: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("期望可见 1 条挂单, got=%d", len(open))
	}

	mine, err := svc.MyOffers(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("查询我的挂单失败: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("期望 1 条我的挂单, got=%d", len(mine))
	}
}

func mustKingdom(t *testing.T, svc *TradeService, playerId int64) *kingdomdomain.Kingdom {
	t.Helper()
	k, err := svc.snapshot(context.Background(), playerId)
	if err != nil {
		t.Fatalf("读取王国快照失败: %v", err)
	}
	return k
}
