package ticker

import (
	"context"
	"errors"
	"testing"
	"time"

	allianceport "MedievalKingdoms/internal/alliance/app/port"
	chatport "MedievalKingdoms/internal/chat/app/port"
	combatapp "MedievalKingdoms/internal/combat/app"
	"MedievalKingdoms/internal/kingdom/actors"
	kingdomport "MedievalKingdoms/internal/kingdom/app/port"
	"MedievalKingdoms/internal/kingdom/domain"
	marketport "MedievalKingdoms/internal/market/app/port"
)

type fakeGateway struct {
	tells     []actors.Command
	asks      []actors.Command
	settleErr error
}

func (f *fakeGateway) Tell(cmd actors.Command) {
	f.tells = append(f.tells, cmd)
}

func (f *fakeGateway) Ask(_ context.Context, cmd actors.Command) (any, error) {
	f.asks = append(f.asks, cmd)
	switch cmd.(type) {
	case *actors.CompleteConstruction:
		return &actors.CompleteConstructionReply{Err: f.settleErr}, nil
	}
	return nil, errors.New("unexpected command")
}

type fakeKingdoms struct {
	kingdomport.KingdomRepository
	activeIds    []int64
	allIds       []int64
	activeCutoff time.Time
	listErr      error
}

func (f *fakeKingdoms) ListActiveIds(_ context.Context, cutoff time.Time) ([]int64, error) {
	f.activeCutoff = cutoff
	return f.activeIds, f.listErr
}

func (f *fakeKingdoms) ListAllIds(_ context.Context) ([]int64, error) {
	return f.allIds, nil
}

type fakeQueue struct {
	kingdomport.ConstructionRepository
	due       []*domain.Construction
	completed map[string]bool
	purged    time.Time
}

func (f *fakeQueue) ListDue(_ context.Context, _ time.Time, _ int64) ([]*domain.Construction, error) {
	return f.due, nil
}

func (f *fakeQueue) MarkCompleted(_ context.Context, id string) (bool, error) {
	if f.completed[id] {
		return false, nil
	}
	if f.completed == nil {
		f.completed = map[string]bool{}
	}
	f.completed[id] = true
	return true, nil
}

func (f *fakeQueue) PurgeCompletedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.purged = cutoff
	return 2, nil
}

type fakeRaids struct {
	combatapp.RaidHistory
	purged time.Time
}

func (f *fakeRaids) PurgeBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.purged = cutoff
	return 1, nil
}

type fakeOffers struct {
	marketport.OfferStore
	purged time.Time
}

func (f *fakeOffers) PurgeExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.purged = cutoff
	return 0, nil
}

type fakeInvites struct {
	allianceport.InviteStore
	purged time.Time
}

func (f *fakeInvites) PurgeExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.purged = cutoff
	return 0, nil
}

type fakeMessages struct {
	chatport.MessageStore
	trimmedTo     int64
	privatePurged time.Time
}

func (f *fakeMessages) TrimGlobal(_ context.Context, cap int64) (int64, error) {
	f.trimmedTo = cap
	return 3, nil
}

func (f *fakeMessages) PurgePrivateBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.privatePurged = cutoff
	return 0, nil
}

type push struct {
	uid  int64
	name string
	data any
}

type fakeNotifier struct {
	pushes []push
}

func (f *fakeNotifier) PushTo(uid int64, name string, data any) {
	f.pushes = append(f.pushes, push{uid: uid, name: name, data: data})
}

type fixture struct {
	gw       *fakeGateway
	kingdoms *fakeKingdoms
	queue    *fakeQueue
	raids    *fakeRaids
	offers   *fakeOffers
	invites  *fakeInvites
	messages *fakeMessages
	notifier *fakeNotifier
	sched    *Scheduler
}

func newFixture(cfg Config) *fixture {
	f := &fixture{
		gw:       &fakeGateway{},
		kingdoms: &fakeKingdoms{},
		queue:    &fakeQueue{},
		raids:    &fakeRaids{},
		offers:   &fakeOffers{},
		invites:  &fakeInvites{},
		messages: &fakeMessages{},
		notifier: &fakeNotifier{},
	}
	f.sched = NewScheduler(cfg, f.gw, f.kingdoms, f.queue, f.raids, f.offers, f.invites, f.messages, f.notifier, nil)
	return f
}

func TestScheduler_资源累计只触发活跃玩家(t *testing.T) {
	f := newFixture(Config{ActiveWindow: 24 * time.Hour})
	f.kingdoms.activeIds = []int64{1, 2, 3}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	f.sched.accrueOnce(context.Background(), now)

	if got := f.kingdoms.activeCutoff; !got.Equal(now.Add(-24 * time.Hour)) {
		t.Fatalf("活跃窗口截止时间错误: %v", got)
	}
	if len(f.gw.tells) != 3 {
		t.Fatalf("期望 3 条累计指令，实际 %d", len(f.gw.tells))
	}
	for i, want := range []int64{1, 2, 3} {
		tick, ok := f.gw.tells[i].(*actors.AccrueTick)
		if !ok || tick.Player != want {
			t.Fatalf("第 %d 条指令错误: %#v", i, f.gw.tells[i])
		}
	}
}

func TestScheduler_资源累计_查询失败上报错误(t *testing.T) {
	f := newFixture(Config{})
	f.kingdoms.listErr = errors.New("mongo down")

	err := f.sched.accrueOnce(context.Background(), time.Now().UTC())

	if err == nil {
		t.Fatal("查询失败应返回错误触发退避")
	}
	if len(f.gw.tells) != 0 {
		t.Fatalf("查询失败不应下发指令，实际 %d 条", len(f.gw.tells))
	}
}

func TestScheduler_建造完工_结算并推送(t *testing.T) {
	f := newFixture(Config{})
	f.queue.due = []*domain.Construction{
		{Id: "c1", PlayerId: 7, BuildingId: "farm", TargetLevel: 3},
	}

	f.sched.sweepConstructionsOnce(context.Background(), time.Now().UTC())

	if len(f.gw.asks) != 1 {
		t.Fatalf("期望 1 次完工结算，实际 %d", len(f.gw.asks))
	}
	cmd := f.gw.asks[0].(*actors.CompleteConstruction)
	if cmd.Player != 7 || cmd.Item.Id != "c1" {
		t.Fatalf("结算指令错误: %#v", cmd)
	}
	if len(f.notifier.pushes) != 1 {
		t.Fatalf("期望 1 次推送，实际 %d", len(f.notifier.pushes))
	}
	p := f.notifier.pushes[0]
	if p.uid != 7 || p.name != "kingdom.constructionDone" {
		t.Fatalf("推送目标错误: %+v", p)
	}
}

func TestScheduler_建造完工_已被抢占则跳过(t *testing.T) {
	f := newFixture(Config{})
	f.queue.completed = map[string]bool{"c1": true}
	f.queue.due = []*domain.Construction{
		{Id: "c1", PlayerId: 7, BuildingId: "farm", TargetLevel: 3},
		{Id: "c2", PlayerId: 8, BuildingId: "barracks", TargetLevel: 2},
	}

	f.sched.sweepConstructionsOnce(context.Background(), time.Now().UTC())

	if len(f.gw.asks) != 1 {
		t.Fatalf("已置位的项不应重复结算，实际 %d 次", len(f.gw.asks))
	}
	if f.gw.asks[0].(*actors.CompleteConstruction).Player != 8 {
		t.Fatal("应只结算未置位的 c2")
	}
}

func TestScheduler_建造完工_落账失败不推送(t *testing.T) {
	f := newFixture(Config{})
	f.gw.settleErr = errors.New("persist failed")
	f.queue.due = []*domain.Construction{
		{Id: "c1", PlayerId: 7, BuildingId: "farm", TargetLevel: 3},
	}

	f.sched.sweepConstructionsOnce(context.Background(), time.Now().UTC())

	if len(f.notifier.pushes) != 0 {
		t.Fatalf("落账失败不应推送，实际 %d 次", len(f.notifier.pushes))
	}
}

func TestScheduler_战力重算_全量触发(t *testing.T) {
	f := newFixture(Config{})
	f.kingdoms.allIds = []int64{5, 6}

	f.sched.recomputePowerOnce(context.Background(), time.Now().UTC())

	if len(f.gw.tells) != 2 {
		t.Fatalf("期望 2 条重算指令，实际 %d", len(f.gw.tells))
	}
	if f.gw.tells[0].(*actors.RecomputePower).Player != 5 {
		t.Fatalf("重算指令错误: %#v", f.gw.tells[0])
	}
}

func TestScheduler_清理循环_各端口按留存期触发(t *testing.T) {
	f := newFixture(Config{
		ChatHistoryCap:   500,
		MessageRetention: 30 * 24 * time.Hour,
		RaidRetention:    30 * 24 * time.Hour,
		BuildRetention:   7 * 24 * time.Hour,
	})
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	f.sched.cleanupOnce(context.Background(), now)

	if !f.queue.purged.Equal(now.Add(-7 * 24 * time.Hour)) {
		t.Fatalf("建造记录清理截止时间错误: %v", f.queue.purged)
	}
	if !f.raids.purged.Equal(now.Add(-30 * 24 * time.Hour)) {
		t.Fatalf("战报清理截止时间错误: %v", f.raids.purged)
	}
	if !f.offers.purged.Equal(now) {
		t.Fatalf("过期挂单应以当前时间为界: %v", f.offers.purged)
	}
	if !f.invites.purged.Equal(now) {
		t.Fatalf("过期邀请应以当前时间为界: %v", f.invites.purged)
	}
	if f.messages.trimmedTo != 500 {
		t.Fatalf("世界频道裁剪上限错误: %d", f.messages.trimmedTo)
	}
	if !f.messages.privatePurged.Equal(now.Add(-30 * 24 * time.Hour)) {
		t.Fatalf("私信清理截止时间错误: %v", f.messages.privatePurged)
	}
}

func TestScheduler_配置零值走默认(t *testing.T) {
	cfg := Config{}.withDefaults()
	if cfg.AccrualInterval != 10*time.Second {
		t.Fatalf("累计周期默认值错误: %v", cfg.AccrualInterval)
	}
	if cfg.ConstructionInterval != 5*time.Second {
		t.Fatalf("建造周期默认值错误: %v", cfg.ConstructionInterval)
	}
	if cfg.PowerInterval != 30*time.Second {
		t.Fatalf("战力周期默认值错误: %v", cfg.PowerInterval)
	}
	if cfg.CleanupInterval != time.Hour {
		t.Fatalf("清理周期默认值错误: %v", cfg.CleanupInterval)
	}
	if cfg.ChatHistoryCap != 1000 {
		t.Fatalf("世界频道上限默认值错误: %d", cfg.ChatHistoryCap)
	}
}

func TestScheduler_Run_随上下文退出(t *testing.T) {
	f := newFixture(Config{
		AccrualInterval:      time.Hour,
		ConstructionInterval: time.Hour,
		PowerInterval:        time.Hour,
		CleanupInterval:      time.Hour,
	})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- f.sched.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("退出不应带错误: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("调度未随上下文退出")
	}
}
