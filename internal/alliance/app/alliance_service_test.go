package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"MedievalKingdoms/internal/alliance/app/port"
	"MedievalKingdoms/internal/alliance/domain"
	"MedievalKingdoms/internal/kingdom/actors"
	kingdomport "MedievalKingdoms/internal/kingdom/app/port"
	kingdomdomain "MedievalKingdoms/internal/kingdom/domain"
	"MedievalKingdoms/internal/shared/gamedata/empire"
)

// fakeGateway 记录联盟镜像同步指令。
type fakeGateway struct {
	mirrors map[int64]string
}

func (f *fakeGateway) Ask(_ context.Context, cmd actors.Command) (any, error) {
	if msg, ok := cmd.(*actors.SetAlliance); ok {
		if f.mirrors == nil {
			f.mirrors = make(map[int64]string)
		}
		f.mirrors[msg.Player] = msg.AllianceId
		return &actors.SetAllianceReply{}, nil
	}
	return nil, errors.New("unexpected command")
}

// fakeAllianceStore 内存联盟集合，AddMember 复刻条件更新语义。
type fakeAllianceStore struct {
	alliances map[string]*domain.Alliance
	deleted   []string
}

func newFakeAllianceStore() *fakeAllianceStore {
	return &fakeAllianceStore{alliances: make(map[string]*domain.Alliance)}
}

func (f *fakeAllianceStore) Insert(_ context.Context, a *domain.Alliance) error {
	f.alliances[a.Id] = a
	return nil
}

func (f *fakeAllianceStore) Get(_ context.Context, id string) (*domain.Alliance, error) {
	a, ok := f.alliances[id]
	if !ok {
		return nil, port.ErrAllianceNotFound
	}
	return a, nil
}

func (f *fakeAllianceStore) FindByName(_ context.Context, name string) (*domain.Alliance, error) {
	for _, a := range f.alliances {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, port.ErrAllianceNotFound
}

func (f *fakeAllianceStore) FindByMember(_ context.Context, username string) (*domain.Alliance, error) {
	for _, a := range f.alliances {
		if a.HasMember(username) {
			return a, nil
		}
	}
	return nil, port.ErrAllianceNotFound
}

func (f *fakeAllianceStore) FindByLeader(_ context.Context, leaderUsername string) (*domain.Alliance, error) {
	for _, a := range f.alliances {
		if a.LeaderUsername == leaderUsername {
			return a, nil
		}
	}
	return nil, port.ErrAllianceNotFound
}

func (f *fakeAllianceStore) List(_ context.Context, _ int64) ([]*domain.Alliance, error) {
	out := make([]*domain.Alliance, 0, len(f.alliances))
	for _, a := range f.alliances {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAllianceStore) AddMember(_ context.Context, id string, username string) error {
	a, ok := f.alliances[id]
	if !ok {
		return port.ErrAllianceNotFound
	}
	if a.HasMember(username) || a.Full() {
		return port.ErrJoinConflict
	}
	a.Members = append(a.Members, username)
	return nil
}

func (f *fakeAllianceStore) RemoveMember(_ context.Context, id string, username string) error {
	a, ok := f.alliances[id]
	if !ok {
		return port.ErrAllianceNotFound
	}
	_, _, err := a.RemoveMember(username, 0)
	return err
}

func (f *fakeAllianceStore) TransferLeader(_ context.Context, id string, leaderId int64, leaderUsername string, removeMember string) error {
	a, ok := f.alliances[id]
	if !ok {
		return port.ErrAllianceNotFound
	}
	a.LeaderId = leaderId
	a.LeaderUsername = leaderUsername
	remaining := make([]string, 0, len(a.Members))
	for _, m := range a.Members {
		if m != removeMember {
			remaining = append(remaining, m)
		}
	}
	a.Members = remaining
	return nil
}

func (f *fakeAllianceStore) Delete(_ context.Context, id string) error {
	delete(f.alliances, id)
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeInviteStore 内存邀请集合。
type fakeInviteStore struct {
	invites map[string]*domain.Invite
}

func newFakeInviteStore() *fakeInviteStore {
	return &fakeInviteStore{invites: make(map[string]*domain.Invite)}
}

func (f *fakeInviteStore) Insert(_ context.Context, inv *domain.Invite) error {
	f.invites[inv.Id] = inv
	return nil
}

func (f *fakeInviteStore) ListPendingFor(_ context.Context, username string, now time.Time) ([]*domain.Invite, error) {
	var out []*domain.Invite
	for _, inv := range f.invites {
		if inv.ToUsername == username && inv.Pending(now) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInviteStore) GetPendingFor(_ context.Context, id string, username string, now time.Time) (*domain.Invite, error) {
	inv, ok := f.invites[id]
	if !ok || inv.ToUsername != username || !inv.Pending(now) {
		return nil, port.ErrInviteNotFound
	}
	return inv, nil
}

func (f *fakeInviteStore) MarkAccepted(_ context.Context, id string, now time.Time) error {
	inv, ok := f.invites[id]
	if !ok || inv.Status != domain.InviteStatusPending {
		return port.ErrInviteNotFound
	}
	inv.Status = domain.InviteStatusAccepted
	inv.AcceptedAt = now
	return nil
}

func (f *fakeInviteStore) PurgeExpiredBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

// fakeKingdoms 只实现用户名查询，其余方法不会被触达。
type fakeKingdoms struct {
	kingdomport.KingdomRepository
	byName map[string]*kingdomdomain.Kingdom
}

func (f *fakeKingdoms) FindByUsername(_ context.Context, username string) (*kingdomdomain.Kingdom, error) {
	k, ok := f.byName[username]
	if !ok {
		return nil, kingdomport.ErrKingdomNotFound
	}
	return k, nil
}

func newAllianceFixture() (*AllianceService, *fakeGateway, *fakeAllianceStore, *fakeInviteStore, *fakeKingdoms) {
	gw := &fakeGateway{}
	alliances := newFakeAllianceStore()
	invites := newFakeInviteStore()
	kingdoms := &fakeKingdoms{byName: map[string]*kingdomdomain.Kingdom{
		"ragnar":  kingdomdomain.NewKingdom(1, "ragnar", empire.Viking),
		"aelfred": kingdomdomain.NewKingdom(2, "aelfred", empire.Saxon),
		"brennus": kingdomdomain.NewKingdom(3, "brennus", empire.Celtic),
	}}
	svc := NewAllianceService(gw, alliances, invites, kingdoms, nil)
	return svc, gw, alliances, invites, kingdoms
}

func TestAllianceService_创建联盟成功(t *testing.T) {
	svc, gw, alliances, _, _ := newAllianceFixture()

	view, err := svc.Create(context.Background(), 1, "ragnar", "Great Heathen Army", "raiders")
	if err != nil {
		t.Fatalf("创建联盟失败: %v", err)
	}
	if view.LeaderUsername != "ragnar" || view.MemberCount != 1 || view.MaxMembers != 20 {
		t.Fatalf("联盟视图非法: %+v", view)
	}
	if len(alliances.alliances) != 1 {
		t.Fatalf("期望写入 1 条联盟, got=%d", len(alliances.alliances))
	}
	if gw.mirrors[1] != view.Id {
		t.Fatalf("王国档案镜像未同步: %v", gw.mirrors)
	}
}

func TestAllianceService_创建联盟_名称校验(t *testing.T) {
	svc, _, _, _, _ := newAllianceFixture()

	if _, err := svc.Create(context.Background(), 1, "ragnar", "ab", ""); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("期望 ErrInvalidName, got=%v", err)
	}
	if _, err := svc.Create(context.Background(), 1, "ragnar", "  x ", ""); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("空白修剪后仍应校验长度, got=%v", err)
	}
}

func TestAllianceService_创建联盟_重名与重复加入(t *testing.T) {
	svc, _, _, _, _ := newAllianceFixture()

	if _, err := svc.Create(context.Background(), 1, "ragnar", "Great Heathen Army", ""); err != nil {
		t.Fatalf("创建联盟失败: %v", err)
	}
	if _, err := svc.Create(context.Background(), 2, "aelfred", "Great Heathen Army", ""); !errors.Is(err, ErrNameExist) {
		t.Fatalf("期望 ErrNameExist, got=%v", err)
	}
	if _, err := svc.Create(context.Background(), 1, "ragnar", "Another Band", ""); !errors.Is(err, ErrAlreadyJoined) {
		t.Fatalf("期望 ErrAlreadyJoined, got=%v", err)
	}
}

func TestAllianceService_邀请与接受(t *testing.T) {
	svc, gw, alliances, invites, _ := newAllianceFixture()

	created, err := svc.Create(context.Background(), 1, "ragnar", "Great Heathen Army", "")
	if err != nil {
		t.Fatalf("创建联盟失败: %v", err)
	}

	inv, err := svc.Invite(context.Background(), "ragnar", "aelfred")
	if err != nil {
		t.Fatalf("发出邀请失败: %v", err)
	}
	if inv.AllianceId != created.Id || inv.FromUsername != "ragnar" {
		t.Fatalf("邀请视图非法: %+v", inv)
	}

	pending, err := svc.Invites(context.Background(), "aelfred")
	if err != nil || len(pending) != 1 {
		t.Fatalf("期望 1 条待处理邀请, got=%d err=%v", len(pending), err)
	}

	joined, err := svc.AcceptInvite(context.Background(), 2, "aelfred", inv.Id)
	if err != nil {
		t.Fatalf("接受邀请失败: %v", err)
	}
	if joined.MemberCount != 2 {
		t.Fatalf("期望 2 名成员, got=%d", joined.MemberCount)
	}
	if invites.invites[inv.Id].Status != domain.InviteStatusAccepted {
		t.Fatalf("邀请应标记为已接受")
	}
	if gw.mirrors[2] != created.Id {
		t.Fatalf("入盟后镜像未同步: %v", gw.mirrors)
	}
	if !alliances.alliances[created.Id].HasMember("aelfred") {
		t.Fatalf("成员未写入联盟")
	}
}

func TestAllianceService_邀请_非盟主被拒(t *testing.T) {
	svc, _, _, _, _ := newAllianceFixture()

	if _, err := svc.Invite(context.Background(), "aelfred", "brennus"); !errors.Is(err, ErrNotLeader) {
		t.Fatalf("期望 ErrNotLeader, got=%v", err)
	}
}

func TestAllianceService_邀请_目标校验(t *testing.T) {
	svc, _, _, _, _ := newAllianceFixture()

	if _, err := svc.Create(context.Background(), 1, "ragnar", "Great Heathen Army", ""); err != nil {
		t.Fatalf("创建联盟失败: %v", err)
	}
	if _, err := svc.Invite(context.Background(), "ragnar", "nobody"); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("期望 ErrPlayerNotFound, got=%v", err)
	}

	if _, err := svc.Create(context.Background(), 2, "aelfred", "Wessex Guard", ""); err != nil {
		t.Fatalf("创建联盟失败: %v", err)
	}
	if _, err := svc.Invite(context.Background(), "ragnar", "aelfred"); !errors.Is(err, ErrAlreadyJoined) {
		t.Fatalf("期望 ErrAlreadyJoined, got=%v", err)
	}
}

func TestAllianceService_接受邀请_过期或已处理(t *testing.T) {
	svc, _, _, invites, _ := newAllianceFixture()

	created, err := svc.Create(context.Background(), 1, "ragnar", "Great Heathen Army", "")
	if err != nil {
		t.Fatalf("创建联盟失败: %v", err)
	}
	inv, err := svc.Invite(context.Background(), "ragnar", "aelfred")
	if err != nil {
		t.Fatalf("发出邀请失败: %v", err)
	}
	invites.invites[inv.Id].ExpiresAt = time.Now().UTC().Add(-time.Minute)

	if _, err := svc.AcceptInvite(context.Background(), 2, "aelfred", inv.Id); !errors.Is(err, ErrInviteNotFound) {
		t.Fatalf("期望 ErrInviteNotFound, got=%v", err)
	}
	_ = created
}

func TestAllianceService_接受邀请_满员竞争(t *testing.T) {
	svc, _, alliances, invites, _ := newAllianceFixture()

	created, err := svc.Create(context.Background(), 1, "ragnar", "Great Heathen Army", "")
	if err != nil {
		t.Fatalf("创建联盟失败: %v", err)
	}
	inv, err := svc.Invite(context.Background(), "ragnar", "aelfred")
	if err != nil {
		t.Fatalf("发出邀请失败: %v", err)
	}
	// 邀请发出后联盟被填满
	a := alliances.alliances[created.Id]
	for i := len(a.Members); i < a.MaxMembers; i++ {
		a.Members = append(a.Members, fmt.Sprintf("warrior-%02d", i))
	}

	if _, err := svc.AcceptInvite(context.Background(), 2, "aelfred", inv.Id); !errors.Is(err, ErrAllianceFull) {
		t.Fatalf("期望 ErrAllianceFull, got=%v", err)
	}
	if invites.invites[inv.Id].Status != domain.InviteStatusPending {
		t.Fatalf("入盟失败不应消耗邀请")
	}
}

func TestAllianceService_退盟_普通成员(t *testing.T) {
	svc, gw, alliances, _, _ := newAllianceFixture()

	created, _ := svc.Create(context.Background(), 1, "ragnar", "Great Heathen Army", "")
	inv, _ := svc.Invite(context.Background(), "ragnar", "aelfred")
	if _, err := svc.AcceptInvite(context.Background(), 2, "aelfred", inv.Id); err != nil {
		t.Fatalf("接受邀请失败: %v", err)
	}

	if err := svc.Leave(context.Background(), 2, "aelfred"); err != nil {
		t.Fatalf("退盟失败: %v", err)
	}
	a := alliances.alliances[created.Id]
	if a.HasMember("aelfred") || a.LeaderUsername != "ragnar" {
		t.Fatalf("退盟后状态非法: %+v", a)
	}
	if gw.mirrors[2] != "" {
		t.Fatalf("退盟后镜像应清空: %v", gw.mirrors)
	}
}

func TestAllianceService_退盟_盟主换帅(t *testing.T) {
	svc, _, alliances, _, _ := newAllianceFixture()

	created, _ := svc.Create(context.Background(), 1, "ragnar", "Great Heathen Army", "")
	inv, _ := svc.Invite(context.Background(), "ragnar", "aelfred")
	if _, err := svc.AcceptInvite(context.Background(), 2, "aelfred", inv.Id); err != nil {
		t.Fatalf("接受邀请失败: %v", err)
	}

	if err := svc.Leave(context.Background(), 1, "ragnar"); err != nil {
		t.Fatalf("盟主退盟失败: %v", err)
	}
	a := alliances.alliances[created.Id]
	if a == nil {
		t.Fatalf("仍有成员时联盟不应解散")
	}
	if a.LeaderUsername != "aelfred" || a.LeaderId != 2 {
		t.Fatalf("盟主位应顺延: leader=%s id=%d", a.LeaderUsername, a.LeaderId)
	}
	if a.HasMember("ragnar") {
		t.Fatalf("原盟主应被移出成员名单")
	}
}

func TestAllianceService_退盟_继任者解析失败不换帅(t *testing.T) {
	svc, _, alliances, _, kingdoms := newAllianceFixture()

	created, _ := svc.Create(context.Background(), 1, "ragnar", "Great Heathen Army", "")
	inv, _ := svc.Invite(context.Background(), "ragnar", "aelfred")
	if _, err := svc.AcceptInvite(context.Background(), 2, "aelfred", inv.Id); err != nil {
		t.Fatalf("接受邀请失败: %v", err)
	}
	delete(kingdoms.byName, "aelfred")

	if err := svc.Leave(context.Background(), 1, "ragnar"); err == nil {
		t.Fatalf("继任者档案缺失时盟主退盟应失败")
	}
	a := alliances.alliances[created.Id]
	if a.LeaderUsername != "ragnar" || a.LeaderId != 1 || !a.HasMember("ragnar") {
		t.Fatalf("失败路径不应改动盟主位: %+v", a)
	}
}

func TestAllianceService_退盟_最后一人解散(t *testing.T) {
	svc, _, alliances, _, _ := newAllianceFixture()

	created, _ := svc.Create(context.Background(), 1, "ragnar", "Great Heathen Army", "")
	if err := svc.Leave(context.Background(), 1, "ragnar"); err != nil {
		t.Fatalf("退盟失败: %v", err)
	}
	if _, ok := alliances.alliances[created.Id]; ok {
		t.Fatalf("最后一人退出后联盟应解散")
	}
	if len(alliances.deleted) != 1 || alliances.deleted[0] != created.Id {
		t.Fatalf("期望删除联盟 %s, got=%v", created.Id, alliances.deleted)
	}
}

func TestAllianceService_退盟_未加入(t *testing.T) {
	svc, _, _, _, _ := newAllianceFixture()

	if err := svc.Leave(context.Background(), 3, "brennus"); !errors.Is(err, ErrNotMember) {
		t.Fatalf("期望 ErrNotMember, got=%v", err)
	}
}

func TestAllianceService_版图只展示大型联盟(t *testing.T) {
	svc, _, alliances, _, _ := newAllianceFixture()

	small, _ := domain.NewAlliance(1, "ragnar", "Small Band", "")
	big, _ := domain.NewAlliance(2, "aelfred", "Wessex Guard", "")
	for i := 1; i < domain.FlagThreshold; i++ {
		big.Members = append(big.Members, fmt.Sprintf("thegn-%02d", i))
	}
	alliances.alliances[small.Id] = small
	alliances.alliances[big.Id] = big

	view, err := svc.Map(context.Background())
	if err != nil {
		t.Fatalf("读取版图失败: %v", err)
	}
	if view.TotalAlliances != 1 || len(view.Alliances) != 1 {
		t.Fatalf("期望 1 个上图联盟, got=%d", view.TotalAlliances)
	}
	entry := view.Alliances[0]
	if entry.Name != "Wessex Guard" || entry.MemberCount != domain.FlagThreshold {
		t.Fatalf("版图条目非法: %+v", entry)
	}
	if entry.Coordinates.X < 100 || entry.Coordinates.X > 900 || entry.Coordinates.Y < 100 || entry.Coordinates.Y > 700 {
		t.Fatalf("坐标越界: %+v", entry.Coordinates)
	}
	if entry.Influence != domain.FlagThreshold*3 {
		t.Fatalf("影响力计算非法: %d", entry.Influence)
	}
}
