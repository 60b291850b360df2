package app

import (
	"context"
	"errors"
	"testing"

	"MedievalKingdoms/internal/account/domain"
	kingdomport "MedievalKingdoms/internal/kingdom/app/port"
	kingdomdomain "MedievalKingdoms/internal/kingdom/domain"
	"MedievalKingdoms/internal/shared/gamedata/empire"
)

type fakeUserRepo struct {
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (r *fakeUserRepo) GetUserByUserName(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound.WithData("username", username)
	}
	return &u, nil
}

func (r *fakeUserRepo) Save(_ context.Context, n domain.User) error {
	r.users[n.Username] = n
	return nil
}

type fakeHistoryRepo struct {
	saves []domain.LoginHistory
}

func (r *fakeHistoryRepo) Save(_ context.Context, h domain.LoginHistory) error {
	r.saves = append(r.saves, h)
	return nil
}

type fakeLastRepo struct {
	byUid map[int64]domain.LoginLast
}

func newFakeLastRepo() *fakeLastRepo {
	return &fakeLastRepo{byUid: map[int64]domain.LoginLast{}}
}

func (r *fakeLastRepo) GetLoginLast(_ context.Context, uid int64) (domain.LoginLast, error) {
	ll, ok := r.byUid[uid]
	if !ok {
		return domain.LoginLast{}, domain.ErrLastLoginNotFound.WithData("uid", uid)
	}
	return ll, nil
}

func (r *fakeLastRepo) Save(_ context.Context, ll domain.LoginLast) error {
	if ll.Id == 0 {
		ll.Id = int64(len(r.byUid) + 1)
	}
	r.byUid[ll.UId] = ll
	return nil
}

type fakeKingdoms struct {
	kingdomport.KingdomRepository
	saved   []*kingdomdomain.Kingdom
	saveErr error
}

func (r *fakeKingdoms) Save(_ context.Context, k *kingdomdomain.Kingdom) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, k)
	return nil
}

type seqIdGen struct {
	next int64
}

func (g *seqIdGen) Next() int64 {
	g.next++
	return g.next
}

func testEncrypter(pwd, passcode string) string {
	return pwd + ":" + passcode
}

func testRandSeq(n int) string {
	return "abc123"[:n%7]
}

type fixture struct {
	users    *fakeUserRepo
	history  *fakeHistoryRepo
	last     *fakeLastRepo
	kingdoms *fakeKingdoms
	svc      *UserService
}

func newFixture() *fixture {
	f := &fixture{
		users:    newFakeUserRepo(),
		history:  &fakeHistoryRepo{},
		last:     newFakeLastRepo(),
		kingdoms: &fakeKingdoms{},
	}
	f.svc = NewUserService(f.users, f.history, f.last, f.kingdoms,
		testEncrypter, testRandSeq, &seqIdGen{}, nil)
	return f
}

func reasonOf(t *testing.T, err error) string {
	t.Helper()
	var re interface{ Reason() string }
	if !errors.As(err, &re) {
		t.Fatalf("错误缺少 reason: %v", err)
	}
	return re.Reason()
}

func TestUserService_注册成功并初始化王国(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Register(context.Background(), RegisterReq{
		Username: "ragnar", Password: "secret", Empire: "viking",
	})
	if err != nil {
		t.Fatalf("Register err=%v", err)
	}
	if resp.UId != 1 || resp.Username != "ragnar" || resp.Empire != "viking" {
		t.Fatalf("注册响应错误: %+v", resp)
	}

	if len(f.kingdoms.saved) != 1 {
		t.Fatalf("期望创建 1 个王国，实际 %d", len(f.kingdoms.saved))
	}
	k := f.kingdoms.saved[0]
	if k.Id != 1 || k.Username != "ragnar" || k.Empire != empire.Viking {
		t.Fatalf("王国初始化错误: id=%d username=%s empire=%s", k.Id, k.Username, k.Empire)
	}
	if k.Power <= 0 {
		t.Fatal("新王国战力应大于 0")
	}

	saved := f.users.users["ragnar"]
	if saved.Passwd != "secret:"+saved.Passcode {
		t.Fatalf("密码未按安全码加密: %s", saved.Passwd)
	}
}

func TestUserService_注册_用户已存在(t *testing.T) {
	f := newFixture()
	f.users.users["ragnar"] = domain.User{UId: 9, Username: "ragnar"}

	_, err := f.svc.Register(context.Background(), RegisterReq{
		Username: "ragnar", Password: "secret",
	})
	if !errors.Is(err, ErrUserExist) {
		t.Fatalf("期望 ErrUserExist，实际 %v", err)
	}
	if got := reasonOf(t, err); got != ReasonRegisterUserExist.Code {
		t.Fatalf("reason 错误: %s", got)
	}
}

func TestUserService_注册_阵营非法(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Register(context.Background(), RegisterReq{
		Username: "ragnar", Password: "secret", Empire: "wakanda",
	})
	if !errors.Is(err, ErrInvalidEmpire) {
		t.Fatalf("期望 ErrInvalidEmpire，实际 %v", err)
	}
	if len(f.kingdoms.saved) != 0 {
		t.Fatal("阵营非法不应创建王国")
	}
}

func TestUserService_注册_空阵营默认诺曼(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Register(context.Background(), RegisterReq{
		Username: "aelfred", Password: "secret",
	})
	if err != nil {
		t.Fatalf("Register err=%v", err)
	}
	if resp.Empire != string(empire.Norman) {
		t.Fatalf("空阵营应回落诺曼，实际 %s", resp.Empire)
	}
}

func TestUserService_注册_用户名长度校验(t *testing.T) {
	f := newFixture()

	for _, name := range []string{"ab", "   a   ", "verylongusername_exceeds_20"} {
		if _, err := f.svc.Register(context.Background(), RegisterReq{
			Username: name, Password: "secret",
		}); err == nil {
			t.Fatalf("用户名 %q 应被拒绝", name)
		}
	}
}

func TestUserService_登录成功(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	f := newFixture()
	f.users.users["ragnar"] = domain.User{
		UId: 7, Username: "ragnar", Passcode: "abc123", Passwd: testEncrypter("secret", "abc123"),
	}

	resp, err := f.svc.Login(context.Background(), LoginReq{
		Username: "ragnar", Password: "secret", Ip: "10.0.0.1",
	})
	if err != nil {
		t.Fatalf("Login err=%v", err)
	}
	if resp.UId != 7 || resp.Session == "" {
		t.Fatalf("登录响应错误: %+v", resp)
	}

	if len(f.history.saves) != 1 || f.history.saves[0].State != domain.LoginSuccess {
		t.Fatalf("登录历史未落库: %+v", f.history.saves)
	}
	ll := f.last.byUid[7]
	if ll.Session != resp.Session || ll.IsLogout != 0 {
		t.Fatalf("最后登录状态错误: %+v", ll)
	}
}

func TestUserService_登录_密码错误(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	f := newFixture()
	f.users.users["ragnar"] = domain.User{
		UId: 7, Username: "ragnar", Passcode: "abc123", Passwd: testEncrypter("secret", "abc123"),
	}

	_, err := f.svc.Login(context.Background(), LoginReq{Username: "ragnar", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("期望 ErrInvalidCredentials，实际 %v", err)
	}
	if len(f.history.saves) != 0 {
		t.Fatal("失败登录不应写历史")
	}
}

func TestUserService_登录_用户不存在(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Login(context.Background(), LoginReq{Username: "ghost", Password: "x"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("期望 ErrInvalidCredentials，实际 %v", err)
	}
}
