package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"MedievalKingdoms/internal/account/domain"
	kingdomport "MedievalKingdoms/internal/kingdom/app/port"
	kingdomdomain "MedievalKingdoms/internal/kingdom/domain"
	"MedievalKingdoms/internal/shared/gamedata/empire"
	"MedievalKingdoms/internal/shared/security"
	"MedievalKingdoms/modules/kit/errx"
	"MedievalKingdoms/modules/kit/logx"
)

type UserService struct {
	userRepo     UserRepo
	lhRepo       LoginHistoryRepo
	llRepo       LoginLastRepo
	kingdoms     kingdomport.KingdomRepository
	pwdEncrypter PwdEncrypter
	randSeq      RandSeq
	idGen        IdGenerator
	log          logx.Logger
}

func NewUserService(userRepo UserRepo, lhRepo LoginHistoryRepo, llRepo LoginLastRepo,
	kingdoms kingdomport.KingdomRepository, pwdEncrypter PwdEncrypter, randSeq RandSeq,
	idGen IdGenerator, log logx.Logger) *UserService {
	return &UserService{
		userRepo:     userRepo,
		lhRepo:       lhRepo,
		llRepo:       llRepo,
		kingdoms:     kingdoms,
		pwdEncrypter: pwdEncrypter,
		randSeq:      randSeq,
		idGen:        idGen,
		log:          log,
	}
}

// Login 处理登录流程：校验口令、签发 token、落登录历史与最后登录状态。
func (s *UserService) Login(ctx context.Context, req LoginReq) (*LoginResp, error) {
	user, err := s.userRepo.GetUserByUserName(ctx, req.Username)
	if err != nil {
		// 区分“用户不存在”（业务错误）和“数据库挂了”（技术错误）
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return nil, ErrInvalidCredentials.WithReason(ReasonLoginInvalidCredentials).WithData("reason_detail", "用户不存在")
		default:
			return nil, ErrUnavailable.WithCause(err)
		}
	}
	if !user.CheckPassword(req.Password, s.pwdEncrypter) {
		return nil, ErrInvalidCredentials.WithReason(ReasonLoginInvalidCredentials).WithData("reason_detail", "密码错误")
	}

	now := time.Now()
	token, err := security.Award(user.UId)
	if err != nil {
		return nil, ErrInternalServer.WithData("uid", user.UId).WithCause(err)
	}

	// 保存登录历史
	lh := domain.LoginHistory{UId: user.UId, CTime: now, Ip: req.Ip,
		Hardware: req.Hardware, State: domain.LoginSuccess}
	if err = s.lhRepo.Save(ctx, lh); err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}

	// 保存最后一次登录的状态
	ll, err := s.llRepo.GetLoginLast(ctx, user.UId)
	switch {
	case err == nil:
		// 已存在：刷新状态
	case errors.Is(err, domain.ErrLastLoginNotFound):
		// 不存在：创建新记录（Id=0）
		ll = domain.LoginLast{UId: user.UId}
	default:
		return nil, ErrUnavailable.WithCause(err)
	}
	ll.LoginTime = now
	ll.Ip = req.Ip
	ll.Session = token
	ll.Hardware = req.Hardware
	ll.IsLogout = 0
	if err = s.llRepo.Save(ctx, ll); err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}

	return &LoginResp{
		UId:      user.UId,
		Username: user.Username,
		Session:  token,
	}, nil
}

// Register 创建账号并初始化对应的王国文档。
// 账号与王国分属 MySQL / Mongo，两步不构成事务：
// 王国创建失败时账号已存在，记日志等待人工补建。
func (s *UserService) Register(ctx context.Context, req RegisterReq) (*RegisterResp, error) {
	username := strings.TrimSpace(req.Username)
	if len(username) < 4 || len(username) > 20 {
		return nil, errx.ErrReqParamERR.WithData("username", username)
	}
	if req.Password == "" {
		return nil, errx.ErrReqParamERR.WithData("field", "password")
	}

	e := empire.Normalize(req.Empire)
	if req.Empire != "" && e != empire.Empire(req.Empire) {
		return nil, ErrInvalidEmpire.WithReason(ReasonInvalidEmpire).WithData("empire", req.Empire)
	}

	existing, err := s.userRepo.GetUserByUserName(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, ErrUnavailable.WithCause(err)
	}
	if existing != nil {
		return nil, ErrUserExist.WithReason(ReasonRegisterUserExist).WithData("username", username)
	}

	now := time.Now()
	uid := s.idGen.Next()
	passcode := s.randSeq(6)

	user := domain.User{
		UId:      uid,
		Username: username,
		Passwd:   s.pwdEncrypter(req.Password, passcode),
		Passcode: passcode,
		Hardware: req.Hardware,
		Status:   1,
		Ctime:    now,
		Mtime:    now,
	}
	if err = s.userRepo.Save(ctx, user); err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}

	kingdom := kingdomdomain.NewKingdom(uid, username, e)
	if err = s.kingdoms.Save(ctx, kingdom); err != nil {
		if s.log != nil {
			s.log.Error("王国初始化失败，账号已建，需人工补建",
				zap.Int64("uid", uid), zap.String("username", username), zap.Error(err))
		}
		return nil, ErrUnavailable.WithReason(ReasonKingdomCreateFail).WithCause(err)
	}

	return &RegisterResp{
		UId:      uid,
		Username: username,
		Empire:   string(e),
	}, nil
}
