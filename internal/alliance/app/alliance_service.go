package app

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"MedievalKingdoms/internal/alliance/app/port"
	"MedievalKingdoms/internal/alliance/domain"
	"MedievalKingdoms/internal/kingdom/actors"
	kingdomport "MedievalKingdoms/internal/kingdom/app/port"
	"MedievalKingdoms/modules/kit/logx"
)

// Gateway 王国 actor runtime 门面。
type Gateway interface {
	Ask(ctx context.Context, cmd actors.Command) (any, error)
}

var (
	flagColors   = []string{"red", "blue", "green", "purple", "gold", "silver"}
	flagSymbols  = []string{"crown", "sword", "shield", "dragon", "eagle", "lion"}
	flagPatterns = []string{"solid", "stripes", "cross", "diagonal"}
)

type AllianceService struct {
	gw        Gateway
	alliances port.AllianceStore
	invites   port.InviteStore
	kingdoms  kingdomport.KingdomRepository
	log       logx.Logger
}

func NewAllianceService(gw Gateway, alliances port.AllianceStore, invites port.InviteStore, kingdoms kingdomport.KingdomRepository, log logx.Logger) *AllianceService {
	return &AllianceService{
		gw:        gw,
		alliances: alliances,
		invites:   invites,
		kingdoms:  kingdoms,
		log:       log,
	}
}

// Create 创建联盟，创建者即盟主。一名玩家同时只能加入一个联盟。
func (s *AllianceService) Create(ctx context.Context, playerId int64, username, name, description string) (*AllianceView, error) {
	a, err := domain.NewAlliance(playerId, username, name, description)
	if err != nil {
		return nil, ErrInvalidName.WithReason(ReasonInvalidName).WithData("cause", err.Error())
	}

	if _, err := s.alliances.FindByName(ctx, a.Name); err == nil {
		return nil, ErrNameExist.WithReason(ReasonNameExist)
	} else if !errors.Is(err, port.ErrAllianceNotFound) {
		return nil, Wrap(CodeUnavailable, "联盟读取失败", err).WithReason(ReasonAllianceRepoUnavailable)
	}

	if _, err := s.alliances.FindByMember(ctx, username); err == nil {
		return nil, ErrAlreadyJoined.WithReason(ReasonAlreadyJoined)
	} else if !errors.Is(err, port.ErrAllianceNotFound) {
		return nil, Wrap(CodeUnavailable, "联盟读取失败", err).WithReason(ReasonAllianceRepoUnavailable)
	}

	if err := s.alliances.Insert(ctx, a); err != nil {
		return nil, Wrap(CodeUnavailable, "联盟写入失败", err).WithReason(ReasonAllianceRepoUnavailable)
	}

	s.setAlliance(ctx, playerId, a.Id)
	return toAllianceView(a), nil
}

// List 联盟列表。
func (s *AllianceService) List(ctx context.Context, limit int64) ([]*AllianceView, error) {
	alliances, err := s.alliances.List(ctx, limit)
	if err != nil {
		return nil, Wrap(CodeUnavailable, "联盟读取失败", err).WithReason(ReasonAllianceRepoUnavailable)
	}
	return toAllianceViews(alliances), nil
}

// My 我所在的联盟，未加入时返回 nil。
func (s *AllianceService) My(ctx context.Context, username string) (*AllianceView, error) {
	a, err := s.alliances.FindByMember(ctx, username)
	if err != nil {
		if errors.Is(err, port.ErrAllianceNotFound) {
			return nil, nil
		}
		return nil, Wrap(CodeUnavailable, "联盟读取失败", err).WithReason(ReasonAllianceRepoUnavailable)
	}
	return toAllianceView(a), nil
}

// Invite 盟主邀请其他玩家入盟，邀请 7 天内有效。
func (s *AllianceService) Invite(ctx context.Context, username, targetUsername string) (*InviteView, error) {
	a, err := s.alliances.FindByLeader(ctx, username)
	if err != nil {
		if errors.Is(err, port.ErrAllianceNotFound) {
			return nil, ErrNotLeader.WithReason(ReasonNotLeader)
		}
		return nil, Wrap(CodeUnavailable, "联盟读取失败", err).WithReason(ReasonAllianceRepoUnavailable)
	}

	target, err := s.kingdoms.FindByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, kingdomport.ErrKingdomNotFound) {
			return nil, ErrPlayerNotFound.WithData("username", targetUsername)
		}
		return nil, Wrap(CodeUnavailable, "玩家读取失败", err)
	}

	if _, err := s.alliances.FindByMember(ctx, targetUsername); err == nil {
		return nil, ErrAlreadyJoined.WithReason(ReasonAlreadyJoined).WithData("username", targetUsername)
	} else if !errors.Is(err, port.ErrAllianceNotFound) {
		return nil, Wrap(CodeUnavailable, "联盟读取失败", err).WithReason(ReasonAllianceRepoUnavailable)
	}

	if a.Full() {
		return nil, ErrAllianceFull.WithReason(ReasonAllianceFull)
	}

	inv := domain.NewInvite(a, target.Id, targetUsername)
	if err := s.invites.Insert(ctx, inv); err != nil {
		return nil, Wrap(CodeUnavailable, "邀请写入失败", err).WithReason(ReasonInviteRepoUnavailable)
	}
	return toInviteView(inv), nil
}

// Invites 我收到的待处理邀请。
func (s *AllianceService) Invites(ctx context.Context, username string) ([]*InviteView, error) {
	invites, err := s.invites.ListPendingFor(ctx, username, time.Now().UTC())
	if err != nil {
		return nil, Wrap(CodeUnavailable, "邀请读取失败", err).WithReason(ReasonInviteRepoUnavailable)
	}
	return toInviteViews(invites), nil
}

// AcceptInvite 接受邀请入盟。入盟本身是单次条件更新，
// 满员 / 重复加入的并发竞争在存储层裁决。
func (s *AllianceService) AcceptInvite(ctx context.Context, playerId int64, username, inviteId string) (*AllianceView, error) {
	now := time.Now().UTC()

	inv, err := s.invites.GetPendingFor(ctx, inviteId, username, now)
	if err != nil {
		if errors.Is(err, port.ErrInviteNotFound) {
			return nil, ErrInviteNotFound.WithReason(ReasonInviteNotFound)
		}
		return nil, Wrap(CodeUnavailable, "邀请读取失败", err).WithReason(ReasonInviteRepoUnavailable)
	}

	if _, err := s.alliances.FindByMember(ctx, username); err == nil {
		return nil, ErrAlreadyJoined.WithReason(ReasonAlreadyJoined)
	} else if !errors.Is(err, port.ErrAllianceNotFound) {
		return nil, Wrap(CodeUnavailable, "联盟读取失败", err).WithReason(ReasonAllianceRepoUnavailable)
	}

	if err := s.alliances.AddMember(ctx, inv.AllianceId, username); err != nil {
		if errors.Is(err, port.ErrJoinConflict) {
			return nil, ErrAllianceFull.WithReason(ReasonAllianceFull)
		}
		if errors.Is(err, port.ErrAllianceNotFound) {
			return nil, ErrAllianceNotFound.WithReason(ReasonAllianceNotFound)
		}
		return nil, Wrap(CodeUnavailable, "联盟写入失败", err).WithReason(ReasonAllianceRepoUnavailable)
	}

	if err := s.invites.MarkAccepted(ctx, inviteId, now); err != nil && s.log != nil {
		s.log.Warn("alliance invite mark accepted failed",
			zap.String("invite_id", inviteId), zap.Error(err))
	}

	s.setAlliance(ctx, playerId, inv.AllianceId)

	a, err := s.alliances.Get(ctx, inv.AllianceId)
	if err != nil {
		return nil, Wrap(CodeUnavailable, "联盟读取失败", err).WithReason(ReasonAllianceRepoUnavailable)
	}
	return toAllianceView(a), nil
}

// Leave 退出联盟。盟主退出时盟主位顺延给剩余名单的第一人，
// 最后一人退出时联盟解散。
func (s *AllianceService) Leave(ctx context.Context, playerId int64, username string) error {
	a, err := s.alliances.FindByMember(ctx, username)
	if err != nil {
		if errors.Is(err, port.ErrAllianceNotFound) {
			return ErrNotMember.WithReason(ReasonNotMember)
		}
		return Wrap(CodeUnavailable, "联盟读取失败", err).WithReason(ReasonAllianceRepoUnavailable)
	}

	// 先解析继任盟主的玩家 id，再让聚合换帅，id 与用户名一并落在聚合上
	var successorId int64
	if successor := a.SuccessorTo(username); successor != "" {
		k, err := s.kingdoms.FindByUsername(ctx, successor)
		if err != nil {
			return Wrap(CodeUnavailable, "玩家读取失败", err).WithReason(ReasonAllianceRepoUnavailable)
		}
		successorId = k.Id
	}

	disbanded, newLeader, err := a.RemoveMember(username, successorId)
	if err != nil {
		return ErrNotMember.WithReason(ReasonNotMember)
	}

	switch {
	case disbanded:
		if err := s.alliances.Delete(ctx, a.Id); err != nil {
			return Wrap(CodeUnavailable, "联盟写入失败", err).WithReason(ReasonAllianceRepoUnavailable)
		}
	case newLeader != "":
		if err := s.alliances.TransferLeader(ctx, a.Id, a.LeaderId, newLeader, username); err != nil {
			return Wrap(CodeUnavailable, "联盟写入失败", err).WithReason(ReasonAllianceRepoUnavailable)
		}
	default:
		if err := s.alliances.RemoveMember(ctx, a.Id, username); err != nil {
			return Wrap(CodeUnavailable, "联盟写入失败", err).WithReason(ReasonAllianceRepoUnavailable)
		}
	}

	s.setAlliance(ctx, playerId, "")
	return nil
}

// Map 联盟版图：只展示达到旗帜人数的联盟，落点与旗帜样式
// 每次查询随机生成。
func (s *AllianceService) Map(ctx context.Context) (*MapView, error) {
	alliances, err := s.alliances.List(ctx, 0)
	if err != nil {
		return nil, Wrap(CodeUnavailable, "联盟读取失败", err).WithReason(ReasonAllianceRepoUnavailable)
	}

	entries := make([]*MapEntry, 0)
	for _, a := range alliances {
		if !a.HasFlag() {
			continue
		}
		count := a.MemberCount()
		influence := count * 3
		if influence > 100 {
			influence = 100
		}
		entries = append(entries, &MapEntry{
			Id:             a.Id,
			Name:           a.Name,
			MemberCount:    count,
			Level:          a.Level,
			LeaderUsername: a.LeaderUsername,
			Coordinates: Coordinates{
				X: 100 + rand.IntN(801),
				Y: 100 + rand.IntN(601),
			},
			Flag: Flag{
				Color:   flagColors[rand.IntN(len(flagColors))],
				Symbol:  flagSymbols[rand.IntN(len(flagSymbols))],
				Pattern: flagPatterns[rand.IntN(len(flagPatterns))],
			},
			Influence:   influence,
			Description: a.Description,
		})
	}

	return &MapView{
		Alliances:      entries,
		MapSize:        MapSize{Width: 1000, Height: 800},
		TotalAlliances: len(entries),
	}, nil
}

// setAlliance 同步王国档案上的联盟标记。成员关系的事实存在联盟集合里，
// 这里只是冗余镜像，失败记录日志等待下次同步。
func (s *AllianceService) setAlliance(ctx context.Context, playerId int64, allianceId string) {
	res, err := s.gw.Ask(ctx, &actors.SetAlliance{Player: playerId, AllianceId: allianceId})
	if err == nil {
		if reply, ok := res.(*actors.SetAllianceReply); ok {
			err = reply.Err
		}
	}
	if err != nil && s.log != nil {
		s.log.Warn("kingdom alliance mirror update failed",
			zap.Int64("player_id", playerId), zap.String("alliance_id", allianceId), zap.Error(err))
	}
}
