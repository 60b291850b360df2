package app

import (
	"context"
	"errors"

	"MedievalKingdoms/internal/chat/app/port"
	"MedievalKingdoms/internal/chat/domain"
	"MedievalKingdoms/internal/kingdom/actors"
	kingdomport "MedievalKingdoms/internal/kingdom/app/port"
	kingdomdomain "MedievalKingdoms/internal/kingdom/domain"
	"MedievalKingdoms/modules/kit/logx"
)

// Gateway 王国 actor runtime 门面。
type Gateway interface {
	Ask(ctx context.Context, cmd actors.Command) (any, error)
}

// Notifier 在线推送端口（ws hub）。
type Notifier interface {
	PushTo(uid int64, name string, data any)
	Broadcast(name string, data any)
}

const (
	globalPushRoute  = "chat.global"
	privatePushRoute = "chat.private"
)

type ChatService struct {
	gw       Gateway
	store    port.MessageStore
	kingdoms kingdomport.KingdomRepository
	notifier Notifier
	log      logx.Logger
}

func NewChatService(gw Gateway, store port.MessageStore, kingdoms kingdomport.KingdomRepository, notifier Notifier, log logx.Logger) *ChatService {
	return &ChatService{
		gw:       gw,
		store:    store,
		kingdoms: kingdoms,
		notifier: notifier,
		log:      log,
	}
}

// SendGlobal 发送世界频道消息并广播给在线玩家。
func (s *ChatService) SendGlobal(ctx context.Context, playerId int64, content string) (*MessageView, error) {
	k, err := s.snapshot(ctx, playerId)
	if err != nil {
		return nil, err
	}

	m, err := domain.NewGlobalMessage(k.Username, string(k.Empire), content)
	if err != nil {
		return nil, translateContentErr(err)
	}
	if err := s.store.InsertGlobal(ctx, m); err != nil {
		return nil, Wrap(CodeUnavailable, "消息写入失败", err).WithReason(ReasonMessageRepoUnavailable)
	}

	view := toMessageView(m)
	if s.notifier != nil {
		s.notifier.Broadcast(globalPushRoute, view)
	}
	return view, nil
}

// SendSystem 发送系统公告（管理接口）。
func (s *ChatService) SendSystem(ctx context.Context, content string) (*MessageView, error) {
	m, err := domain.NewSystemMessage(content)
	if err != nil {
		return nil, translateContentErr(err)
	}
	if err := s.store.InsertGlobal(ctx, m); err != nil {
		return nil, Wrap(CodeUnavailable, "消息写入失败", err).WithReason(ReasonMessageRepoUnavailable)
	}

	view := toMessageView(m)
	if s.notifier != nil {
		s.notifier.Broadcast(globalPushRoute, view)
	}
	return view, nil
}

// GlobalHistory 最近的世界频道消息，按时间正序。
func (s *ChatService) GlobalHistory(ctx context.Context, limit int64) ([]*MessageView, error) {
	messages, err := s.store.RecentGlobal(ctx, limit)
	if err != nil {
		return nil, Wrap(CodeUnavailable, "消息读取失败", err).WithReason(ReasonMessageRepoUnavailable)
	}
	out := make([]*MessageView, 0, len(messages))
	for _, m := range messages {
		out = append(out, toMessageView(m))
	}
	return out, nil
}

// SendPrivate 发送私信，收件人在线时实时推送。
func (s *ChatService) SendPrivate(ctx context.Context, playerId int64, receiver, content string) (*PrivateMessageView, error) {
	k, err := s.snapshot(ctx, playerId)
	if err != nil {
		return nil, err
	}

	target, err := s.kingdoms.FindByUsername(ctx, receiver)
	if err != nil {
		if errors.Is(err, kingdomport.ErrKingdomNotFound) {
			return nil, ErrReceiverNotFound.WithReason(ReasonReceiverNotFound).WithData("receiver", receiver)
		}
		return nil, Wrap(CodeUnavailable, "玩家读取失败", err)
	}

	m, err := domain.NewPrivateMessage(k.Username, target.Username, content)
	if err != nil {
		return nil, translateContentErr(err)
	}
	if err := s.store.InsertPrivate(ctx, m); err != nil {
		return nil, Wrap(CodeUnavailable, "消息写入失败", err).WithReason(ReasonMessageRepoUnavailable)
	}

	view := toPrivateView(m)
	if s.notifier != nil {
		s.notifier.PushTo(target.Id, privatePushRoute, view)
	}
	return view, nil
}

// PrivateHistory 我收发的私信，按时间正序。
func (s *ChatService) PrivateHistory(ctx context.Context, playerId int64, limit int64) ([]*PrivateMessageView, error) {
	k, err := s.snapshot(ctx, playerId)
	if err != nil {
		return nil, err
	}

	messages, err := s.store.ListPrivateFor(ctx, k.Username, limit)
	if err != nil {
		return nil, Wrap(CodeUnavailable, "消息读取失败", err).WithReason(ReasonMessageRepoUnavailable)
	}
	out := make([]*PrivateMessageView, 0, len(messages))
	for _, m := range messages {
		out = append(out, toPrivateView(m))
	}
	return out, nil
}

func (s *ChatService) snapshot(ctx context.Context, playerId int64) (*kingdomdomain.Kingdom, error) {
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

func translateContentErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyContent):
		return ErrEmptyContent.WithReason(ReasonEmptyContent)
	case errors.Is(err, domain.ErrContentTooLong):
		return ErrContentTooLong.WithReason(ReasonContentTooLong)
	default:
		return Wrap(CodeInternalServer, "消息校验失败", err)
	}
}
