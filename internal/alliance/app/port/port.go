package port

import (
	"context"
	"errors"
	"time"

	"MedievalKingdoms/internal/alliance/domain"
)

var (
	// ErrAllianceNotFound 联盟不存在。
	ErrAllianceNotFound = errors.New("alliance not found")
	// ErrInviteNotFound 邀请不存在、已过期或已处理。
	ErrInviteNotFound = errors.New("alliance invite not found")
	// ErrJoinConflict 条件加入未命中：满员、重复加入或联盟已解散。
	ErrJoinConflict = errors.New("alliance join conflict")
)

// AllianceStore 联盟存储端口。AddMember 必须是单次条件更新：
// 过滤满员与重复成员，并发加入只有容量内的请求命中。
type AllianceStore interface {
	Insert(ctx context.Context, a *domain.Alliance) error
	Get(ctx context.Context, id string) (*domain.Alliance, error)
	FindByName(ctx context.Context, name string) (*domain.Alliance, error)
	FindByMember(ctx context.Context, username string) (*domain.Alliance, error)
	FindByLeader(ctx context.Context, leaderUsername string) (*domain.Alliance, error)
	List(ctx context.Context, limit int64) ([]*domain.Alliance, error)
	AddMember(ctx context.Context, id string, username string) error
	RemoveMember(ctx context.Context, id string, username string) error
	TransferLeader(ctx context.Context, id string, leaderId int64, leaderUsername string, removeMember string) error
	Delete(ctx context.Context, id string) error
}

// InviteStore 联盟邀请存储端口。
type InviteStore interface {
	Insert(ctx context.Context, inv *domain.Invite) error
	ListPendingFor(ctx context.Context, username string, now time.Time) ([]*domain.Invite, error)
	GetPendingFor(ctx context.Context, id string, username string, now time.Time) (*domain.Invite, error)
	MarkAccepted(ctx context.Context, id string, now time.Time) error
	PurgeExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
