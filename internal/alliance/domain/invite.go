package domain

import (
	"time"

	"github.com/google/uuid"
)

// InviteTTL 邀请有效期。
const InviteTTL = 7 * 24 * time.Hour

const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
)

// Invite 联盟邀请，只有盟主可以发出。
type Invite struct {
	Id           string
	AllianceId   string
	AllianceName string
	FromId       int64
	FromUsername string
	ToId         int64
	ToUsername   string
	Status       string
	CreatedAt    time.Time
	ExpiresAt    time.Time
	AcceptedAt   time.Time
}

func NewInvite(a *Alliance, toId int64, toUsername string) *Invite {
	now := time.Now().UTC()
	return &Invite{
		Id:           uuid.NewString(),
		AllianceId:   a.Id,
		AllianceName: a.Name,
		FromId:       a.LeaderId,
		FromUsername: a.LeaderUsername,
		ToId:         toId,
		ToUsername:   toUsername,
		Status:       InviteStatusPending,
		CreatedAt:    now,
		ExpiresAt:    now.Add(InviteTTL),
	}
}

// Pending 是否仍可接受。
func (i *Invite) Pending(now time.Time) bool {
	return i.Status == InviteStatusPending && now.Before(i.ExpiresAt)
}
