package model

import (
	"time"

	"MedievalKingdoms/internal/alliance/domain"
)

// InviteDoc 联盟邀请文档。
type InviteDoc struct {
	Id           string    `bson:"_id"`
	AllianceId   string    `bson:"allianceId"`
	AllianceName string    `bson:"allianceName"`
	FromId       int64     `bson:"fromUserId"`
	FromUsername string    `bson:"fromUsername"`
	ToId         int64     `bson:"toUserId"`
	ToUsername   string    `bson:"toUsername"`
	Status       string    `bson:"status"`
	CreatedAt    time.Time `bson:"createdAt"`
	ExpiresAt    time.Time `bson:"expiresAt"`
	AcceptedAt   time.Time `bson:"acceptedAt,omitempty"`
}

func InviteToDoc(inv *domain.Invite) InviteDoc {
	return InviteDoc{
		Id:           inv.Id,
		AllianceId:   inv.AllianceId,
		AllianceName: inv.AllianceName,
		FromId:       inv.FromId,
		FromUsername: inv.FromUsername,
		ToId:         inv.ToId,
		ToUsername:   inv.ToUsername,
		Status:       inv.Status,
		CreatedAt:    inv.CreatedAt,
		ExpiresAt:    inv.ExpiresAt,
		AcceptedAt:   inv.AcceptedAt,
	}
}

func DocToInvite(doc InviteDoc) *domain.Invite {
	return &domain.Invite{
		Id:           doc.Id,
		AllianceId:   doc.AllianceId,
		AllianceName: doc.AllianceName,
		FromId:       doc.FromId,
		FromUsername: doc.FromUsername,
		ToId:         doc.ToId,
		ToUsername:   doc.ToUsername,
		Status:       doc.Status,
		CreatedAt:    doc.CreatedAt,
		ExpiresAt:    doc.ExpiresAt,
		AcceptedAt:   doc.AcceptedAt,
	}
}
