package model

import (
	"time"

	"MedievalKingdoms/internal/alliance/domain"
)

// AllianceDoc 联盟集合文档，_id 使用业务侧 uuid。
type AllianceDoc struct {
	Id             string    `bson:"_id"`
	Name           string    `bson:"name"`
	Description    string    `bson:"description,omitempty"`
	LeaderId       int64     `bson:"leaderId"`
	LeaderUsername string    `bson:"leaderUsername"`
	Members        []string  `bson:"members"`
	MaxMembers     int       `bson:"maxMembers"`
	Level          int       `bson:"level"`
	Experience     int64     `bson:"experience"`
	CreatedAt      time.Time `bson:"createdAt"`
}

func AllianceToDoc(a *domain.Alliance) AllianceDoc {
	members := make([]string, len(a.Members))
	copy(members, a.Members)
	return AllianceDoc{
		Id:             a.Id,
		Name:           a.Name,
		Description:    a.Description,
		LeaderId:       a.LeaderId,
		LeaderUsername: a.LeaderUsername,
		Members:        members,
		MaxMembers:     a.MaxMembers,
		Level:          a.Level,
		Experience:     a.Experience,
		CreatedAt:      a.CreatedAt,
	}
}

func DocToAlliance(doc AllianceDoc) *domain.Alliance {
	maxMembers := doc.MaxMembers
	if maxMembers <= 0 {
		maxMembers = domain.DefaultCapacity
	}
	level := doc.Level
	if level <= 0 {
		level = 1
	}
	members := make([]string, len(doc.Members))
	copy(members, doc.Members)
	return &domain.Alliance{
		Id:             doc.Id,
		Name:           doc.Name,
		Description:    doc.Description,
		LeaderId:       doc.LeaderId,
		LeaderUsername: doc.LeaderUsername,
		Members:        members,
		MaxMembers:     maxMembers,
		Level:          level,
		Experience:     doc.Experience,
		CreatedAt:      doc.CreatedAt,
	}
}
