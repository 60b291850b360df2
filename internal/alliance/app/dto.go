package app

import (
	"time"

	"MedievalKingdoms/internal/alliance/domain"
)

// AllianceView 联盟视图。
type AllianceView struct {
	Id             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	LeaderId       int64    `json:"leaderId"`
	LeaderUsername string   `json:"leaderUsername"`
	Members        []string `json:"members"`
	MemberCount    int      `json:"memberCount"`
	MaxMembers     int      `json:"maxMembers"`
	Level          int      `json:"level"`
	HasFlag        bool     `json:"hasFlag"`
	CreatedAt      string   `json:"createdAt"`
}

// InviteView 邀请视图（收件人视角）。
type InviteView struct {
	Id           string `json:"id"`
	AllianceId   string `json:"allianceId"`
	AllianceName string `json:"allianceName"`
	FromUsername string `json:"fromUsername"`
	CreatedAt    string `json:"createdAt"`
	ExpiresAt    string `json:"expiresAt"`
}

// Coordinates 联盟在版图上的落点。
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Flag 联盟旗帜样式。
type Flag struct {
	Color   string `json:"color"`
	Symbol  string `json:"symbol"`
	Pattern string `json:"pattern"`
}

// MapEntry 版图上的单个联盟。
type MapEntry struct {
	Id             string      `json:"id"`
	Name           string      `json:"name"`
	MemberCount    int         `json:"memberCount"`
	Level          int         `json:"level"`
	LeaderUsername string      `json:"leaderUsername"`
	Coordinates    Coordinates `json:"coordinates"`
	Flag           Flag        `json:"flag"`
	Influence      int         `json:"influence"`
	Description    string      `json:"description,omitempty"`
}

// MapSize 版图尺寸。
type MapSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MapView 联盟版图，只展示达到旗帜人数的联盟。
type MapView struct {
	Alliances      []*MapEntry `json:"alliances"`
	MapSize        MapSize     `json:"mapSize"`
	TotalAlliances int         `json:"totalAlliances"`
}

func toAllianceView(a *domain.Alliance) *AllianceView {
	members := make([]string, len(a.Members))
	copy(members, a.Members)
	return &AllianceView{
		Id:             a.Id,
		Name:           a.Name,
		Description:    a.Description,
		LeaderId:       a.LeaderId,
		LeaderUsername: a.LeaderUsername,
		Members:        members,
		MemberCount:    a.MemberCount(),
		MaxMembers:     a.MaxMembers,
		Level:          a.Level,
		HasFlag:        a.HasFlag(),
		CreatedAt:      formatTime(a.CreatedAt),
	}
}

func toAllianceViews(alliances []*domain.Alliance) []*AllianceView {
	out := make([]*AllianceView, 0, len(alliances))
	for _, a := range alliances {
		out = append(out, toAllianceView(a))
	}
	return out
}

func toInviteView(inv *domain.Invite) *InviteView {
	return &InviteView{
		Id:           inv.Id,
		AllianceId:   inv.AllianceId,
		AllianceName: inv.AllianceName,
		FromUsername: inv.FromUsername,
		CreatedAt:    formatTime(inv.CreatedAt),
		ExpiresAt:    formatTime(inv.ExpiresAt),
	}
}

func toInviteViews(invites []*domain.Invite) []*InviteView {
	out := make([]*InviteView, 0, len(invites))
	for _, inv := range invites {
		out = append(out, toInviteView(inv))
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
