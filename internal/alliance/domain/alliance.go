package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity 联盟成员上限。
const DefaultCapacity = 20

// FlagThreshold 达到该人数的联盟在版图上展示旗帜。
const FlagThreshold = 10

var (
	ErrNameTooShort  = errors.New("alliance name must be at least 3 characters")
	ErrFull          = errors.New("alliance is full")
	ErrAlreadyMember = errors.New("player already in the alliance")
	ErrNotMember     = errors.New("player not in the alliance")
)

// Alliance 联盟聚合。成员以用户名标识，一名玩家同时只能加入一个联盟
// （该约束由存储层的条件更新保证，聚合只校验自身成员集合）。
type Alliance struct {
	Id             string
	Name           string
	Description    string
	LeaderId       int64
	LeaderUsername string
	Members        []string
	MaxMembers     int
	Level          int
	Experience     int64
	CreatedAt      time.Time
}

// NewAlliance 创建联盟，创建者自动成为盟主与首个成员。
func NewAlliance(leaderId int64, leaderUsername, name, description string) (*Alliance, error) {
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		return nil, ErrNameTooShort
	}
	return &Alliance{
		Id:             uuid.NewString(),
		Name:           name,
		Description:    strings.TrimSpace(description),
		LeaderId:       leaderId,
		LeaderUsername: leaderUsername,
		Members:        []string{leaderUsername},
		MaxMembers:     DefaultCapacity,
		Level:          1,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

func (a *Alliance) MemberCount() int {
	return len(a.Members)
}

func (a *Alliance) Full() bool {
	return len(a.Members) >= a.MaxMembers
}

// HasFlag 是否在联盟版图上展示旗帜。
func (a *Alliance) HasFlag() bool {
	return len(a.Members) >= FlagThreshold
}

func (a *Alliance) HasMember(username string) bool {
	for _, m := range a.Members {
		if m == username {
			return true
		}
	}
	return false
}

// AddMember 添加成员，满员或重复加入时拒绝。
func (a *Alliance) AddMember(username string) error {
	if a.HasMember(username) {
		return ErrAlreadyMember
	}
	if a.Full() {
		return ErrFull
	}
	a.Members = append(a.Members, username)
	return nil
}

// SuccessorTo 盟主离开时的继任人选：剩余名单中最早入盟的成员。
// 离开者不是盟主或无人可继任时返回空串。
func (a *Alliance) SuccessorTo(username string) string {
	if a.LeaderUsername != username {
		return ""
	}
	for _, m := range a.Members {
		if m != username {
			return m
		}
	}
	return ""
}

// RemoveMember 移除成员，最后一人离开时联盟解散。盟主离开时盟主位
// 顺延给 SuccessorTo 选出的成员，successorId 是调用方为其解析出的
// 玩家 id，盟主 id 与用户名在聚合内一并更新；非盟主离开时忽略该参数。
// 返回是否解散以及新盟主用户名（无则为空串）。
func (a *Alliance) RemoveMember(username string, successorId int64) (disbanded bool, newLeader string, err error) {
	if !a.HasMember(username) {
		return false, "", ErrNotMember
	}

	successor := a.SuccessorTo(username)

	remaining := make([]string, 0, len(a.Members)-1)
	for _, m := range a.Members {
		if m != username {
			remaining = append(remaining, m)
		}
	}
	a.Members = remaining

	if len(remaining) == 0 {
		return true, "", nil
	}
	if successor != "" {
		a.LeaderId = successorId
		a.LeaderUsername = successor
	}
	return false, successor, nil
}
