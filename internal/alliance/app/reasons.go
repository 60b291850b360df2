package app

import "MedievalKingdoms/internal/shared/reasoncode"

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{Code: c, Message: m}
}

var (
	ReasonAllianceNotFound = NewReason(reasoncode.AllianceNotFound, "联盟不存在")
	ReasonAllianceFull     = NewReason(reasoncode.AllianceFull, "联盟已满员")
	ReasonAlreadyJoined    = NewReason(reasoncode.AllianceAlreadyJoined, "已加入联盟")
	ReasonNotMember        = NewReason(reasoncode.AllianceNotMember, "未加入任何联盟")
	ReasonNotLeader        = NewReason(reasoncode.AllianceNotLeader, "仅盟主可执行该操作")
	ReasonNameExist        = NewReason(reasoncode.AllianceNameExist, "联盟名称已存在")
	ReasonInvalidName      = NewReason(reasoncode.AllianceInvalidName, "联盟名称非法")
	ReasonInviteNotFound   = NewReason(reasoncode.AllianceInviteNotFound, "邀请不存在或已过期")
)

var (
	ReasonAllianceRepoUnavailable = NewReason("ALLIANCE_REPO_UNAVAILABLE", "联盟存储库不可用")
	ReasonInviteRepoUnavailable   = NewReason("ALLIANCE_INVITE_REPO_UNAVAILABLE", "邀请存储库不可用")
)
