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
	ReasonTargetNotFound  = NewReason(reasoncode.CombatTargetNotFound, "目标玩家不存在")
	ReasonSelfRaid        = NewReason(reasoncode.CombatSelfRaid, "不能掠夺自己")
	ReasonNoArmy          = NewReason(reasoncode.CombatNoArmy, "没有可出征的军队")
	ReasonTargetProtected = NewReason(reasoncode.CombatTargetProtected, "目标处于保护期")
)

var (
	ReasonRaidRepoUnavailable = NewReason("RAID_REPO_UNAVAILABLE", "战报存储库不可用")
	ReasonRaidApplyFail       = NewReason("RAID_APPLY_FAIL", "掠夺结算落账失败")
)
