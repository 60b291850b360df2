package app

import "MedievalKingdoms/modules/kit/errx"

type Code = errx.Code

const (
	CodeTargetNotFound  Code = "COMBAT_TARGET_NOT_FOUND"
	CodeSelfRaid        Code = "COMBAT_SELF_RAID"
	CodeNoArmy          Code = "COMBAT_NO_ARMY"
	CodeTargetProtected Code = "COMBAT_TARGET_PROTECTED"
	CodeInternalServer  Code = errx.CodeInternal
	CodeUnavailable     Code = errx.CodeUnavailable
)

type Error = errx.Error

func Wrap(code Code, msg string, cause error) *Error {
	return errx.NewSys(code, msg).WithCause(cause)
}

var (
	ErrTargetNotFound  = errx.NewBiz(CodeTargetNotFound, "目标玩家不存在")
	ErrSelfRaid        = errx.NewBiz(CodeSelfRaid, "不能掠夺自己")
	ErrNoArmy          = errx.NewBiz(CodeNoArmy, "没有可出征的军队")
	ErrTargetProtected = errx.NewBiz(CodeTargetProtected, "目标处于保护期")
)
