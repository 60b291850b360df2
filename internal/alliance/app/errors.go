package app

import "MedievalKingdoms/modules/kit/errx"

type Code = errx.Code

const (
	CodeAllianceNotFound Code = "ALLIANCE_NOT_FOUND"
	CodeAllianceFull     Code = "ALLIANCE_FULL"
	CodeAlreadyJoined    Code = "ALLIANCE_ALREADY_JOINED"
	CodeNotMember        Code = "ALLIANCE_NOT_MEMBER"
	CodeNotLeader        Code = "ALLIANCE_NOT_LEADER"
	CodeNameExist        Code = "ALLIANCE_NAME_EXIST"
	CodeInvalidName      Code = "ALLIANCE_INVALID_NAME"
	CodeInviteNotFound   Code = "ALLIANCE_INVITE_NOT_FOUND"
	CodePlayerNotFound   Code = "ALLIANCE_PLAYER_NOT_FOUND"
	CodeInternalServer   Code = errx.CodeInternal
	CodeUnavailable      Code = errx.CodeUnavailable
)

type Error = errx.Error

func Wrap(code Code, msg string, cause error) *Error {
	return errx.NewSys(code, msg).WithCause(cause)
}

var (
	ErrAllianceNotFound = errx.NewBiz(CodeAllianceNotFound, "联盟不存在")
	ErrAllianceFull     = errx.NewBiz(CodeAllianceFull, "联盟已满员")
	ErrAlreadyJoined    = errx.NewBiz(CodeAlreadyJoined, "已加入联盟")
	ErrNotMember        = errx.NewBiz(CodeNotMember, "未加入任何联盟")
	ErrNotLeader        = errx.NewBiz(CodeNotLeader, "仅盟主可执行该操作")
	ErrNameExist        = errx.NewBiz(CodeNameExist, "联盟名称已存在")
	ErrInvalidName      = errx.NewBiz(CodeInvalidName, "联盟名称至少 3 个字符")
	ErrInviteNotFound   = errx.NewBiz(CodeInviteNotFound, "邀请不存在或已过期")
	ErrPlayerNotFound   = errx.NewBiz(CodePlayerNotFound, "目标玩家不存在")
)
