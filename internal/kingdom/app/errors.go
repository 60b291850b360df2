package app

import "MedievalKingdoms/modules/kit/errx"

// Code 表示应用层错误码（通常更贴近“业务语义/对外协议”）。
type Code = errx.Code

const (
	CodeKingdomNotFound       Code = "KINGDOM_NOT_FOUND"
	CodeBuildingNotFound      Code = "KINGDOM_BUILDING_NOT_FOUND"
	CodeAlreadyConstructing   Code = "KINGDOM_ALREADY_CONSTRUCTING"
	CodeMaxLevelReached       Code = "KINGDOM_MAX_LEVEL_REACHED"
	CodeInsufficientResources Code = "KINGDOM_INSUFFICIENT_RESOURCES"
	CodeInvalidUnitType       Code = "KINGDOM_INVALID_UNIT_TYPE"
	CodeInvalidQuantity       Code = "KINGDOM_INVALID_QUANTITY"
	// CodeInternalServer 复用 kit 的统一系统码（跨服务一致，便于告警/排障）。
	CodeInternalServer Code = errx.CodeInternal
	// CodeUnavailable 复用 kit 的统一系统码（跨服务一致，便于告警/排障）。
	CodeUnavailable Code = errx.CodeUnavailable
)

// Error 复用通用错误模型：对外语义(code/msg)、上下文(data)、溯源链(cause)、系统错误一次栈(stack)。
type Error = errx.Error

// NewError 创建业务类错误（不捕获栈）。
func NewError(code Code, msg string) *Error {
	return errx.NewBiz(code, msg)
}

// Wrap 创建系统类错误并挂载 cause（系统错误会在第一次 wrap/转换处捕获一次栈）。
func Wrap(code Code, msg string, cause error) *Error {
	return errx.NewSys(code, msg).WithCause(cause)
}

// 常用错误定义（哨兵错误）：禁止直接修改其 data/cause（通过 WithData/WithCause 派生新对象）。
var (
	ErrKingdomNotFound       = errx.NewBiz(CodeKingdomNotFound, "王国不存在")
	ErrBuildingNotFound      = errx.NewBiz(CodeBuildingNotFound, "建筑不存在")
	ErrAlreadyConstructing   = errx.NewBiz(CodeAlreadyConstructing, "该建筑已有在途升级")
	ErrMaxLevelReached       = errx.NewBiz(CodeMaxLevelReached, "建筑已达最高等级")
	ErrInsufficientResources = errx.NewBiz(CodeInsufficientResources, "资源不足")
	ErrInvalidUnitType       = errx.NewBiz(CodeInvalidUnitType, "非法兵种")
	ErrInvalidQuantity       = errx.NewBiz(CodeInvalidQuantity, "非法数量")
	ErrInternalServer        = errx.ErrInternal
	ErrUnavailable           = errx.ErrUnavailable
)
