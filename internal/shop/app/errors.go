package app

import "MedievalKingdoms/modules/kit/errx"

type Code = errx.Code

const (
	CodeItemNotFound        Code = "SHOP_ITEM_NOT_FOUND"
	CodeItemUnavailable     Code = "SHOP_ITEM_UNAVAILABLE"
	CodeInvalidQuantity     Code = "SHOP_INVALID_QUANTITY"
	CodeInsufficientGold    Code = "SHOP_INSUFFICIENT_GOLD"
	CodeNoToken             Code = "SHOP_NO_TOKEN"
	CodeNothingConstructing Code = "SHOP_NOTHING_CONSTRUCTING"
	CodeInvalidEmpire       Code = "SHOP_INVALID_EMPIRE"
	CodeInternalServer      Code = errx.CodeInternal
	CodeUnavailable         Code = errx.CodeUnavailable
)

type Error = errx.Error

func Wrap(code Code, msg string, cause error) *Error {
	return errx.NewSys(code, msg).WithCause(cause)
}

var (
	ErrItemNotFound        = errx.NewBiz(CodeItemNotFound, "道具不存在")
	ErrItemUnavailable     = errx.NewBiz(CodeItemUnavailable, "道具已下架")
	ErrInvalidQuantity     = errx.NewBiz(CodeInvalidQuantity, "购买数量非法")
	ErrInsufficientGold    = errx.NewBiz(CodeInsufficientGold, "资源不足")
	ErrNoToken             = errx.NewBiz(CodeNoToken, "缺少换阵营凭证")
	ErrNothingConstructing = errx.NewBiz(CodeNothingConstructing, "没有在途建造可加速")
	ErrInvalidEmpire       = errx.NewBiz(CodeInvalidEmpire, "目标阵营非法")
)
