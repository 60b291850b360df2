package app

import "MedievalKingdoms/modules/kit/errx"

type Code = errx.Code

const (
	CodeOfferNotFound     Code = "MARKET_OFFER_NOT_FOUND"
	CodeOfferExpired      Code = "MARKET_OFFER_EXPIRED"
	CodeOwnOffer          Code = "MARKET_OWN_OFFER"
	CodeInvalidOffer      Code = "MARKET_INVALID_OFFER"
	CodeInsufficientPay   Code = "MARKET_INSUFFICIENT_PAY"
	CodeInsufficientSell  Code = "MARKET_INSUFFICIENT_SELL"
	CodeInternalServer    Code = errx.CodeInternal
	CodeUnavailable       Code = errx.CodeUnavailable
)

type Error = errx.Error

func Wrap(code Code, msg string, cause error) *Error {
	return errx.NewSys(code, msg).WithCause(cause)
}

var (
	ErrOfferNotFound    = errx.NewBiz(CodeOfferNotFound, "挂单不存在或已失效")
	ErrOfferExpired     = errx.NewBiz(CodeOfferExpired, "挂单已过期")
	ErrOwnOffer         = errx.NewBiz(CodeOwnOffer, "不能接受自己的挂单")
	ErrInvalidOffer     = errx.NewBiz(CodeInvalidOffer, "挂单内容非法")
	ErrInsufficientPay  = errx.NewBiz(CodeInsufficientPay, "支付资源不足")
	ErrInsufficientSell = errx.NewBiz(CodeInsufficientSell, "出售资源不足")
)
