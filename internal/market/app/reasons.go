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
	ReasonOfferNotFound    = NewReason(reasoncode.MarketOfferNotFound, "挂单不存在或已失效")
	ReasonOfferExpired     = NewReason(reasoncode.MarketOfferExpired, "挂单已过期")
	ReasonOwnOffer         = NewReason(reasoncode.MarketOwnOffer, "不能接受自己的挂单")
	ReasonInsufficientPay  = NewReason(reasoncode.MarketInsufficientPay, "支付资源不足")
	ReasonInsufficientSell = NewReason(reasoncode.MarketInsufficientSell, "出售资源不足")
)

var (
	ReasonOfferRepoUnavailable = NewReason("OFFER_REPO_UNAVAILABLE", "挂单存储库不可用")
	ReasonTradeSettleFail      = NewReason("TRADE_SETTLE_FAIL", "交易结算失败")
)
