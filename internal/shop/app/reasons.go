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
	ReasonItemNotFound        = NewReason(reasoncode.ShopItemNotFound, "道具不存在")
	ReasonInsufficientGold    = NewReason(reasoncode.ShopInsufficientGold, "资源不足")
	ReasonNoToken             = NewReason(reasoncode.ShopNoToken, "缺少换阵营凭证")
	ReasonNothingConstructing = NewReason(reasoncode.ShopNothingConstructing, "没有在途建造可加速")
)

var (
	ReasonPurchaseRepoUnavailable  = NewReason("SHOP_PURCHASE_REPO_UNAVAILABLE", "购买流水存储库不可用")
	ReasonInventoryRepoUnavailable = NewReason("SHOP_INVENTORY_REPO_UNAVAILABLE", "道具库存存储库不可用")
	ReasonEffectApplyFail          = NewReason("SHOP_EFFECT_APPLY_FAIL", "道具效果执行失败")
)
