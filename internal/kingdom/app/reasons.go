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
	return Reason{
		Code:    c,
		Message: m,
	}
}

var (
	// 业务拒绝 reason（服务内枚举），由网关统一映射为客户端 client_code。
	ReasonKingdomNotFound       = NewReason(reasoncode.KingdomNotFound, "王国不存在")
	ReasonBuildingNotFound      = NewReason(reasoncode.KingdomBuildingNotFound, "建筑不存在")
	ReasonAlreadyConstructing   = NewReason(reasoncode.KingdomAlreadyConstructing, "该建筑已有在途升级")
	ReasonMaxLevelReached       = NewReason(reasoncode.KingdomMaxLevelReached, "建筑已达最高等级")
	ReasonInsufficientResources = NewReason(reasoncode.KingdomInsufficientResources, "资源不足")
	ReasonInvalidUnitType       = NewReason(reasoncode.KingdomInvalidUnitType, "非法兵种")
)

var (
	// 技术错误 reason（服务内枚举），用于日志与排障。
	ReasonKingdomRepoUnavailable = NewReason("KINGDOM_REPO_UNAVAILABLE", "王国存储库不可用")
	ReasonQueueRepoUnavailable   = NewReason("CONSTRUCTION_QUEUE_UNAVAILABLE", "建造队列存储库不可用")
	ReasonActorAskFail           = NewReason("KINGDOM_ACTOR_ASK_FAIL", "王国 actor 请求失败")
)
