// Package reasoncode 汇总跨上下文的业务拒绝 reason code，
// 网关据此把服务内枚举映射为客户端可见的 client_code。
package reasoncode

const (
	AccountLoginInvalidCredentials = "ACCOUNT_LOGIN_INVALID_CREDENTIALS"
	AccountRegisterUserExist       = "ACCOUNT_REGISTER_USER_EXIST"
	AccountKingdomNotExist         = "ACCOUNT_KINGDOM_NOT_EXIST"
	AccountInvalidEmpire           = "ACCOUNT_INVALID_EMPIRE"

	KingdomNotFound              = "KINGDOM_NOT_FOUND"
	KingdomBuildingNotFound      = "KINGDOM_BUILDING_NOT_FOUND"
	KingdomAlreadyConstructing   = "KINGDOM_ALREADY_CONSTRUCTING"
	KingdomMaxLevelReached       = "KINGDOM_MAX_LEVEL_REACHED"
	KingdomInsufficientResources = "KINGDOM_INSUFFICIENT_RESOURCES"
	KingdomInvalidUnitType       = "KINGDOM_INVALID_UNIT_TYPE"

	CombatSelfRaid        = "COMBAT_SELF_RAID"
	CombatNoArmy          = "COMBAT_NO_ARMY"
	CombatTargetProtected = "COMBAT_TARGET_PROTECTED"
	CombatTargetNotFound  = "COMBAT_TARGET_NOT_FOUND"

	MarketOfferNotFound    = "MARKET_OFFER_NOT_FOUND"
	MarketOfferExpired     = "MARKET_OFFER_EXPIRED"
	MarketOwnOffer         = "MARKET_OWN_OFFER"
	MarketInsufficientPay  = "MARKET_INSUFFICIENT_PAY"
	MarketInsufficientSell = "MARKET_INSUFFICIENT_SELL"

	AllianceNotFound       = "ALLIANCE_NOT_FOUND"
	AllianceFull           = "ALLIANCE_FULL"
	AllianceAlreadyJoined  = "ALLIANCE_ALREADY_JOINED"
	AllianceNotMember      = "ALLIANCE_NOT_MEMBER"
	AllianceNameExist      = "ALLIANCE_NAME_EXIST"
	AllianceNotLeader      = "ALLIANCE_NOT_LEADER"
	AllianceInvalidName    = "ALLIANCE_INVALID_NAME"
	AllianceInviteNotFound = "ALLIANCE_INVITE_NOT_FOUND"

	ChatEmptyContent     = "CHAT_EMPTY_CONTENT"
	ChatContentTooLong   = "CHAT_CONTENT_TOO_LONG"
	ChatReceiverNotFound = "CHAT_RECEIVER_NOT_FOUND"

	ShopItemNotFound        = "SHOP_ITEM_NOT_FOUND"
	ShopInsufficientGold    = "SHOP_INSUFFICIENT_GOLD"
	ShopNoToken             = "SHOP_NO_TOKEN"
	ShopNothingConstructing = "SHOP_NOTHING_CONSTRUCTING"
)
