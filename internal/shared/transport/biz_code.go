package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 网关层业务码；1~499 视为业务拒绝（WARN），>=500 视为系统错误（ERROR）。
const (
	OK           = 0
	InvalidParam = 1
	Unauthorized = 2
	NotFound     = 3
	Rejected     = 4
	SystemError  = 500
)
