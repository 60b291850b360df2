package ws

// ReqBody 客户端帧。Name 形如 chat.send，Msg 由各路由自行绑定。
type ReqBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Msg  any    `json:"msg"`
}

// RespBody 服务端帧，应答与推送共用。应答回传请求 Seq，推送 Seq 为 0。
type RespBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Code int    `json:"code"`
	Msg  any    `json:"msg"`
}

type WsMsgReq struct {
	Body *ReqBody
	Conn WSConn
}

type WsMsgResp struct {
	Body *RespBody
}

// WSConn 是一条客户端连接的抽象，handler 通过它读写连接级属性、推送消息。
// gate.enter 通过 SetProperty 绑定 uid，此后 Hub 按 uid 定向 Push。
type WSConn interface {
	SetProperty(key string, value any)
	GetProperty(key string) any
	RemoveProperty(key string)
	Addr() string
	Push(name string, data any)
	Close()
	// Done 用于感知连接生命周期结束（连接关闭时该 channel 会被关闭）
	Done() <-chan struct{}
}

type Handshake struct {
	Key string `json:"key"`
}

type Heartbeat struct {
	CTime int64 `json:"ctime"`
	STime int64 `json:"stime"`
}

const (
	HandshakeMsg = "handshake"
	SecretKey    = "secretKey"
	ConnKeyUID   = "uid"
	HeartbeatMsg = "heartbeat"
)
