package controller

import (
	"context"

	"MedievalKingdoms/internal/shared/security"
	"MedievalKingdoms/internal/shared/transport"
	"MedievalKingdoms/internal/shared/transport/ws"
)

// Gate 处理 ws 连接的进场：校验 HTTP 登录签发的 token，
// 绑定 uid 与连接后，该连接才能收到定向推送与发聊天消息。
type Gate struct {
	hub *ws.Hub
}

func NewGate(hub *ws.Hub) *Gate {
	return &Gate{hub: hub}
}

func (g *Gate) RegisterRoutes(r *ws.Router) {
	grp := r.Group("gate")
	grp.Handle("enter", g.enter)
}

type enterReq struct {
	Session string `json:"session"`
}

type enterResp struct {
	UId int64 `json:"uid"`
}

func (g *Gate) enter(_ context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	var body enterReq
	if err := ws.BindJSON(req, &body); err != nil || body.Session == "" {
		resp.Body.Code = transport.InvalidParam
		resp.Body.Msg = "参数有误"
		return
	}

	_, claims, err := security.ParseToken(body.Session)
	if err != nil {
		resp.Body.Code = transport.Unauthorized
		resp.Body.Msg = "未登录或登录已过期"
		return
	}

	g.hub.Bind(claims.Uid, req.Conn)
	ws.OK(resp, enterResp{UId: claims.Uid})
}
