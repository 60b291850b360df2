package controller

import (
	"context"
	"strconv"

	"MedievalKingdoms/internal/chat/app"
	"MedievalKingdoms/internal/shared/transport"
	"MedievalKingdoms/internal/shared/transport/ws"
)

// Chat 聊天的 ws 入口：世界频道、私信与历史拉取。
// 连接必须先走 gate.enter 绑定 uid。
type Chat struct {
	svc *app.ChatService
}

func NewChat(svc *app.ChatService) *Chat {
	return &Chat{svc: svc}
}

func (h *Chat) RegisterRoutes(r *ws.Router) {
	grp := r.Group("chat")
	grp.Handle("send", h.send)
	grp.Handle("private", h.sendPrivate)
	grp.Handle("history", h.history)
	grp.Handle("privateHistory", h.privateHistory)
}

func uidOf(req *ws.WsMsgReq, resp *ws.WsMsgResp) (int64, bool) {
	uid, ok := req.Conn.GetProperty(ws.ConnKeyUID).(int64)
	if !ok || uid == 0 {
		resp.Body.Code = transport.Unauthorized
		resp.Body.Msg = "连接未进场"
		return 0, false
	}
	return uid, true
}

type sendReq struct {
	Content string `json:"content"`
}

func (h *Chat) send(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	uid, ok := uidOf(req, resp)
	if !ok {
		return
	}

	var body sendReq
	if err := ws.BindJSON(req, &body); err != nil {
		resp.Body.Code = transport.InvalidParam
		resp.Body.Msg = "参数有误"
		return
	}

	view, err := h.svc.SendGlobal(ctx, uid, body.Content)
	if err != nil {
		ws.Fail(resp, err)
		return
	}
	ws.OK(resp, view)
}

type sendPrivateReq struct {
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
}

func (h *Chat) sendPrivate(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	uid, ok := uidOf(req, resp)
	if !ok {
		return
	}

	var body sendPrivateReq
	if err := ws.BindJSON(req, &body); err != nil {
		resp.Body.Code = transport.InvalidParam
		resp.Body.Msg = "参数有误"
		return
	}

	view, err := h.svc.SendPrivate(ctx, uid, body.Receiver, body.Content)
	if err != nil {
		ws.Fail(resp, err)
		return
	}
	ws.OK(resp, view)
}

type historyReq struct {
	Limit any `json:"limit"`
}

func limitOf(body historyReq, fallback int64) int64 {
	switch v := body.Limit.(type) {
	case float64:
		return int64(v)
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func (h *Chat) history(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	if _, ok := uidOf(req, resp); !ok {
		return
	}

	var body historyReq
	_ = ws.BindJSON(req, &body)

	views, err := h.svc.GlobalHistory(ctx, limitOf(body, 50))
	if err != nil {
		ws.Fail(resp, err)
		return
	}
	ws.OK(resp, views)
}

func (h *Chat) privateHistory(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	uid, ok := uidOf(req, resp)
	if !ok {
		return
	}

	var body historyReq
	_ = ws.BindJSON(req, &body)

	views, err := h.svc.PrivateHistory(ctx, uid, limitOf(body, 50))
	if err != nil {
		ws.Fail(resp, err)
		return
	}
	ws.OK(resp, views)
}
