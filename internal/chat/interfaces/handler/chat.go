package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"MedievalKingdoms/internal/chat/app"
	httpx "MedievalKingdoms/internal/shared/transport/http"
	"MedievalKingdoms/internal/shared/transport/http/middleware"
)

type Chat struct {
	svc *app.ChatService
}

func NewChat(svc *app.ChatService) *Chat {
	return &Chat{svc: svc}
}

func (h *Chat) RegisterRoutes(g *gin.RouterGroup) {
	grp := g.Group("/chat", middleware.Auth())
	grp.POST("/global", h.sendGlobal)
	grp.GET("/global", h.globalHistory)
	grp.POST("/private", h.sendPrivate)
	grp.GET("/private", h.privateHistory)
}

type sendGlobalReq struct {
	Content string `json:"content" binding:"required"`
}

func (h *Chat) sendGlobal(c *gin.Context) {
	var req sendGlobalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondParamError(c, err)
		return
	}

	view, err := h.svc.SendGlobal(c.Request.Context(), middleware.Uid(c), req.Content)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, view)
}

func (h *Chat) globalHistory(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	views, err := h.svc.GlobalHistory(c.Request.Context(), limit)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, views)
}

type sendPrivateReq struct {
	Receiver string `json:"receiver" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

func (h *Chat) sendPrivate(c *gin.Context) {
	var req sendPrivateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondParamError(c, err)
		return
	}

	view, err := h.svc.SendPrivate(c.Request.Context(), middleware.Uid(c), req.Receiver, req.Content)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, view)
}

func (h *Chat) privateHistory(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	views, err := h.svc.PrivateHistory(c.Request.Context(), middleware.Uid(c), limit)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, views)
}
