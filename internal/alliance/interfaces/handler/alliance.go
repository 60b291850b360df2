package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"MedievalKingdoms/internal/alliance/app"
	kingdomport "MedievalKingdoms/internal/kingdom/app/port"
	httpx "MedievalKingdoms/internal/shared/transport/http"
	"MedievalKingdoms/internal/shared/transport/http/middleware"
)

type Alliance struct {
	svc      *app.AllianceService
	kingdoms kingdomport.KingdomRepository
}

func NewAlliance(svc *app.AllianceService, kingdoms kingdomport.KingdomRepository) *Alliance {
	return &Alliance{svc: svc, kingdoms: kingdoms}
}

func (h *Alliance) RegisterRoutes(g *gin.RouterGroup) {
	grp := g.Group("/alliances", middleware.Auth())
	grp.POST("", h.create)
	grp.GET("", h.list)
	grp.GET("/mine", h.mine)
	grp.POST("/invites", h.invite)
	grp.GET("/invites", h.invites)
	grp.POST("/invites/:id/accept", h.accept)
	grp.POST("/leave", h.leave)
	grp.GET("/map", h.worldMap)
}

// username 联盟成员以用户名记账，按 uid 反查。
func (h *Alliance) username(c *gin.Context) (string, bool) {
	k, err := h.kingdoms.Load(c.Request.Context(), middleware.Uid(c))
	if err != nil {
		httpx.RespondError(c, err)
		return "", false
	}
	return k.Username, true
}

type createAllianceReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *Alliance) create(c *gin.Context) {
	var req createAllianceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondParamError(c, err)
		return
	}
	username, ok := h.username(c)
	if !ok {
		return
	}

	view, err := h.svc.Create(c.Request.Context(), middleware.Uid(c), username, req.Name, req.Description)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, view)
}

func (h *Alliance) list(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	views, err := h.svc.List(c.Request.Context(), limit)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, views)
}

func (h *Alliance) mine(c *gin.Context) {
	username, ok := h.username(c)
	if !ok {
		return
	}

	view, err := h.svc.My(c.Request.Context(), username)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, view)
}

type inviteReq struct {
	Target string `json:"target" binding:"required"`
}

func (h *Alliance) invite(c *gin.Context) {
	var req inviteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondParamError(c, err)
		return
	}
	username, ok := h.username(c)
	if !ok {
		return
	}

	view, err := h.svc.Invite(c.Request.Context(), username, req.Target)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, view)
}

func (h *Alliance) invites(c *gin.Context) {
	username, ok := h.username(c)
	if !ok {
		return
	}

	views, err := h.svc.Invites(c.Request.Context(), username)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, views)
}

func (h *Alliance) accept(c *gin.Context) {
	username, ok := h.username(c)
	if !ok {
		return
	}

	view, err := h.svc.AcceptInvite(c.Request.Context(), middleware.Uid(c), username, c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, view)
}

func (h *Alliance) leave(c *gin.Context) {
	username, ok := h.username(c)
	if !ok {
		return
	}

	if err := h.svc.Leave(c.Request.Context(), middleware.Uid(c), username); err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, nil)
}

func (h *Alliance) worldMap(c *gin.Context) {
	view, err := h.svc.Map(c.Request.Context())
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, view)
}
