package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"MedievalKingdoms/internal/combat/app"
	httpx "MedievalKingdoms/internal/shared/transport/http"
	"MedievalKingdoms/internal/shared/transport/http/middleware"
)

type Combat struct {
	svc *app.RaidService
}

func NewCombat(svc *app.RaidService) *Combat {
	return &Combat{svc: svc}
}

func (h *Combat) RegisterRoutes(g *gin.RouterGroup) {
	grp := g.Group("/combat", middleware.Auth())
	grp.POST("/raid", h.raid)
	grp.GET("/raids", h.history)
}

type raidReq struct {
	Target string `json:"target" binding:"required"`
}

func (h *Combat) raid(c *gin.Context) {
	var req raidReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondParamError(c, err)
		return
	}

	view, err := h.svc.LaunchRaid(c.Request.Context(), middleware.Uid(c), req.Target)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, view)
}

func (h *Combat) history(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	views, err := h.svc.RaidHistory(c.Request.Context(), middleware.Uid(c), limit)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, views)
}
