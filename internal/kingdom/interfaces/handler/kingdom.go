package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"MedievalKingdoms/internal/kingdom/app"
	httpx "MedievalKingdoms/internal/shared/transport/http"
	"MedievalKingdoms/internal/shared/transport/http/middleware"
)

type Kingdom struct {
	svc *app.KingdomService
}

func NewKingdom(svc *app.KingdomService) *Kingdom {
	return &Kingdom{svc: svc}
}

func (h *Kingdom) RegisterRoutes(g *gin.RouterGroup) {
	grp := g.Group("/kingdom", middleware.Auth())
	grp.GET("/profile", h.profile)
	grp.POST("/buildings/:id/upgrade", h.upgrade)
	grp.GET("/constructions", h.constructions)
	grp.POST("/recruit", h.recruit)

	// 排行榜是公共数据，不要求登录
	g.GET("/leaderboard", h.leaderboard)
}

func (h *Kingdom) profile(c *gin.Context) {
	uid := middleware.Uid(c)
	ctx := c.Request.Context()

	view, err := h.svc.Profile(ctx, uid)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	// 拉取全景视为一次活跃
	h.svc.Touch(ctx, uid)
	httpx.RespondOK(c, view)
}

func (h *Kingdom) upgrade(c *gin.Context) {
	view, err := h.svc.UpgradeBuilding(c.Request.Context(), middleware.Uid(c), c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, view)
}

func (h *Kingdom) constructions(c *gin.Context) {
	views, err := h.svc.ConstructionQueue(c.Request.Context(), middleware.Uid(c))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, views)
}

type recruitReq struct {
	Unit     string `json:"unit" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required"`
}

func (h *Kingdom) recruit(c *gin.Context) {
	var req recruitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondParamError(c, err)
		return
	}

	view, err := h.svc.RecruitUnits(c.Request.Context(), middleware.Uid(c), req.Unit, req.Quantity)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, view)
}

func (h *Kingdom) leaderboard(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	entries, err := h.svc.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, entries)
}
