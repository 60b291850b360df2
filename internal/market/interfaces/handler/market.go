package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"MedievalKingdoms/internal/market/app"
	httpx "MedievalKingdoms/internal/shared/transport/http"
	"MedievalKingdoms/internal/shared/transport/http/middleware"
)

type Market struct {
	svc *app.TradeService
}

func NewMarket(svc *app.TradeService) *Market {
	return &Market{svc: svc}
}

func (h *Market) RegisterRoutes(g *gin.RouterGroup) {
	grp := g.Group("/market", middleware.Auth())
	grp.POST("/offers", h.create)
	grp.POST("/offers/:id/accept", h.accept)
	grp.GET("/offers", h.open)
	grp.GET("/offers/mine", h.mine)
}

type createOfferReq struct {
	Offering     map[string]int64 `json:"offering" binding:"required"`
	Requesting   map[string]int64 `json:"requesting" binding:"required"`
	DurationSecs int64            `json:"durationSecs"`
}

func (h *Market) create(c *gin.Context) {
	var req createOfferReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondParamError(c, err)
		return
	}

	view, err := h.svc.CreateOffer(c.Request.Context(), middleware.Uid(c), req.Offering, req.Requesting, req.DurationSecs)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, view)
}

func (h *Market) accept(c *gin.Context) {
	view, err := h.svc.AcceptOffer(c.Request.Context(), middleware.Uid(c), c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, view)
}

func (h *Market) open(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	views, err := h.svc.OpenOffers(c.Request.Context(), middleware.Uid(c), limit)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, views)
}

func (h *Market) mine(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	views, err := h.svc.MyOffers(c.Request.Context(), middleware.Uid(c), limit)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, views)
}
