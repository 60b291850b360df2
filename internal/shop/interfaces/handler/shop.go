package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	httpx "MedievalKingdoms/internal/shared/transport/http"
	"MedievalKingdoms/internal/shared/transport/http/middleware"
	"MedievalKingdoms/internal/shop/app"
)

type Shop struct {
	svc *app.ShopService
}

func NewShop(svc *app.ShopService) *Shop {
	return &Shop{svc: svc}
}

func (h *Shop) RegisterRoutes(g *gin.RouterGroup) {
	// 货架是公共数据，不要求登录
	g.GET("/shop/items", h.items)

	grp := g.Group("/shop", middleware.Auth())
	grp.POST("/purchase", h.purchase)
	grp.GET("/purchases", h.purchases)
	grp.GET("/inventory", h.inventory)
	grp.POST("/empire", h.changeEmpire)
}

func (h *Shop) items(c *gin.Context) {
	httpx.RespondOK(c, h.svc.Items())
}

type purchaseReq struct {
	ItemId   string `json:"itemId" binding:"required"`
	Quantity int64  `json:"quantity"`
}

func (h *Shop) purchase(c *gin.Context) {
	var req purchaseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondParamError(c, err)
		return
	}

	view, err := h.svc.Purchase(c.Request.Context(), middleware.Uid(c), req.ItemId, req.Quantity)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, view)
}

func (h *Shop) purchases(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	views, err := h.svc.Purchases(c.Request.Context(), middleware.Uid(c), limit)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, views)
}

func (h *Shop) inventory(c *gin.Context) {
	items, err := h.svc.Inventory(c.Request.Context(), middleware.Uid(c))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, items)
}

type changeEmpireReq struct {
	Empire string `json:"empire" binding:"required"`
}

func (h *Shop) changeEmpire(c *gin.Context) {
	var req changeEmpireReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondParamError(c, err)
		return
	}

	empire, err := h.svc.ChangeEmpire(c.Request.Context(), middleware.Uid(c), req.Empire)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, gin.H{"empire": empire})
}
