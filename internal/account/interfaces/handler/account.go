package handler

import (
	"github.com/gin-gonic/gin"

	"MedievalKingdoms/internal/account/app"
	httpx "MedievalKingdoms/internal/shared/transport/http"
	"MedievalKingdoms/modules/kit/logx"
)

type Account struct {
	svc *app.UserService
	log logx.Logger
}

func NewAccount(svc *app.UserService, log logx.Logger) *Account {
	return &Account{svc: svc, log: log}
}

func (h *Account) RegisterRoutes(g *gin.RouterGroup) {
	grp := g.Group("/account")
	grp.POST("/register", h.register)
	grp.POST("/login", h.login)
}

func (h *Account) register(c *gin.Context) {
	var req app.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondParamError(c, err)
		return
	}
	req.Ip = c.ClientIP()

	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, resp)
}

func (h *Account) login(c *gin.Context) {
	var req app.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondParamError(c, err)
		return
	}
	req.Ip = c.ClientIP()

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondOK(c, resp)
}
