package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"MedievalKingdoms/modules/kit/logx"
)

type Server struct {
	router     *Router
	hub        *Hub
	needSecret bool
	log        logx.Logger
}

func NewServer(r *Router, hub *Hub, needSecret bool, l logx.Logger) *Server {
	return &Server{
		router:     r,
		hub:        hub,
		needSecret: needSecret,
		log:        l,
	}
}

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	upgrader := websocket.Upgrader{
		// 允许所有CORS跨域请求
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	wsConn, err := upgrader.Upgrade(resp, req, nil)
	if err != nil {
		s.log.Error("websocket upgrade error", zap.Error(err))
		return
	}

	s.log.Info("websocket upgrade success")

	wsServer := NewWsServer(wsConn, s.needSecret, s.log)
	wsServer.Router(s.router)
	wsServer.Run()
	wsServer.Handshake()

	if s.hub != nil {
		// 连接关闭时从 hub 摘除，避免向死连接推送
		go func() {
			<-wsServer.Done()
			s.hub.Remove(wsServer)
		}()
	}
}
