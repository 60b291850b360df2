package ws

import "sync"

// Hub 维护 uid → 连接 的映射，供战报推送、建造完成通知、聊天广播使用。
// 同一玩家重复登录时，新连接顶替旧连接。
type Hub struct {
	mu    sync.RWMutex
	conns map[int64]WSConn
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[int64]WSConn),
	}
}

// Bind 在登录成功后把连接绑定到玩家；旧连接会被关闭。
func (h *Hub) Bind(uid int64, conn WSConn) {
	h.mu.Lock()
	old := h.conns[uid]
	h.conns[uid] = conn
	h.mu.Unlock()

	if old != nil && old != conn {
		old.Close()
	}
	conn.SetProperty(ConnKeyUID, uid)
}

// Remove 摘除连接；只有当前绑定的连接才会被摘除（防止顶号后误删新连接）。
func (h *Hub) Remove(conn WSConn) {
	uid, ok := conn.GetProperty(ConnKeyUID).(int64)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[uid] == conn {
		delete(h.conns, uid)
	}
}

// PushTo 向指定玩家推送；玩家不在线时静默丢弃。
func (h *Hub) PushTo(uid int64, name string, data any) {
	h.mu.RLock()
	conn := h.conns[uid]
	h.mu.RUnlock()

	if conn != nil {
		conn.Push(name, data)
	}
}

// Broadcast 向所有在线玩家推送。
func (h *Hub) Broadcast(name string, data any) {
	h.mu.RLock()
	conns := make([]WSConn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		c.Push(name, data)
	}
}

// Online 返回当前在线玩家数。
func (h *Hub) Online() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
